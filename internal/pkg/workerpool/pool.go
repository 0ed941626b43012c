package workerpool

import (
	"errors"
	"fmt"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// ErrPoolClosed 池已释放
var ErrPoolClosed = errors.New("worker pool is closed")

// Pool 是固定容量的 goroutine 池。容量等于任务数时所有任务同时运行，互不阻塞。
type Pool struct {
	pool   *ants.Pool
	size   int
	logger *zap.Logger
}

// New 创建容量为 size 的 Worker Pool，size 小于 1 时按 1 处理
func New(size int, logger *zap.Logger) (*Pool, error) {
	if size < 1 {
		size = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	antsPool, err := ants.NewPool(size,
		ants.WithPanicHandler(func(err interface{}) {
			logger.Error("worker panic", zap.Any("error", err))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ants pool: %w", err)
	}

	return &Pool{
		pool:   antsPool,
		size:   size,
		logger: logger,
	}, nil
}

// Size 返回池容量
func (p *Pool) Size() int {
	return p.size
}

// Submit 提交任务。task 内的 panic 会被恢复并记录日志，worker 继续可用。
func (p *Pool) Submit(task func()) error {
	if p.pool.IsClosed() {
		return ErrPoolClosed
	}

	err := p.pool.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				p.logger.Error("task panic recovered", zap.Any("panic", r))
			}
		}()
		task()
	})
	if errors.Is(err, ants.ErrPoolClosed) {
		return ErrPoolClosed
	}
	return err
}

// Release 关闭并释放 worker
func (p *Pool) Release() {
	p.pool.Release()
}
