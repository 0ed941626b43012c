package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/lk2023060901/search-api/internal/pkg/logger"
	"github.com/lk2023060901/search-api/internal/pkg/workerpool"
	"github.com/lk2023060901/search-api/internal/websearch/provider"
	"github.com/lk2023060901/search-api/internal/websearch/types"
	"go.uber.org/zap"
)

// TaskBinder binds a provider to the arguments of one search.
type TaskBinder interface {
	Bind(id types.ProviderID, req *types.SearchRequest) (provider.Task, error)
}

// SearchUseCase fans a query out to the selected providers and merges the results.
type SearchUseCase struct {
	binder  TaskBinder
	metrics provider.MetricsCollector
	logger  *zap.Logger
	now     func() time.Time
}

// NewSearchUseCase creates a search use case
func NewSearchUseCase(binder TaskBinder, metrics provider.MetricsCollector, logger *zap.Logger) *SearchUseCase {
	if metrics == nil {
		metrics = provider.NopMetrics()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchUseCase{
		binder:  binder,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

type taskOutcome struct {
	provider types.ProviderID
	result   any
	took     time.Duration
	err      error
}

// MultiSearch queries every provider selected by req concurrently and waits
// for all of them. Provider failures never surface here: a provider whose
// task produced nothing, or panicked, is left out of Sources.
func (uc *SearchUseCase) MultiSearch(ctx context.Context, req types.SearchRequest) *types.AggregatedResponse {
	req.Count = types.ClampCount(req.Count)
	if req.Freshness == "" {
		req.Freshness = types.DefaultFreshness
	}
	ids := types.ResolveSources(req.Sources)
	log := uc.logger
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		log = log.With(zap.String("request_id", requestID))
	}

	out := types.NewAggregatedResponse(req.Query, uc.now())

	tasks := make(map[types.ProviderID]provider.Task, len(ids))
	for _, id := range ids {
		task, err := uc.binder.Bind(id, &req)
		if err != nil {
			log.Error("failed to bind provider", zap.String("provider", string(id)), zap.Error(err))
			continue
		}
		tasks[id] = task
	}

	pool, err := workerpool.New(len(tasks), log)
	if err != nil {
		log.Error("failed to create worker pool", zap.Error(err))
		return out
	}
	defer pool.Release()

	// buffered so no worker blocks on a slow collector
	done := make(chan taskOutcome, len(tasks))
	pending := 0
	for id, task := range tasks {
		if err := pool.Submit(uc.run(ctx, id, task, done)); err != nil {
			log.Error("failed to dispatch provider", zap.String("provider", string(id)), zap.Error(err))
			continue
		}
		pending++
	}

	for ; pending > 0; pending-- {
		o := <-done
		outcome := types.SourceOutcome{Provider: o.provider, Took: o.took, Err: o.err}
		switch {
		case o.err != nil:
			outcome.Status = types.OutcomeFailed
			log.Error("search task failed",
				zap.String("provider", string(o.provider)),
				zap.Error(o.err))
		case o.result == nil:
			outcome.Status = types.OutcomeEmpty
		default:
			out.Sources[o.provider] = o.result
			outcome.Results = resultCount(o.result)
			outcome.Status = types.OutcomeOK
			if outcome.Results == 0 {
				outcome.Status = types.OutcomeEmpty
			}
		}
		uc.metrics.RecordOutcome(outcome)
	}

	log.Info("multi search completed",
		zap.String("query", req.Query),
		zap.Int("requested", len(ids)),
		zap.Int("workers", pool.Size()),
		zap.Int("answered", len(out.Sources)))

	return out
}

// run wraps task so that a panic becomes an error outcome and every
// dispatched task reports exactly once on done.
func (uc *SearchUseCase) run(ctx context.Context, id types.ProviderID, task provider.Task, done chan<- taskOutcome) func() {
	return func() {
		start := time.Now()
		o := taskOutcome{provider: id}
		defer func() {
			if r := recover(); r != nil {
				o.result = nil
				o.err = fmt.Errorf("%w: %v", types.ErrProviderPanic, r)
			}
			o.took = time.Since(start)
			done <- o
		}()
		o.result = task(ctx)
	}
}

func resultCount(result any) int {
	switch r := result.(type) {
	case []types.SearchResultItem:
		return len(r)
	case *types.SummaryResult:
		return 1
	default:
		return 0
	}
}
