package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lk2023060901/search-api/internal/pkg/logger"
	"github.com/lk2023060901/search-api/internal/websearch/types"
	"go.uber.org/zap"
)

// Provider is the part shared by every search source
type Provider interface {
	// GetID returns the provider ID
	GetID() types.ProviderID

	// Validate validates the provider configuration
	Validate() error
}

// Searcher is a provider returning a list of hits.
// Search never fails: errors are logged and yield an empty, non-nil slice.
type Searcher interface {
	Provider
	Search(ctx context.Context, query string, count int, freshness string) []types.SearchResultItem
}

// Summarizer is a provider returning at most one summary.
// Summarize never fails: errors are logged and yield nil.
type Summarizer interface {
	Provider
	Summarize(ctx context.Context, query string) *types.SummaryResult
}

// MetricsCollector 指标收集器
type MetricsCollector interface {
	// RecordSkip 记录因缺少凭证而跳过的调用
	RecordSkip(provider types.ProviderID)

	// RecordError 记录服务商调用失败
	RecordError(provider types.ProviderID, code string)

	// RecordOutcome 记录一次聚合中单个服务商的结果
	RecordOutcome(outcome types.SourceOutcome)
}

type nopMetrics struct{}

func (nopMetrics) RecordSkip(types.ProviderID)          {}
func (nopMetrics) RecordError(types.ProviderID, string) {}
func (nopMetrics) RecordOutcome(types.SourceOutcome)    {}

// NopMetrics returns a collector that discards everything.
func NopMetrics() MetricsCollector { return nopMetrics{} }

// Deps carries the collaborators shared by all providers.
type Deps struct {
	Logger  *zap.Logger
	Metrics MetricsCollector

	// HTTPClient overrides the per-provider client, mainly for tests.
	HTTPClient *http.Client
}

// BaseProvider provides common functionality for all providers
type BaseProvider struct {
	config     *types.ProviderConfig
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger
	metrics    MetricsCollector
}

// NewBaseProvider creates a new base provider
func NewBaseProvider(config *types.ProviderConfig, deps Deps) *BaseProvider {
	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = types.DefaultTimeoutSeconds * time.Second
	}

	httpClient := deps.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = NopMetrics()
	}

	return &BaseProvider{
		config:     config,
		httpClient: httpClient,
		timeout:    timeout,
		logger:     log.With(zap.String("provider", string(config.ID))),
		metrics:    metrics,
	}
}

// GetID returns the provider ID
func (b *BaseProvider) GetID() types.ProviderID {
	return b.config.ID
}

// Validate validates the provider configuration
func (b *BaseProvider) Validate() error {
	return b.config.Validate()
}

// Ready reports whether a call may go out. When the credential is missing it
// logs a warning and records the skip.
func (b *BaseProvider) Ready(ctx context.Context) bool {
	if b.config.HasCredential() {
		return true
	}
	b.log(ctx).Warn("skipping provider", zap.Error(types.ErrMissingAPIKey))
	b.metrics.RecordSkip(b.config.ID)
	return false
}

// Fail logs a provider failure and records it. The error is not propagated.
func (b *BaseProvider) Fail(ctx context.Context, err error) {
	code := "ERROR"
	var perr *types.ProviderError
	if errors.As(err, &perr) {
		code = perr.Code
	}
	b.log(ctx).Error("search failed", zap.String("code", code), zap.Error(err))
	b.metrics.RecordError(b.config.ID, code)
}

// log returns the provider logger tagged with the request ID carried by ctx
func (b *BaseProvider) log(ctx context.Context) *zap.Logger {
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		return b.logger.With(zap.String("request_id", requestID))
	}
	return b.logger
}

// WithTimeout bounds ctx by the provider timeout
func (b *BaseProvider) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, b.timeout)
}

// BuildDefaultHeaders builds default HTTP headers
func (b *BaseProvider) BuildDefaultHeaders() map[string]string {
	ua := b.config.UserAgent
	if ua == "" {
		ua = types.DefaultUserAgent
	}
	return map[string]string{
		"Accept":     "application/json",
		"User-Agent": ua,
	}
}

// Endpoint joins the configured API host and path
func (b *BaseProvider) Endpoint(path string) string {
	return strings.TrimRight(b.config.APIHost, "/") + path
}

// DoRequest executes an HTTP request once. Transport failures and deadline
// expiry are returned as *types.ProviderError.
func (b *BaseProvider) DoRequest(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := b.httpClient.Do(req.WithContext(ctx))
	if err == nil {
		return resp, nil
	}

	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return nil, &types.ProviderError{
			Provider: b.config.ID,
			Code:     "TIMEOUT",
			Message:  fmt.Sprintf("no response within %s", b.timeout),
			Err:      types.ErrProviderTimeout,
		}
	}
	return nil, &types.ProviderError{
		Provider: b.config.ID,
		Code:     "REQUEST_FAILED",
		Message:  "Failed to execute request",
		Err:      err,
	}
}

// maxResponseBytes caps upstream bodies; the DuckDuckGo HTML page is the largest.
const maxResponseBytes = 4 << 20

// ReadOK reads the response body and fails unless the status is 200.
func (b *BaseProvider) ReadOK(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, &types.ProviderError{
			Provider: b.config.ID,
			Code:     "READ_FAILED",
			Message:  "Failed to read response body",
			Err:      err,
		}
	}
	if len(body) > maxResponseBytes {
		return nil, &types.ProviderError{
			Provider: b.config.ID,
			Code:     "BODY_TOO_LARGE",
			Message:  fmt.Sprintf("response body exceeds %d bytes", maxResponseBytes),
			Err:      types.ErrInvalidResponse,
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &types.ProviderError{
			Provider: b.config.ID,
			Code:     fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message:  truncateBody(body),
		}
	}
	return body, nil
}

func (b *BaseProvider) decodeError(err error) error {
	return &types.ProviderError{
		Provider: b.config.ID,
		Code:     "DECODE_FAILED",
		Message:  "Failed to decode response",
		Err:      fmt.Errorf("%w: %v", types.ErrInvalidResponse, err),
	}
}

type timeoutError interface {
	Timeout() bool
}

func isTimeout(err error) bool {
	var te timeoutError
	return errors.As(err, &te) && te.Timeout()
}

func truncateBody(body []byte) string {
	const max = 512
	if len(body) > max {
		return string(body[:max])
	}
	return string(body)
}
