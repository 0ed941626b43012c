package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/lk2023060901/search-api/internal/websearch/types"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// WikipediaProvider looks up a page summary, trying each configured
// language in order until one has the page.
type WikipediaProvider struct {
	*BaseProvider
	languages []string
}

// NewWikipediaProvider creates a new Wikipedia provider
func NewWikipediaProvider(config *types.ProviderConfig, deps Deps) *WikipediaProvider {
	languages := config.Languages
	if len(languages) == 0 {
		languages = types.DefaultProviderConfig(types.ProviderWikipedia).Languages
	}
	return &WikipediaProvider{
		BaseProvider: NewBaseProvider(config, deps),
		languages:    languages,
	}
}

// WikipediaSource returns the source tag for a summary served in lang.
func WikipediaSource(lang string) string {
	return fmt.Sprintf("wikipedia (%s)", lang)
}

// Summarize returns the summary from the first language that has a page
// titled query, or nil when none does. A failed lookup ends the fallback.
// Each language lookup gets its own timeout.
func (p *WikipediaProvider) Summarize(ctx context.Context, query string) *types.SummaryResult {
	if !p.Ready(ctx) {
		return nil
	}

	for _, lang := range p.languages {
		result, err := p.lookup(ctx, lang, query)
		switch {
		case err == nil:
			return result
		case errors.Is(err, types.ErrPageNotFound):
			p.log(ctx).Debug("page not found", zap.String("lang", lang), zap.String("query", query))
			continue
		default:
			p.Fail(ctx, err)
			return nil
		}
	}
	return nil
}

func (p *WikipediaProvider) endpoint(lang, title string) string {
	host := strings.ReplaceAll(p.config.APIHost, types.LanguagePlaceholder, lang)
	title = strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
	return strings.TrimRight(host, "/") + "/api/rest_v1/page/summary/" + url.PathEscape(title)
}

func (p *WikipediaProvider) lookup(ctx context.Context, lang, query string) (*types.SummaryResult, error) {
	ctx, cancel := p.WithTimeout(ctx)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint(lang, query), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range p.BuildDefaultHeaders() {
		httpReq.Header.Set(k, v)
	}

	resp, err := p.DoRequest(ctx, httpReq)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, types.ErrPageNotFound
	}
	body, err := p.ReadOK(resp)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, p.decodeError(errors.New("malformed JSON"))
	}
	page := gjson.ParseBytes(body)
	if page.Get("missing").Exists() || page.Get("title").String() == "" {
		return nil, types.ErrPageNotFound
	}

	return &types.SummaryResult{
		Title:   page.Get("title").String(),
		Summary: types.TruncateSummary(page.Get("extract").String()),
		URL:     page.Get("content_urls.desktop.page").String(),
		Source:  WikipediaSource(lang),
	}, nil
}
