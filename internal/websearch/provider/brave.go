package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lk2023060901/search-api/internal/websearch/types"
)

// BraveProvider implements the Brave web search API
type BraveProvider struct {
	*BaseProvider
}

// NewBraveProvider creates a new Brave provider
func NewBraveProvider(config *types.ProviderConfig, deps Deps) *BraveProvider {
	return &BraveProvider{BaseProvider: NewBaseProvider(config, deps)}
}

// braveResponse represents a Brave API response
type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// Search queries Brave. freshness (pd, pw, pm, ...) is passed through verbatim.
func (p *BraveProvider) Search(ctx context.Context, query string, count int, freshness string) []types.SearchResultItem {
	results := []types.SearchResultItem{}
	if !p.Ready(ctx) {
		return results
	}

	ctx, cancel := p.WithTimeout(ctx)
	defer cancel()

	items, err := p.search(ctx, query, count, freshness)
	if err != nil {
		p.Fail(ctx, err)
		return results
	}
	return items
}

func (p *BraveProvider) search(ctx context.Context, query string, count int, freshness string) ([]types.SearchResultItem, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(count))
	if freshness != "" {
		params.Set("freshness", freshness)
	}

	apiURL := fmt.Sprintf("%s?%s", p.Endpoint("/res/v1/web/search"), params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range p.BuildDefaultHeaders() {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("X-Subscription-Token", p.config.APIKey)

	resp, err := p.DoRequest(ctx, httpReq)
	if err != nil {
		return nil, err
	}
	body, err := p.ReadOK(resp)
	if err != nil {
		return nil, err
	}

	var braveResp braveResponse
	if err := json.Unmarshal(body, &braveResp); err != nil {
		return nil, p.decodeError(err)
	}

	results := make([]types.SearchResultItem, 0, len(braveResp.Web.Results))
	for _, r := range braveResp.Web.Results {
		results = append(results, types.SearchResultItem{
			Title:       types.StringPtr(r.Title),
			URL:         types.StringPtr(r.URL),
			Description: types.StringPtr(r.Description),
			Source:      string(types.ProviderBrave),
		})
	}
	return results, nil
}
