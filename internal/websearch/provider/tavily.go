package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lk2023060901/search-api/internal/websearch/types"
)

const tavilySearchDepth = "advanced"

// TavilyProvider implements the Tavily search API
type TavilyProvider struct {
	*BaseProvider
}

// NewTavilyProvider creates a new Tavily provider
func NewTavilyProvider(config *types.ProviderConfig, deps Deps) *TavilyProvider {
	return &TavilyProvider{BaseProvider: NewBaseProvider(config, deps)}
}

// tavilyRequest represents a Tavily API request
type tavilyRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

// tavilyResponse represents a Tavily API response
type tavilyResponse struct {
	Results []struct {
		Title   string   `json:"title"`
		URL     string   `json:"url"`
		Content string   `json:"content"`
		Score   *float64 `json:"score"`
	} `json:"results"`
}

// Search executes an advanced-depth search. freshness is ignored.
func (p *TavilyProvider) Search(ctx context.Context, query string, count int, _ string) []types.SearchResultItem {
	results := []types.SearchResultItem{}
	if !p.Ready(ctx) {
		return results
	}

	ctx, cancel := p.WithTimeout(ctx)
	defer cancel()

	items, err := p.search(ctx, query, count)
	if err != nil {
		p.Fail(ctx, err)
		return results
	}
	return items
}

func (p *TavilyProvider) search(ctx context.Context, query string, count int) ([]types.SearchResultItem, error) {
	reqBody, err := json.Marshal(tavilyRequest{
		APIKey:      p.config.APIKey,
		Query:       query,
		SearchDepth: tavilySearchDepth,
		MaxResults:  count,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint("/search"), bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range p.BuildDefaultHeaders() {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.DoRequest(ctx, httpReq)
	if err != nil {
		return nil, err
	}
	body, err := p.ReadOK(resp)
	if err != nil {
		return nil, err
	}

	var tavilyResp tavilyResponse
	if err := json.Unmarshal(body, &tavilyResp); err != nil {
		return nil, p.decodeError(err)
	}

	results := make([]types.SearchResultItem, 0, len(tavilyResp.Results))
	for _, r := range tavilyResp.Results {
		results = append(results, types.SearchResultItem{
			Title:       types.StringPtr(r.Title),
			URL:         types.StringPtr(r.URL),
			Description: types.StringPtr(r.Content),
			Score:       r.Score,
			Source:      string(types.ProviderTavily),
		})
	}
	return results, nil
}
