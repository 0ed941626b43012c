package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/lk2023060901/search-api/internal/websearch/types"
	"github.com/tidwall/gjson"
)

// SerperSource tags items coming from Serper's Google results
const SerperSource = "serper (google)"

// SerperProvider implements the Serper Google search API
type SerperProvider struct {
	*BaseProvider
}

// NewSerperProvider creates a new Serper provider
func NewSerperProvider(config *types.ProviderConfig, deps Deps) *SerperProvider {
	return &SerperProvider{BaseProvider: NewBaseProvider(config, deps)}
}

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

// Search returns Google organic results. freshness is ignored.
func (p *SerperProvider) Search(ctx context.Context, query string, count int, _ string) []types.SearchResultItem {
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

func (p *SerperProvider) search(ctx context.Context, query string, count int) ([]types.SearchResultItem, error) {
	reqBody, err := json.Marshal(serperRequest{Q: query, Num: count})
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
	httpReq.Header.Set("X-API-KEY", p.config.APIKey)

	resp, err := p.DoRequest(ctx, httpReq)
	if err != nil {
		return nil, err
	}
	body, err := p.ReadOK(resp)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, p.decodeError(errors.New("malformed JSON"))
	}

	organic := gjson.GetBytes(body, "organic")
	results := make([]types.SearchResultItem, 0, len(organic.Array()))
	organic.ForEach(func(_, r gjson.Result) bool {
		results = append(results, types.SearchResultItem{
			Title:       types.StringPtr(r.Get("title").String()),
			URL:         types.StringPtr(r.Get("link").String()),
			Description: types.StringPtr(r.Get("snippet").String()),
			Source:      SerperSource,
		})
		return true
	})
	return results, nil
}
