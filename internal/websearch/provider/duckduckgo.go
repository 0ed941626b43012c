package provider

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lk2023060901/search-api/internal/websearch/types"
)

// DuckDuckGoProvider scrapes the DuckDuckGo HTML lite endpoint. It needs no API key.
type DuckDuckGoProvider struct {
	*BaseProvider
}

// NewDuckDuckGoProvider creates a new DuckDuckGo provider
func NewDuckDuckGoProvider(config *types.ProviderConfig, deps Deps) *DuckDuckGoProvider {
	return &DuckDuckGoProvider{BaseProvider: NewBaseProvider(config, deps)}
}

// Search returns at most count results. freshness is ignored.
func (p *DuckDuckGoProvider) Search(ctx context.Context, query string, count int, _ string) []types.SearchResultItem {
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

func (p *DuckDuckGoProvider) search(ctx context.Context, query string, count int) ([]types.SearchResultItem, error) {
	form := url.Values{}
	form.Set("q", query)
	form.Set("kl", "wt-wt")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint("/html/"), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range p.BuildDefaultHeaders() {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("Accept", "text/html")
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Referer", p.Endpoint("/"))

	resp, err := p.DoRequest(ctx, httpReq)
	if err != nil {
		return nil, err
	}
	body, err := p.ReadOK(resp)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, p.decodeError(err)
	}
	return parseDDGResults(doc, count), nil
}

func parseDDGResults(doc *goquery.Document, count int) []types.SearchResultItem {
	results := []types.SearchResultItem{}

	doc.Find(".result, .web-result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(results) >= count {
			return false
		}
		// sponsored blocks
		if s.HasClass("result--ad") {
			return true
		}

		link := s.Find("a.result__a, .result__title a").First()
		title := strings.TrimSpace(link.Text())
		href, ok := link.Attr("href")
		if !ok || title == "" {
			return true
		}
		href = unwrapDDGURL(href)
		if href == "" {
			return true
		}

		snippet := strings.TrimSpace(s.Find(".result__snippet").First().Text())
		results = append(results, types.SearchResultItem{
			Title:       types.StringPtr(title),
			URL:         types.StringPtr(href),
			Description: types.StringPtr(snippet),
			Source:      string(types.ProviderDuckDuckGo),
		})
		return true
	})

	return results
}

// unwrapDDGURL extracts the target of //duckduckgo.com/l/?uddg=<escaped url> redirects.
func unwrapDDGURL(href string) string {
	if strings.Contains(href, "uddg=") {
		if u, err := url.Parse(href); err == nil {
			if target := u.Query().Get("uddg"); target != "" {
				return target
			}
		}
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return ""
}
