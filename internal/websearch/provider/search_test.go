package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/lk2023060901/search-api/internal/websearch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBraveProvider_Search(t *testing.T) {
	srv, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/res/v1/web/search", r.URL.Path)
		assert.Equal(t, "golang generics", r.URL.Query().Get("q"))
		assert.Equal(t, "3", r.URL.Query().Get("count"))
		assert.Equal(t, "pw", r.URL.Query().Get("freshness"))
		assert.Equal(t, "brave-key", r.Header.Get("X-Subscription-Token"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		_, _ = w.Write([]byte(`{"web":{"results":[
			{"title":"Go Generics","url":"https://go.dev/doc/tutorial/generics","description":"Tutorial"},
			{"title":"No description","url":"https://example.com"}
		]}}`))
	})

	p := NewBraveProvider(testConfig(types.ProviderBrave, srv.URL, "brave-key"), testDeps(&recordingMetrics{}))
	results := p.Search(context.Background(), "golang generics", 3, "pw")

	assert.EqualValues(t, 1, atomic.LoadInt32(hits))
	require.Len(t, results, 2)
	assert.Equal(t, "Go Generics", *results[0].Title)
	assert.Equal(t, "https://go.dev/doc/tutorial/generics", *results[0].URL)
	assert.Equal(t, "Tutorial", *results[0].Description)
	assert.Nil(t, results[0].Score)
	assert.Equal(t, "brave", results[0].Source)
	assert.Nil(t, results[1].Description)
}

func TestSearchers_MissingKeySkipsNetwork(t *testing.T) {
	srv, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	m := &recordingMetrics{}
	searchers := []Searcher{
		NewBraveProvider(testConfig(types.ProviderBrave, srv.URL, ""), testDeps(m)),
		NewTavilyProvider(testConfig(types.ProviderTavily, srv.URL, ""), testDeps(m)),
		NewSerperProvider(testConfig(types.ProviderSerper, srv.URL, "  "), testDeps(m)),
	}

	for _, s := range searchers {
		results := s.Search(context.Background(), "golang", 5, "")
		assert.NotNil(t, results, s.GetID())
		assert.Empty(t, results, s.GetID())
	}
	assert.EqualValues(t, 0, atomic.LoadInt32(hits))
	assert.Equal(t, []types.ProviderID{types.ProviderBrave, types.ProviderTavily, types.ProviderSerper}, m.skips)
	assert.Empty(t, m.errors)
}

func TestSearchers_UpstreamFailureYieldsEmpty(t *testing.T) {
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	m := &recordingMetrics{}
	searchers := []Searcher{
		NewBraveProvider(testConfig(types.ProviderBrave, srv.URL, "k"), testDeps(m)),
		NewTavilyProvider(testConfig(types.ProviderTavily, srv.URL, "k"), testDeps(m)),
		NewSerperProvider(testConfig(types.ProviderSerper, srv.URL, "k"), testDeps(m)),
		NewDuckDuckGoProvider(testConfig(types.ProviderDuckDuckGo, srv.URL, ""), testDeps(m)),
	}

	for _, s := range searchers {
		results := s.Search(context.Background(), "golang", 5, "pd")
		assert.NotNil(t, results, s.GetID())
		assert.Empty(t, results, s.GetID())
	}
	assert.Equal(t, []string{
		"brave:HTTP_500",
		"tavily:HTTP_500",
		"serper:HTTP_500",
		"duckduckgo:HTTP_500",
	}, m.errors)
}

func TestTavilyProvider_Search(t *testing.T) {
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Bearer tavily-key", r.Header.Get("Authorization"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tavily-key", body["api_key"])
		assert.Equal(t, "golang", body["query"])
		assert.Equal(t, "advanced", body["search_depth"])
		assert.EqualValues(t, 4, body["max_results"])

		_, _ = w.Write([]byte(`{"results":[
			{"title":"The Go Programming Language","url":"https://go.dev","content":"Build simple, secure, scalable systems","score":0.93}
		]}`))
	})

	p := NewTavilyProvider(testConfig(types.ProviderTavily, srv.URL, "tavily-key"), testDeps(&recordingMetrics{}))
	results := p.Search(context.Background(), "golang", 4, "pd")

	require.Len(t, results, 1)
	assert.Equal(t, "The Go Programming Language", *results[0].Title)
	assert.Equal(t, "Build simple, secure, scalable systems", *results[0].Description)
	require.NotNil(t, results[0].Score)
	assert.InDelta(t, 0.93, *results[0].Score, 1e-9)
	assert.Equal(t, "tavily", results[0].Source)
}

func TestSerperProvider_Search(t *testing.T) {
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "serper-key", r.Header.Get("X-API-KEY"))

		var body serperRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "golang", body.Q)
		assert.Equal(t, 2, body.Num)

		_, _ = w.Write([]byte(`{"searchParameters":{"q":"golang"},"organic":[
			{"title":"Go","link":"https://go.dev","snippet":"Go is an open source language","position":1},
			{"title":"Go (programming language)","link":"https://en.wikipedia.org/wiki/Go_(programming_language)","position":2}
		]}`))
	})

	p := NewSerperProvider(testConfig(types.ProviderSerper, srv.URL, "serper-key"), testDeps(&recordingMetrics{}))
	results := p.Search(context.Background(), "golang", 2, "")

	require.Len(t, results, 2)
	assert.Equal(t, "Go", *results[0].Title)
	assert.Equal(t, "https://go.dev", *results[0].URL)
	assert.Equal(t, "Go is an open source language", *results[0].Description)
	assert.Equal(t, SerperSource, results[0].Source)
	assert.Nil(t, results[1].Description)
}

func TestSerperProvider_MalformedBody(t *testing.T) {
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"organic":[`))
	})

	m := &recordingMetrics{}
	p := NewSerperProvider(testConfig(types.ProviderSerper, srv.URL, "k"), testDeps(m))
	results := p.Search(context.Background(), "golang", 5, "")

	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.Equal(t, []string{"serper:DECODE_FAILED"}, m.errors)
}

func TestSerperProvider_NoOrganicResults(t *testing.T) {
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"searchParameters":{"q":"zzzz"}}`))
	})

	m := &recordingMetrics{}
	p := NewSerperProvider(testConfig(types.ProviderSerper, srv.URL, "k"), testDeps(m))
	results := p.Search(context.Background(), "zzzz", 5, "")

	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.Empty(t, m.errors)
}
