package provider

import (
	"context"
	"fmt"

	"github.com/lk2023060901/search-api/internal/websearch/types"
)

// Task is one provider call bound to its arguments. It returns nil when the
// provider produced nothing to report.
type Task func(ctx context.Context) any

// Set holds exactly one adapter per supported provider.
type Set struct {
	brave      Searcher
	tavily     Searcher
	serper     Searcher
	duckduckgo Searcher
	wikipedia  Summarizer
}

// NewSet builds every adapter. configs overrides the built-in defaults per
// provider; providers absent from configs use DefaultProviderConfig.
func NewSet(configs map[types.ProviderID]types.ProviderConfig, deps Deps) (*Set, error) {
	s := &Set{}
	for _, id := range types.AllProviders {
		cfg := types.DefaultProviderConfig(id)
		if override, ok := configs[id]; ok {
			cfg = mergeConfig(cfg, override)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid %s config: %w", id, err)
		}

		switch id {
		case types.ProviderBrave:
			s.brave = NewBraveProvider(&cfg, deps)
		case types.ProviderTavily:
			s.tavily = NewTavilyProvider(&cfg, deps)
		case types.ProviderSerper:
			s.serper = NewSerperProvider(&cfg, deps)
		case types.ProviderDuckDuckGo:
			s.duckduckgo = NewDuckDuckGoProvider(&cfg, deps)
		case types.ProviderWikipedia:
			s.wikipedia = NewWikipediaProvider(&cfg, deps)
		default:
			return nil, fmt.Errorf("%w: %s", types.ErrInvalidProviderID, id)
		}
	}
	return s, nil
}

// Bind returns the task that queries id with req's arguments. Only brave
// receives the freshness filter; wikipedia only uses the query.
func (s *Set) Bind(id types.ProviderID, req *types.SearchRequest) (Task, error) {
	switch id {
	case types.ProviderBrave:
		return searchTask(s.brave, req), nil
	case types.ProviderTavily:
		return searchTask(s.tavily, req), nil
	case types.ProviderSerper:
		return searchTask(s.serper, req), nil
	case types.ProviderDuckDuckGo:
		return searchTask(s.duckduckgo, req), nil
	case types.ProviderWikipedia:
		return summaryTask(s.wikipedia, req.Query), nil
	}
	return nil, fmt.Errorf("%w: %s", types.ErrInvalidProviderID, id)
}

func searchTask(p Searcher, req *types.SearchRequest) Task {
	query, count, freshness := req.Query, req.Count, req.Freshness
	if p.GetID() != types.ProviderBrave {
		freshness = ""
	}
	return func(ctx context.Context) any {
		if items := p.Search(ctx, query, count, freshness); items != nil {
			return items
		}
		return []types.SearchResultItem{}
	}
}

func summaryTask(p Summarizer, query string) Task {
	return func(ctx context.Context) any {
		if r := p.Summarize(ctx, query); r != nil {
			return r
		}
		return nil
	}
}

func mergeConfig(base, override types.ProviderConfig) types.ProviderConfig {
	if override.APIHost != "" {
		base.APIHost = override.APIHost
	}
	if override.APIKey != "" {
		base.APIKey = override.APIKey
	}
	if override.Timeout != 0 {
		base.Timeout = override.Timeout
	}
	if override.UserAgent != "" {
		base.UserAgent = override.UserAgent
	}
	if len(override.Languages) > 0 {
		base.Languages = override.Languages
	}
	return base
}
