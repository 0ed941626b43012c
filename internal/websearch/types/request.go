package types

import "strings"

const (
	DefaultCount     = 5
	MinCount         = 1
	MaxCount         = 20
	DefaultFreshness = "pd"
)

// SearchRequest represents a multi-source search request
type SearchRequest struct {
	Query     string   `json:"query"`
	Count     int      `json:"count"`
	Freshness string   `json:"freshness"` // brave only: pd, pw, pm
	Sources   []string `json:"sources"`   // nil selects every provider
}

// ClampCount bounds n to [MinCount, MaxCount].
func ClampCount(n int) int {
	if n < MinCount {
		return MinCount
	}
	if n > MaxCount {
		return MaxCount
	}
	return n
}

// Normalize trims the query, clamps the count and fills in the default freshness.
func (r *SearchRequest) Normalize() error {
	r.Query = strings.TrimSpace(r.Query)
	if r.Query == "" {
		return ErrEmptyQuery
	}
	r.Count = ClampCount(r.Count)
	if r.Freshness == "" {
		r.Freshness = DefaultFreshness
	}
	return nil
}

// SplitSources parses a comma-delimited source list. An empty string yields nil.
func SplitSources(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
