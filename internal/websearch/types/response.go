package types

import (
	"time"
	"unicode/utf8"
)

const (
	TimestampLayout = "2006-01-02 15:04:05"
	MaxSummaryRunes = 500
	summaryEllipsis = "..."
)

// SearchResultItem represents one hit from a list-returning provider
type SearchResultItem struct {
	Title       *string  `json:"title"`
	URL         *string  `json:"url"`
	Description *string  `json:"description"`
	Score       *float64 `json:"score"`
	Source      string   `json:"source"`
}

// SummaryResult represents the single encyclopedia summary
type SummaryResult struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
	Source  string `json:"source"`
}

// AggregatedResponse is the combined multi-source result.
// Sources values are either []SearchResultItem or *SummaryResult.
type AggregatedResponse struct {
	Query     string             `json:"query"`
	Timestamp string             `json:"timestamp"`
	Sources   map[ProviderID]any `json:"sources"`
}

// NewAggregatedResponse creates an empty response stamped with now.
func NewAggregatedResponse(query string, now time.Time) *AggregatedResponse {
	return &AggregatedResponse{
		Query:     query,
		Timestamp: now.Format(TimestampLayout),
		Sources:   make(map[ProviderID]any),
	}
}

// TruncateSummary cuts text longer than MaxSummaryRunes characters and appends an ellipsis.
func TruncateSummary(text string) string {
	if utf8.RuneCountInString(text) <= MaxSummaryRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:MaxSummaryRunes]) + summaryEllipsis
}

// StringPtr returns nil for an empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// OutcomeStatus classifies what happened to one provider during a search.
type OutcomeStatus string

const (
	OutcomeOK     OutcomeStatus = "ok"
	OutcomeEmpty  OutcomeStatus = "empty"
	OutcomeFailed OutcomeStatus = "failed"
)

// SourceOutcome is diagnostic detail for one provider. It is logged and
// exported as metrics, never serialized into AggregatedResponse.
type SourceOutcome struct {
	Provider ProviderID
	Status   OutcomeStatus
	Results  int
	Took     time.Duration
	Err      error
}
