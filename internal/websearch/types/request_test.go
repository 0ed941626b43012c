package types

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampCount(t *testing.T) {
	assert.Equal(t, 1, ClampCount(-3))
	assert.Equal(t, 1, ClampCount(0))
	assert.Equal(t, 1, ClampCount(1))
	assert.Equal(t, 7, ClampCount(7))
	assert.Equal(t, 20, ClampCount(20))
	assert.Equal(t, 20, ClampCount(21))
}

func TestSearchRequest_Normalize(t *testing.T) {
	req := SearchRequest{Query: "  golang  ", Count: 99}
	require.NoError(t, req.Normalize())
	assert.Equal(t, "golang", req.Query)
	assert.Equal(t, MaxCount, req.Count)
	assert.Equal(t, DefaultFreshness, req.Freshness)

	req = SearchRequest{Query: "golang", Count: 3, Freshness: "pw"}
	require.NoError(t, req.Normalize())
	assert.Equal(t, 3, req.Count)
	assert.Equal(t, "pw", req.Freshness)

	req = SearchRequest{Query: " \t "}
	assert.ErrorIs(t, req.Normalize(), ErrEmptyQuery)
}

func TestSplitSources(t *testing.T) {
	assert.Nil(t, SplitSources(""))
	assert.Nil(t, SplitSources("   "))
	assert.Equal(t, []string{"brave"}, SplitSources("brave"))
	assert.Equal(t, []string{"brave", "wikipedia"}, SplitSources("brave, wikipedia"))
}

func TestTruncateSummary(t *testing.T) {
	tests := []struct {
		name   string
		length int
		want   int
		suffix bool
	}{
		{name: "below limit", length: 499, want: 499},
		{name: "at limit", length: 500, want: 500},
		{name: "above limit", length: 501, want: 500, suffix: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// multi-byte runes: the limit counts characters, not bytes
			got := TruncateSummary(strings.Repeat("語", tt.length))
			if tt.suffix {
				assert.True(t, strings.HasSuffix(got, "..."))
				got = strings.TrimSuffix(got, "...")
			}
			assert.Equal(t, tt.want, len([]rune(got)))
		})
	}
}

func TestNewAggregatedResponse(t *testing.T) {
	now := time.Date(2024, 3, 9, 7, 5, 1, 0, time.Local)
	resp := NewAggregatedResponse("golang", now)

	assert.Equal(t, "golang", resp.Query)
	assert.Equal(t, "2024-03-09 07:05:01", resp.Timestamp)
	assert.NotNil(t, resp.Sources)
	assert.Empty(t, resp.Sources)
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))
	require.NotNil(t, StringPtr("x"))
	assert.Equal(t, "x", *StringPtr("x"))
}
