package metrics

import (
	"testing"
	"time"

	"github.com/lk2023060901/search-api/internal/websearch/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	c.RecordSkip(types.ProviderBrave)
	c.RecordSkip(types.ProviderBrave)
	c.RecordError(types.ProviderSerper, "HTTP_500")
	c.RecordOutcome(types.SourceOutcome{
		Provider: types.ProviderDuckDuckGo,
		Status:   types.OutcomeOK,
		Results:  5,
		Took:     120 * time.Millisecond,
	})
	c.RecordOutcome(types.SourceOutcome{
		Provider: types.ProviderWikipedia,
		Status:   types.OutcomeEmpty,
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.skips.WithLabelValues("brave")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.errors.WithLabelValues("serper", "HTTP_500")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.outcomes.WithLabelValues("duckduckgo", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.outcomes.WithLabelValues("wikipedia", "empty")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.latency))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"search_provider_outcomes_total",
		"search_provider_errors_total",
		"search_provider_skipped_total",
		"search_provider_duration_seconds",
		"search_provider_results",
	}, names)
}

func TestNewCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)

	_, err = NewCollector(reg)
	assert.Error(t, err)
}
