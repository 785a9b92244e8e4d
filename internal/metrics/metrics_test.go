package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.CensusRequest("ok")
	m.CensusRequest("ok")
	m.CensusFallback()
	m.LLMRequest("social-graph", "error")
	m.CacheLookup(true)
	m.CacheLookup(false)
	m.CacheLookup(false)
	m.Extraction("rules")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CensusRequests.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CensusFallbacks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LLMRequests.WithLabelValues("social-graph", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExtractorRuns.WithLabelValues("rules")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.CensusRequest("ok")
		m.CensusFallback()
		m.LLMRequest("insights", "ok")
		m.CacheLookup(true)
		m.Extraction("llm")
	})
}
