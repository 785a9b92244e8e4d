package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the service. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	CensusRequests  *prometheus.CounterVec
	CensusFallbacks prometheus.Counter
	LLMRequests     *prometheus.CounterVec
	CacheLookups    *prometheus.CounterVec
	ExtractorRuns   *prometheus.CounterVec
}

// New creates and registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CensusRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "twin_census_requests_total",
			Help: "Census API requests by outcome",
		}, []string{"outcome"}),
		CensusFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "twin_census_fallback_baselines_total",
			Help: "Baselines served from the fixed fallback because the Census API failed",
		}),
		LLMRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "twin_llm_requests_total",
			Help: "LLM analysis requests by analysis and outcome",
		}, []string{"analysis", "outcome"}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "twin_analysis_cache_lookups_total",
			Help: "Analysis cache lookups by result",
		}, []string{"result"}),
		ExtractorRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "twin_profile_extractions_total",
			Help: "Free-text profile extractions by method",
		}, []string{"method"}),
	}
}

func (m *Metrics) CensusRequest(outcome string) {
	if m == nil {
		return
	}
	m.CensusRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) CensusFallback() {
	if m == nil {
		return
	}
	m.CensusFallbacks.Inc()
}

func (m *Metrics) LLMRequest(analysis, outcome string) {
	if m == nil {
		return
	}
	m.LLMRequests.WithLabelValues(analysis, outcome).Inc()
}

func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) Extraction(method string) {
	if m == nil {
		return
	}
	m.ExtractorRuns.WithLabelValues(method).Inc()
}
