// Package census fetches American Community Survey statistics for a location
// and normalizes them into a comparison baseline.
package census

import (
	"context"

	"go.uber.org/zap"

	"github.com/BerylCAtieno/digital-twin-agent/internal/geo"
	"github.com/BerylCAtieno/digital-twin-agent/internal/metrics"
	"github.com/BerylCAtieno/digital-twin-agent/internal/models"
)

// Fetcher is the raw Census API surface the service depends on.
type Fetcher interface {
	Fetch(ctx context.Context, q Query) ([][]string, error)
}

// Lookup is a baseline plus how it was obtained.
type Lookup struct {
	StateCode string                `json:"stateCode,omitempty"`
	Baseline  models.CensusBaseline `json:"baseline"`
	Fallback  bool                  `json:"fallback"`
}

type Service struct {
	fetcher Fetcher
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewService(fetcher Fetcher, logger *zap.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{fetcher: fetcher, logger: logger, metrics: m}
}

// Baseline returns the normalized baseline for loc. Only an unresolvable
// state is reported as an error; every upstream failure yields the fallback
// baseline.
func (s *Service) Baseline(ctx context.Context, loc models.Location) (models.CensusBaseline, error) {
	lookup, err := s.Lookup(ctx, loc)
	if err != nil {
		return models.CensusBaseline{}, err
	}
	return lookup.Baseline, nil
}

func (s *Service) Lookup(ctx context.Context, loc models.Location) (Lookup, error) {
	q := Query{City: loc.City, ZipCode: loc.ZipCode}

	if loc.State != "" {
		code, err := geo.ResolveStateCode(loc.State)
		if err != nil {
			s.metrics.CensusRequest("invalid_location")
			return Lookup{}, err
		}
		q.StateCode = code
	}

	rows, err := s.fetcher.Fetch(ctx, q)
	if err != nil {
		s.logger.Warn("census fetch failed, using fallback baseline",
			zap.String("state", q.StateCode),
			zap.String("city", q.City),
			zap.String("zip", q.ZipCode),
			zap.Error(err))
		s.metrics.CensusRequest("error")
		s.metrics.CensusFallback()
		return Lookup{StateCode: q.StateCode, Baseline: models.FallbackBaseline(), Fallback: true}, nil
	}

	s.metrics.CensusRequest("ok")
	s.logger.Debug("census baseline fetched",
		zap.String("state", q.StateCode),
		zap.Int("rows", len(rows)))

	return Lookup{StateCode: q.StateCode, Baseline: Normalize(rows)}, nil
}

// Raw resolves the state and returns the Census rows unchanged.
func (s *Service) Raw(ctx context.Context, loc models.Location) ([][]string, error) {
	q := Query{City: loc.City, ZipCode: loc.ZipCode}
	if loc.State != "" {
		code, err := geo.ResolveStateCode(loc.State)
		if err != nil {
			return nil, err
		}
		q.StateCode = code
	}

	rows, err := s.fetcher.Fetch(ctx, q)
	if err != nil {
		s.metrics.CensusRequest("error")
		return nil, err
	}
	s.metrics.CensusRequest("ok")
	return rows, nil
}
