// Package twin assembles a digital twin report: the census comparison, the
// synthesized persona and an optional model-written summary.
package twin

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BerylCAtieno/digital-twin-agent/internal/metrics"
	"github.com/BerylCAtieno/digital-twin-agent/internal/models"
	"github.com/BerylCAtieno/digital-twin-agent/internal/nlp"
	"github.com/BerylCAtieno/digital-twin-agent/internal/persona"
)

const defaultDescription = "Give an overall assessment of this person's financial position."

// Extraction methods.
const (
	MethodModel   = "llm"
	MethodPattern = "pattern"
)

type InsightValidator interface {
	Validate(ctx context.Context, profile models.DemographicProfile) models.InsightSet
}

type Summarizer interface {
	Summarize(ctx context.Context, description string, profile models.DemographicProfile) (string, error)
}

type ProfileExtractor interface {
	ExtractProfile(ctx context.Context, text string) (models.DemographicProfile, error)
}

type Report struct {
	Profile     models.DemographicProfile `json:"profile"`
	Insights    models.InsightSet         `json:"insights"`
	Persona     models.PersonaTraits      `json:"persona"`
	Summary     string                    `json:"summary,omitempty"`
	GeneratedAt time.Time                 `json:"generatedAt"`
}

// Extraction is a profile read from free text together with what the pattern
// extractor found on its own.
type Extraction struct {
	Profile    models.DemographicProfile `json:"profile"`
	Extracted  models.ExtractedInfo      `json:"extracted"`
	Confidence float64                   `json:"confidence"`
	Method     string                    `json:"method"`
}

type Service struct {
	validator  InsightValidator
	summarizer Summarizer
	extractor  ProfileExtractor
	logger     *zap.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
}

// NewService wires the report pipeline. summarizer and extractor may be nil,
// in which case reports carry no summary and text is read by patterns only.
func NewService(validator InsightValidator, summarizer Summarizer, extractor ProfileExtractor, logger *zap.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		validator:  validator,
		summarizer: summarizer,
		extractor:  extractor,
		logger:     logger,
		metrics:    m,
		now:        time.Now,
	}
}

// Build validates profile and produces its report. A failed summary leaves
// Summary empty; it never fails the report.
func (s *Service) Build(ctx context.Context, profile models.DemographicProfile, description string) (*Report, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		description = defaultDescription
	}

	report := &Report{Profile: profile}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		report.Insights = s.validator.Validate(gctx, profile)
		return nil
	})
	g.Go(func() error {
		report.Persona = persona.Synthesize(profile)
		return nil
	})
	if s.summarizer != nil {
		g.Go(func() error {
			summary, err := s.summarizer.Summarize(gctx, description, profile)
			if err != nil {
				s.logger.Warn("summary unavailable", zap.Error(err))
				return nil
			}
			report.Summary = summary
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	report.GeneratedAt = s.now().UTC()
	return report, nil
}

// FromText reads a profile from a free-text description. The model extractor
// is tried first; when it fails or returns an invalid profile the pattern
// extractor's inference is used.
func (s *Service) FromText(ctx context.Context, text string) Extraction {
	extracted := nlp.Extract(text)
	out := Extraction{Extracted: extracted, Confidence: extracted.Confidence}

	if s.extractor != nil {
		profile, err := s.extractor.ExtractProfile(ctx, text)
		if err == nil {
			err = profile.Validate()
		}
		if err == nil {
			out.Profile = profile
			out.Method = MethodModel
			s.metrics.Extraction(MethodModel)
			return out
		}
		s.logger.Warn("model extraction failed, using patterns", zap.Error(err))
	}

	out.Profile = nlp.InferDemographics(text)
	out.Method = MethodPattern
	s.metrics.Extraction(MethodPattern)
	return out
}
