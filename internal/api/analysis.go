package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/digital-twin-agent/internal/models"
	"github.com/BerylCAtieno/digital-twin-agent/internal/profiler"
)

type insightsRequest struct {
	Prompt       string                     `json:"prompt"`
	Demographics *models.DemographicProfile `json:"demographics"`
}

func (s *Server) handleInsights(c *gin.Context) {
	var req insightsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" || req.Demographics == nil {
		abortError(c, http.StatusBadRequest, "Missing prompt or demographics")
		return
	}
	if !validDemographics(c, *req.Demographics) {
		return
	}

	s.stream(c, "Failed to generate insights", func(ctx context.Context, w io.Writer) error {
		return s.analyst.Insights(ctx, req.Prompt, *req.Demographics, w)
	})
}

type priceRequest struct {
	Demographics *models.DemographicProfile `json:"demographics"`
	Product      *models.Product            `json:"product"`
}

func (s *Server) handlePriceProduct(c *gin.Context) {
	var req priceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Demographics == nil || req.Product == nil {
		abortError(c, http.StatusBadRequest, "Missing required parameters")
		return
	}
	if !validDemographics(c, *req.Demographics) {
		return
	}

	out, err := s.analyst.PriceProduct(c.Request.Context(), *req.Demographics, *req.Product)
	s.respond(c, out, err, "Failed to analyze product pricing")
}

func (s *Server) handleSocialGraph(c *gin.Context) {
	profile, ok := bindProfile(c)
	if !ok {
		return
	}

	out, err := s.analyst.SocialGraph(c.Request.Context(), profile)
	s.respond(c, out, err, "Failed to generate social graph analysis")
}

func (s *Server) handleDayInLife(c *gin.Context) {
	profile, ok := bindProfile(c)
	if !ok {
		return
	}

	out, err := s.analyst.DayInLife(c.Request.Context(), profile)
	s.respond(c, out, err, "Failed to generate lifestyle insights")
}

type comparisonRequest struct {
	Demographics *models.DemographicProfile `json:"demographics"`
	XMetric      string                     `json:"xMetric"`
	YMetric      string                     `json:"yMetric"`
}

func (s *Server) handleXYComparison(c *gin.Context) {
	var req comparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Demographics == nil {
		abortError(c, http.StatusBadRequest, "Missing required parameters")
		return
	}
	if !validDemographics(c, *req.Demographics) {
		return
	}

	s.stream(c, "Failed to generate comparison data", func(ctx context.Context, w io.Writer) error {
		return s.analyst.XYComparison(ctx, *req.Demographics, req.XMetric, req.YMetric, w)
	})
}

type correlationRequest struct {
	Demographics *models.DemographicProfile `json:"demographics"`
	Type         string                     `json:"type"`
}

func (s *Server) handleCorrelations(c *gin.Context) {
	var req correlationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Demographics == nil || req.Type == "" {
		abortError(c, http.StatusBadRequest, "Missing required parameters")
		return
	}
	if !validDemographics(c, *req.Demographics) {
		return
	}

	s.stream(c, "Failed to generate correlation insights", func(ctx context.Context, w io.Writer) error {
		return s.analyst.Correlations(ctx, *req.Demographics, req.Type, w)
	})
}

func (s *Server) respond(c *gin.Context, out any, err error, failure string) {
	if err != nil {
		if isInputError(err) {
			abortError(c, http.StatusBadRequest, err.Error())
			return
		}
		_ = c.Error(err)
		abortError(c, http.StatusInternalServerError, failure)
		return
	}
	c.JSON(http.StatusOK, out)
}

// stream runs produce against a writer that sends headers on the first chunk
// and flushes every chunk. Errors before the first chunk become JSON error
// responses; later ones can only cut the stream short.
func (s *Server) stream(c *gin.Context, failure string, produce func(ctx context.Context, w io.Writer) error) {
	w := &chunkWriter{c: c}
	err := produce(c.Request.Context(), w)
	if err == nil {
		if !w.started {
			w.start()
		}
		return
	}

	if w.started {
		s.logger.Error("stream interrupted",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err))
		_ = c.Error(err)
		return
	}

	if isInputError(err) {
		abortError(c, http.StatusBadRequest, err.Error())
		return
	}
	_ = c.Error(err)
	abortError(c, http.StatusInternalServerError, failure)
}

func isInputError(err error) bool {
	return errors.Is(err, profiler.ErrMissingInput) || errors.Is(err, profiler.ErrInvalidCorrelationType)
}

type chunkWriter struct {
	c       *gin.Context
	started bool
}

func (w *chunkWriter) start() {
	w.started = true
	h := w.c.Writer.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	w.c.Status(http.StatusOK)
	w.c.Writer.WriteHeaderNow()
}

func (w *chunkWriter) Write(p []byte) (int, error) {
	if !w.started {
		w.start()
	}
	n, err := w.c.Writer.Write(p)
	if err != nil {
		return n, err
	}
	w.c.Writer.Flush()
	return n, nil
}

func validDemographics(c *gin.Context, profile models.DemographicProfile) bool {
	if err := profile.Validate(); err != nil {
		abortError(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
