package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/digital-twin-agent/internal/census"
	"github.com/BerylCAtieno/digital-twin-agent/internal/geo"
	"github.com/BerylCAtieno/digital-twin-agent/internal/models"
	"github.com/BerylCAtieno/digital-twin-agent/internal/persona"
)

func (s *Server) handleCensus(c *gin.Context) {
	loc := models.Location{
		State:   c.Query("state"),
		City:    c.Query("city"),
		ZipCode: c.Query("zipCode"),
	}

	rows, err := s.census.Raw(c.Request.Context(), loc)
	if err != nil {
		var upstream *census.UpstreamError
		switch {
		case errors.Is(err, geo.ErrInvalidLocation),
			errors.Is(err, census.ErrStateRequired),
			errors.Is(err, census.ErrNoLocation):
			abortError(c, http.StatusBadRequest, err.Error())
		case errors.As(err, &upstream) && upstream.Status != 0:
			abortError(c, upstream.Status, err.Error())
		default:
			s.logger.Error("census request failed", zap.Error(err))
			abortError(c, http.StatusInternalServerError, "Failed to fetch census data")
		}
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (s *Server) handleBaseline(c *gin.Context) {
	var loc models.Location
	if err := c.ShouldBindJSON(&loc); err != nil {
		abortError(c, http.StatusBadRequest, "Invalid location")
		return
	}

	lookup, err := s.census.Lookup(c.Request.Context(), loc)
	if err != nil {
		abortError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, lookup)
}

type extractRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleExtract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		abortError(c, http.StatusBadRequest, "Missing text")
		return
	}
	c.JSON(http.StatusOK, s.twin.FromText(c.Request.Context(), req.Text))
}

func (s *Server) handleValidate(c *gin.Context) {
	profile, ok := bindProfile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.comparator.Validate(c.Request.Context(), profile))
}

type spendingAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type personaResponse struct {
	models.PersonaTraits
	AnnualSpending []spendingAmount `json:"annualSpending"`
}

func newPersonaResponse(profile models.DemographicProfile) personaResponse {
	traits := persona.Synthesize(profile)
	amounts := make([]spendingAmount, 0, len(traits.SpendingHabits))
	for _, h := range traits.SpendingHabits {
		amounts = append(amounts, spendingAmount{Category: h.Category, Amount: h.Amount(profile.Income)})
	}
	return personaResponse{PersonaTraits: traits, AnnualSpending: amounts}
}

func (s *Server) handlePersona(c *gin.Context) {
	profile, ok := bindProfile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newPersonaResponse(profile))
}

type scenarioRequest struct {
	Profile    models.DemographicProfile `json:"profile"`
	Adjustment models.ScenarioAdjustment `json:"adjustment"`
}

type scenarioResponse struct {
	Profile  models.DemographicProfile `json:"profile"`
	Insights models.InsightSet         `json:"insights"`
	Persona  personaResponse           `json:"persona"`
}

func (s *Server) handleScenario(c *gin.Context) {
	var req scenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "Invalid scenario request")
		return
	}
	if err := req.Profile.Validate(); err != nil {
		abortError(c, http.StatusBadRequest, err.Error())
		return
	}

	derived, err := models.ApplyScenario(req.Profile, req.Adjustment)
	if err != nil {
		abortError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := derived.Validate(); err != nil {
		abortError(c, http.StatusBadRequest, err.Error())
		return
	}
	if derived.Location.State != "" {
		if _, err := geo.ResolveStateCode(derived.Location.State); err != nil {
			abortError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	c.JSON(http.StatusOK, scenarioResponse{
		Profile:  derived,
		Insights: s.comparator.Validate(c.Request.Context(), derived),
		Persona:  newPersonaResponse(derived),
	})
}

func (s *Server) handleTwin(c *gin.Context) {
	profile, ok := bindProfile(c)
	if !ok {
		return
	}

	report, err := s.twin.Build(c.Request.Context(), profile, c.Query("description"))
	if err != nil {
		abortError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, report)
}

// bindProfile decodes and validates a profile body, answering 400 itself on
// failure.
func bindProfile(c *gin.Context) (models.DemographicProfile, bool) {
	var profile models.DemographicProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		abortError(c, http.StatusBadRequest, "Invalid demographic profile")
		return profile, false
	}
	if err := profile.Validate(); err != nil {
		abortError(c, http.StatusBadRequest, err.Error())
		return profile, false
	}
	return profile, true
}
