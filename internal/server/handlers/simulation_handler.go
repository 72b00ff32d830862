package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdsim/internal/domain/models"
	"github.com/mamadbah2/herdsim/internal/repository"
	"github.com/mamadbah2/herdsim/internal/service/ratecard"
	"github.com/mamadbah2/herdsim/internal/service/reporting"
	"github.com/mamadbah2/herdsim/internal/service/simulation"
)

// SimulationHandler exposes simulation runs, scenario presets and the rate card over HTTP.
type SimulationHandler struct {
	runner    simulation.Runner
	scenarios repository.ScenarioRepository
	rates     ratecard.Provider
	logger    *zap.Logger
}

// NewSimulationHandler constructs the HTTP handler adapter.
func NewSimulationHandler(runner simulation.Runner, scenarios repository.ScenarioRepository, rates ratecard.Provider, logger *zap.Logger) *SimulationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimulationHandler{runner: runner, scenarios: scenarios, rates: rates, logger: logger}
}

// Run executes one simulation from a JSON body. ?herd=false drops the animal
// list and lineage from the response.
func (h *SimulationHandler) Run(c *gin.Context) {
	var req models.SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid simulation payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	res, ok := h.run(c, req)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.shape(c, res))
}

// Message accepts the shell's {"type":"RUN_SIMULATION","payload":{...}} envelope.
func (h *SimulationHandler) Message(c *gin.Context) {
	var msg models.ShellMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		h.logger.Warn("invalid shell message", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message"})
		return
	}

	if msg.Type != models.MessageRunSimulation || msg.Payload == nil {
		h.logger.Warn("unsupported shell message", zap.String("type", msg.Type))
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported message type %q", msg.Type)})
		return
	}

	res, ok := h.run(c, *msg.Payload)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"type": models.MessageSimulationResult, "payload": h.shape(c, res)})
}

type csvQuery struct {
	Units      int `form:"units"`
	Years      int `form:"years"`
	StartYear  int `form:"startYear"`
	StartMonth int `form:"startMonth"`
}

// ExportCSV returns the yearly revenue series for the query parameters as CSV.
func (h *SimulationHandler) ExportCSV(c *gin.Context) {
	var q csvQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	}

	res, ok := h.run(c, models.SimulationRequest{SimulationParams: models.SimulationParams{
		Units: q.Units, Years: q.Years, StartYear: q.StartYear, StartMonth: q.StartMonth,
	}})
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := reporting.WriteYearlyCSV(&buf, res.Revenue); err != nil {
		h.logger.Error("failed writing csv export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=herd-%d-%dy.csv", q.StartYear, q.Years))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// RateCard returns the rate card simulations currently use.
func (h *SimulationHandler) RateCard(c *gin.Context) {
	cfg, err := h.rates.RateCard(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading rate card", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "rate card unavailable"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *SimulationHandler) run(c *gin.Context, req models.SimulationRequest) (*models.SimulationResult, bool) {
	res, err := h.runner.Run(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, "simulation failed", err)
		return nil, false
	}
	return res, true
}

func (h *SimulationHandler) shape(c *gin.Context, res *models.SimulationResult) *models.SimulationResult {
	includeHerd, err := strconv.ParseBool(c.DefaultQuery("herd", "true"))
	if err != nil || includeHerd {
		return res
	}
	trimmed := *res
	trimmed.Herd = nil
	trimmed.Lineage = nil
	return &trimmed
}

func (h *SimulationHandler) respondError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, simulation.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrScenarioNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
