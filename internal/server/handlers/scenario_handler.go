package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdsim/internal/domain/models"
)

type scenarioBody struct {
	Units      int `json:"units"`
	Years      int `json:"years"`
	StartYear  int `json:"startYear"`
	StartMonth int `json:"startMonth"`
}

// ListScenarios returns all stored presets.
func (h *SimulationHandler) ListScenarios(c *gin.Context) {
	scenarios, err := h.scenarios.ListScenarios(c.Request.Context())
	if err != nil {
		h.respondError(c, "failed listing scenarios", err)
		return
	}
	c.JSON(http.StatusOK, scenarios)
}

// GetScenario returns one preset.
func (h *SimulationHandler) GetScenario(c *gin.Context) {
	scenario, err := h.scenarios.FindScenario(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.respondError(c, "failed loading scenario", err)
		return
	}
	c.JSON(http.StatusOK, scenario)
}

// PutScenario creates or replaces a preset after validating its inputs.
func (h *SimulationHandler) PutScenario(c *gin.Context) {
	var body scenarioBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.Warn("invalid scenario payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	scenario := models.Scenario{
		Name:       c.Param("name"),
		Units:      body.Units,
		Years:      body.Years,
		StartYear:  body.StartYear,
		StartMonth: body.StartMonth,
	}
	if err := h.runner.Validate(scenario.Params()); err != nil {
		h.respondError(c, "invalid scenario", err)
		return
	}

	if err := h.scenarios.SaveScenario(c.Request.Context(), scenario); err != nil {
		h.respondError(c, "failed saving scenario", err)
		return
	}

	saved, err := h.scenarios.FindScenario(c.Request.Context(), scenario.Name)
	if err != nil {
		h.respondError(c, "failed loading scenario", err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeleteScenario removes a preset.
func (h *SimulationHandler) DeleteScenario(c *gin.Context) {
	if err := h.scenarios.DeleteScenario(c.Request.Context(), c.Param("name")); err != nil {
		h.respondError(c, "failed deleting scenario", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RunScenario simulates a stored preset.
func (h *SimulationHandler) RunScenario(c *gin.Context) {
	scenario, err := h.scenarios.FindScenario(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.respondError(c, "failed loading scenario", err)
		return
	}

	res, ok := h.run(c, models.SimulationRequest{SimulationParams: scenario.Params()})
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.shape(c, res))
}
