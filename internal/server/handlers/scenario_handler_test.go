package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herdsim/internal/domain/models"
)

func TestScenarioLifecycle(t *testing.T) {
	r := newTestEngine(nil)

	w := perform(r, http.MethodPut, "/scenarios/pilot", `{"units":1,"years":3,"startYear":2026,"startMonth":3}`)
	require.Equal(t, http.StatusOK, w.Code)

	var saved models.Scenario
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, "pilot", saved.Name)
	assert.Equal(t, 3, saved.StartMonth)
	assert.False(t, saved.CreatedAt.IsZero())

	w = perform(r, http.MethodGet, "/scenarios", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Scenario
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	w = perform(r, http.MethodPost, "/scenarios/pilot/run?herd=false", "")
	require.Equal(t, http.StatusOK, w.Code)
	var res models.SimulationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 8, res.TotalAnimals)
	assert.Empty(t, res.Herd)
	require.NotNil(t, res.Revenue)
	assert.Equal(t, "April", res.Revenue.Yearly[0].StartMonth)

	w = perform(r, http.MethodDelete, "/scenarios/pilot", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = perform(r, http.MethodGet, "/scenarios/pilot", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScenario_NotFound(t *testing.T) {
	r := newTestEngine(nil)

	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodPost, "/scenarios/missing/run", "").Code)
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodDelete, "/scenarios/missing", "").Code)
}

func TestPutScenario_Validates(t *testing.T) {
	r := newTestEngine(nil)

	w := perform(r, http.MethodPut, "/scenarios/bad", `{"units":0,"years":3,"startYear":2026}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodPut, "/scenarios/bad", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodGet, "/scenarios/bad", "").Code)
}

func TestPutScenario_RejectsScenarioBeyondLimits(t *testing.T) {
	r := newTestEngine(nil)

	// GIVEN a preset longer than the service allows (MaxYears is 12 here)
	w := perform(r, http.MethodPut, "/scenarios/huge", `{"units":1,"years":40,"startYear":2026}`)

	// THEN it is rejected up front instead of being stored and failing on every run
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "years must be at most 12")
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodPost, "/scenarios/huge/run", "").Code)

	w = perform(r, http.MethodPut, "/scenarios/wide", `{"units":6,"years":3,"startYear":2026}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
