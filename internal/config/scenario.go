package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mamadbah2/herdsim/internal/domain/models"
)

// LoadScenarioFile reads a YAML scenario such as:
//
//	name: two-units
//	units: 2
//	years: 10
//	start_year: 2026
//	start_month: 6
//
// Unknown keys are rejected so typos do not silently fall back to defaults.
func LoadScenarioFile(path string) (models.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Scenario{}, fmt.Errorf("read scenario file %s: %w", path, err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes a YAML scenario document.
func ParseScenario(data []byte) (models.Scenario, error) {
	var s models.Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return models.Scenario{}, fmt.Errorf("decode scenario: %w", err)
	}
	if s.Name == "" {
		return models.Scenario{}, errors.New("scenario name must be provided")
	}
	return s, nil
}
