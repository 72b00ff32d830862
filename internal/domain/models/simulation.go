package models

import (
	"time"

	"github.com/google/uuid"
)

// SimulationParams are the four values that fully determine a run.
type SimulationParams struct {
	Units      int `json:"units" yaml:"units"`
	Years      int `json:"years" yaml:"years"`
	StartYear  int `json:"startYear" yaml:"start_year"`
	StartMonth int `json:"startMonth" yaml:"start_month"`
}

// SimulationRequest is the inbound shape accepted by the HTTP surface and CLI.
type SimulationRequest struct {
	SimulationParams
	SkipRevenue bool `json:"skipRevenue"`
}

// SimulationResult is the immutable value handed to presentation layers.
type SimulationResult struct {
	RunID         uuid.UUID        `json:"runId"`
	Params        SimulationParams `json:"params"`
	TotalAnimals  int              `json:"totalBuffaloes"`
	Herd          []Animal         `json:"buffaloes,omitempty"`
	Lineage       map[int][]int    `json:"lineage,omitempty"`
	MaxGeneration int              `json:"maxGeneration"`
	Revenue       *RevenueSummary  `json:"revenueData,omitempty"`
	GeneratedAt   time.Time        `json:"generatedAt"`
}

// Message types exchanged with the embedding shell.
const (
	MessageRunSimulation    = "RUN_SIMULATION"
	MessageSimulationResult = "SIMULATION_RESULT"
	MessageProjectionDigest = "PROJECTION_DIGEST"
)

// ShellMessage is the envelope used by the host application that embeds the tree view.
type ShellMessage struct {
	Type    string             `json:"type" binding:"required"`
	Payload *SimulationRequest `json:"payload"`
}
