// Package simulation is the single entry point that turns the four
// simulation inputs into an immutable herd and revenue result.
package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdsim/internal/domain/models"
	"github.com/mamadbah2/herdsim/internal/service/herd"
	"github.com/mamadbah2/herdsim/internal/service/ratecard"
	"github.com/mamadbah2/herdsim/internal/service/revenue"
)

// ErrInvalidArgument is returned for inputs rejected before simulation begins.
var ErrInvalidArgument = herd.ErrInvalidArgument

// Limits bounds the size of a single run.
type Limits struct {
	MaxUnits int
	MaxYears int
}

// Runner is the operation exposed to the HTTP layer, the CLI and the scheduler.
type Runner interface {
	Run(ctx context.Context, req models.SimulationRequest) (*models.SimulationResult, error)
	Validate(p models.SimulationParams) error
}

// Service runs simulations. It holds no per-run state and is safe for concurrent use.
type Service struct {
	rates  ratecard.Provider
	limits Limits
	logger *zap.Logger
	now    func() time.Time
	newID  func() uuid.UUID
}

// NewService wires a new simulation service instance. Zero limits disable the bound.
func NewService(rates ratecard.Provider, limits Limits, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rates == nil {
		rates = ratecard.Static(models.DefaultRevenueConfig())
	}
	return &Service{
		rates:  rates,
		limits: limits,
		logger: logger,
		now:    time.Now,
		newID:  uuid.New,
	}
}

// Run validates the request, generates the herd, indexes its lineage and,
// unless SkipRevenue is set, accrues revenue over the same horizon.
func (s *Service) Run(ctx context.Context, req models.SimulationRequest) (*models.SimulationResult, error) {
	p := req.SimulationParams
	if err := s.Validate(p); err != nil {
		return nil, err
	}

	start := s.now()
	h, err := herd.Generate(p)
	if err != nil {
		return nil, err
	}
	lineage := herd.NewLineage(h)

	result := &models.SimulationResult{
		RunID:         s.newID(),
		Params:        p,
		TotalAnimals:  h.Size(),
		Herd:          h.Animals,
		Lineage:       lineage.ChildMap(),
		MaxGeneration: lineage.MaxGeneration(),
		GeneratedAt:   start.UTC(),
	}

	if !req.SkipRevenue {
		cfg, err := s.rates.RateCard(ctx)
		if err != nil {
			return nil, fmt.Errorf("load rate card: %w", err)
		}
		model, err := revenue.NewModel(cfg)
		if err != nil {
			return nil, err
		}
		summary, err := model.Accrue(h.Animals, p.StartYear, p.StartMonth, p.Years)
		if err != nil {
			return nil, fmt.Errorf("accrue revenue: %w", err)
		}
		result.Revenue = &summary
	}

	s.logger.Info("simulation completed",
		zap.String("run_id", result.RunID.String()),
		zap.Int("units", p.Units),
		zap.Int("years", p.Years),
		zap.Int("start_year", p.StartYear),
		zap.Int("start_month", p.StartMonth),
		zap.Int("herd_size", result.TotalAnimals),
		zap.Bool("revenue", result.Revenue != nil),
		zap.Duration("duration", s.now().Sub(start)))

	return result, nil
}

// Validate applies the input rules and the configured limits without running anything.
func (s *Service) Validate(p models.SimulationParams) error {
	if err := herd.ValidateParams(p); err != nil {
		return err
	}
	if s.limits.MaxUnits > 0 && p.Units > s.limits.MaxUnits {
		return fmt.Errorf("%w: units must be at most %d, got %d", ErrInvalidArgument, s.limits.MaxUnits, p.Units)
	}
	if s.limits.MaxYears > 0 && p.Years > s.limits.MaxYears {
		return fmt.Errorf("%w: years must be at most %d, got %d", ErrInvalidArgument, s.limits.MaxYears, p.Years)
	}
	return nil
}
