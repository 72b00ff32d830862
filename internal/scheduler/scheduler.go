package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdsim/internal/config"
	"github.com/mamadbah2/herdsim/internal/domain/models"
	"github.com/mamadbah2/herdsim/pkg/clients/callback"
)

// DigestGenerator produces the projection digest for a scenario.
type DigestGenerator interface {
	GenerateDigest(ctx context.Context, params models.SimulationParams) (string, *models.SimulationResult, error)
}

// DigestPayload is delivered to the shell with every scheduled projection.
type DigestPayload struct {
	Text   string                   `json:"text"`
	Result *models.SimulationResult `json:"result"`
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	params   models.SimulationParams
	digests  DigestGenerator
	shell    callback.Client
	logger   *zap.Logger
}

// NewScheduler creates a scheduler that runs the default scenario on the digest schedule.
func NewScheduler(cfg config.Config, digests DigestGenerator, shell callback.Client, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Digest.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Digest.Timezone, err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: cfg.Digest.CronSchedule,
		params:   cfg.Simulation.DefaultParams(),
		digests:  digests,
		shell:    shell,
		logger:   logger,
	}, nil
}

// Start registers the digest job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.sendDigest); err != nil {
		return fmt.Errorf("schedule projection digest: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running digest to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendDigest() {
	s.logger.Info("generating projection digest")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	text, res, err := s.digests.GenerateDigest(ctx, s.params)
	if err != nil {
		s.logger.Error("failed to generate projection digest", zap.Error(err))
		return
	}

	// The full herd is only needed by the tree view, which runs its own simulations.
	trimmed := *res
	trimmed.Herd = nil
	trimmed.Lineage = nil

	msg := callback.Message{
		Type:    models.MessageProjectionDigest,
		Payload: DigestPayload{Text: text, Result: &trimmed},
	}

	if err := s.shell.Deliver(ctx, msg); err != nil {
		s.logger.Error("failed to deliver projection digest", zap.Error(err))
	} else {
		s.logger.Info("projection digest delivered", zap.String("run_id", res.RunID.String()))
	}
}
