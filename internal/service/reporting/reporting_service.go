// Package reporting renders simulation results for people: digests, CSV
// exports and a text outline of the family tree.
package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/herdsim/internal/domain/models"
	"github.com/mamadbah2/herdsim/internal/service/simulation"
)

// Service builds projection digests on top of the simulation runner.
type Service struct {
	runner simulation.Runner
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(runner simulation.Runner, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{runner: runner, logger: logger}
}

// GenerateDigest runs the scenario and returns its summary text together with the result.
func (s *Service) GenerateDigest(ctx context.Context, params models.SimulationParams) (string, *models.SimulationResult, error) {
	res, err := s.runner.Run(ctx, models.SimulationRequest{SimulationParams: params})
	if err != nil {
		return "", nil, fmt.Errorf("run digest scenario: %w", err)
	}
	s.logger.Debug("digest generated", zap.String("run_id", res.RunID.String()))
	return Digest(res), res, nil
}

// Digest summarises a result in a few lines.
func Digest(res *models.SimulationResult) string {
	p := res.Params
	var b strings.Builder

	fmt.Fprintf(&b, "Herd projection %d-%d (%s, from %s %d)\n",
		p.StartYear, p.StartYear+p.Years-1, plural(p.Units, "unit"), MonthName(p.StartMonth), p.StartYear)
	fmt.Fprintf(&b, "Herd: %s buffaloes across %d generations\n",
		FormatNumber(res.TotalAnimals), res.MaxGeneration+1)

	if res.Revenue == nil || len(res.Revenue.Yearly) == 0 {
		b.WriteString("Revenue: not computed")
		return b.String()
	}

	rev := res.Revenue
	fmt.Fprintf(&b, "Revenue: %s total, %s per year on average\n",
		FormatCurrency(rev.TotalRevenue), FormatCurrency(rev.AverageAnnualRevenue))

	last := rev.Yearly[len(rev.Yearly)-1]
	fmt.Fprintf(&b, "Final year %d: %s producing, %s not producing, %s",
		last.Year, FormatNumber(last.ProducingAnimals), FormatNumber(last.NonProducingAnimals), FormatCurrency(last.Revenue))
	return b.String()
}

// MonthName returns the English name for a 0-based month index.
func MonthName(month int) string {
	if month < 0 || month > 11 {
		return fmt.Sprintf("month %d", month)
	}
	return time.Month(month + 1).String()
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
