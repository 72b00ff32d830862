// Package ratecard provides the revenue rate card, either from static
// configuration or from a Google Sheet maintained by the farm office.
package ratecard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdsim/internal/domain/models"
	repo "github.com/mamadbah2/herdsim/internal/repository/sheets"
)

// Provider supplies the rate card used by a simulation run.
type Provider interface {
	RateCard(ctx context.Context) (models.RevenueConfig, error)
}

// Static always returns the same rate card.
type Static models.RevenueConfig

// RateCard implements Provider.
func (s Static) RateCard(context.Context) (models.RevenueConfig, error) {
	return models.RevenueConfig(s), nil
}

// SheetLoader reads rows of the form `phase | months | revenue` where phase is
// one of landing, high, medium or rest. Phases missing from the sheet keep
// their fallback values, a blank revenue cell keeps the fallback rate and
// rows that do not parse are skipped.
type SheetLoader struct {
	repo       repo.Repository
	sheetRange string
	fallback   models.RevenueConfig
	logger     *zap.Logger
}

// NewSheetLoader wires a loader reading sheetRange.
func NewSheetLoader(repository repo.Repository, sheetRange string, fallback models.RevenueConfig, logger *zap.Logger) *SheetLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SheetLoader{repo: repository, sheetRange: sheetRange, fallback: fallback, logger: logger}
}

// RateCard implements Provider by reading the sheet on every call.
func (l *SheetLoader) RateCard(ctx context.Context) (models.RevenueConfig, error) {
	return l.Load(ctx)
}

// Load reads and validates the rate card.
func (l *SheetLoader) Load(ctx context.Context) (models.RevenueConfig, error) {
	rows, err := l.repo.ReadRange(ctx, l.sheetRange)
	if err != nil {
		return models.RevenueConfig{}, fmt.Errorf("load rate card range: %w", err)
	}

	cfg := l.fallback
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}

		phase := strings.ToLower(strings.TrimSpace(fmt.Sprint(row[0])))
		months, err := parseInt(row[1])
		if err != nil {
			l.logger.Debug("skip rate card row with invalid months", zap.Any("value", row[1]), zap.Error(err))
			continue
		}

		var rate *decimal.Decimal
		if len(row) > 2 && strings.TrimSpace(fmt.Sprint(row[2])) != "" {
			v, err := parseDecimal(row[2])
			if err != nil {
				l.logger.Debug("skip rate card row with invalid revenue", zap.Any("value", row[2]), zap.Error(err))
				continue
			}
			rate = &v
		}

		switch phase {
		case "landing":
			cfg.LandingPeriod = months
		case "high":
			cfg.High = withRow(cfg.High, months, rate)
		case "medium":
			cfg.Medium = withRow(cfg.Medium, months, rate)
		case "rest":
			cfg.Rest = withRow(cfg.Rest, months, rate)
		default:
			l.logger.Debug("skip unknown rate card phase", zap.String("phase", phase))
		}
	}

	if err := cfg.Validate(); err != nil {
		return models.RevenueConfig{}, fmt.Errorf("rate card from sheet: %w", err)
	}
	return cfg, nil
}

// withRow applies a sheet row to a phase. A missing revenue cell keeps the current rate.
func withRow(p models.RevenuePhase, months int, rate *decimal.Decimal) models.RevenuePhase {
	p.Months = months
	if rate != nil {
		p.Revenue = *rate
	}
	return p
}

func parseInt(value interface{}) (int, error) {
	str := strings.TrimSpace(fmt.Sprint(value))
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.Atoi(str)
}

func parseDecimal(value interface{}) (decimal.Decimal, error) {
	str := strings.ReplaceAll(strings.TrimSpace(fmt.Sprint(value)), ",", "")
	if str == "" {
		return decimal.Zero, fmt.Errorf("empty numeric value")
	}
	return decimal.NewFromString(str)
}
