// Package revenue accrues per-animal income over staggered production cycles
// and aggregates it into a yearly series.
package revenue

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/mamadbah2/herdsim/internal/domain/models"
)

// Model applies a validated rate card to herds.
type Model struct {
	cfg models.RevenueConfig
}

// NewModel validates the rate card and returns a model using it.
func NewModel(cfg models.RevenueConfig) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("revenue config: %w", err)
	}
	return &Model{cfg: cfg}, nil
}

// Config returns the rate card in use.
func (m *Model) Config() models.RevenueConfig {
	return m.cfg
}

// MonthlyRevenue returns the income of one animal for the given calendar
// month (0-11). The cycle is anchored on the simulation start year and the
// animal's acquisition month.
func (m *Model) MonthlyRevenue(acquisitionMonth, year, month, startYear int) decimal.Decimal {
	monthsSinceAcquisition := (year-startYear)*12 + (month - acquisitionMonth)
	if monthsSinceAcquisition < m.cfg.LandingPeriod {
		return decimal.Zero
	}

	cyclePosition := (monthsSinceAcquisition - m.cfg.LandingPeriod) % models.CycleMonths
	switch {
	case cyclePosition < m.cfg.High.Months:
		return m.cfg.High.Revenue
	case cyclePosition < m.cfg.High.Months+m.cfg.Medium.Months:
		return m.cfg.Medium.Revenue
	default:
		return m.cfg.Rest.Revenue
	}
}

// AnnualRevenue sums the income of every animal producing in year. An animal
// produces once year - birthYear >= 3. total counts animals born on or before year.
func (m *Model) AnnualRevenue(animals []models.Animal, startYear, year int) (revenue decimal.Decimal, producing, total int) {
	revenue = decimal.Zero
	for _, a := range animals {
		if a.BirthYear <= year {
			total++
		}
		if year-a.BirthYear < models.MaturityAge {
			continue
		}
		producing++
		for month := 0; month < 12; month++ {
			revenue = revenue.Add(m.MonthlyRevenue(a.AcquisitionMonth, year, month, startYear))
		}
	}
	return revenue, producing, total
}

// Accrue computes the yearly series for years calendar years starting at startYear.
func (m *Model) Accrue(animals []models.Animal, startYear, startMonth, years int) (models.RevenueSummary, error) {
	if years < 1 {
		return models.RevenueSummary{}, fmt.Errorf("years must be at least 1, got %d", years)
	}
	if startMonth < 0 || startMonth > 11 {
		return models.RevenueSummary{}, fmt.Errorf("startMonth must be within 0-11, got %d", startMonth)
	}

	summary := models.RevenueSummary{
		Yearly:       make([]models.YearlyRevenue, 0, years),
		TotalRevenue: decimal.Zero,
		Config:       m.cfg,
	}
	annual := make([]float64, 0, years)
	monthName := time.Month(startMonth + 1).String()

	for offset := 0; offset < years; offset++ {
		year := startYear + offset
		revenue, producing, total := m.AnnualRevenue(animals, startYear, year)

		monthly := decimal.Zero
		if producing > 0 {
			monthly = revenue.Div(decimal.NewFromInt(int64(producing * 12)))
		}

		summary.Yearly = append(summary.Yearly, models.YearlyRevenue{
			Year:                year,
			ActiveUnits:         (total + 1) / 2,
			Revenue:             revenue,
			MonthlyRevenue:      monthly,
			TotalAnimals:        total,
			ProducingAnimals:    producing,
			NonProducingAnimals: total - producing,
			StartMonth:          monthName,
			StartYear:           startYear,
		})
		summary.TotalRevenue = summary.TotalRevenue.Add(revenue)
		summary.TotalMatureAnimalYears += producing
		annual = append(annual, revenue.InexactFloat64())
	}

	summary.AverageAnnualRevenue = summary.TotalRevenue.Div(decimal.NewFromInt(int64(years)))
	summary.TotalUnits = float64(summary.TotalMatureAnimalYears) / float64(years)
	if len(annual) > 1 {
		summary.RevenueStdDev = stat.StdDev(annual, nil)
	}

	return summary, nil
}
