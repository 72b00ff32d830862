package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// CycleMonths is the length of one production cycle.
const CycleMonths = 12

// Amounts reach the shell and tree view as JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// RevenuePhase is a contiguous block of the production cycle paying a fixed monthly rate.
type RevenuePhase struct {
	Months  int             `json:"months"`
	Revenue decimal.Decimal `json:"revenue"`
}

// RevenueConfig describes the staggered lactation cycle. Phases run in the
// order High, Medium, Rest after the landing period.
type RevenueConfig struct {
	LandingPeriod int          `json:"landingPeriod"`
	High          RevenuePhase `json:"highRevenuePhase"`
	Medium        RevenuePhase `json:"mediumRevenuePhase"`
	Rest          RevenuePhase `json:"restPeriod"`
}

// DefaultRevenueConfig returns the stock rate card: 2 landing months, then
// 5 months at 9000, 3 months at 6000 and 4 months at rest.
func DefaultRevenueConfig() RevenueConfig {
	return RevenueConfig{
		LandingPeriod: 2,
		High:          RevenuePhase{Months: 5, Revenue: decimal.NewFromInt(9000)},
		Medium:        RevenuePhase{Months: 3, Revenue: decimal.NewFromInt(6000)},
		Rest:          RevenuePhase{Months: 4, Revenue: decimal.Zero},
	}
}

// Validate ensures the phases fill exactly one cycle and no rate is negative.
func (c RevenueConfig) Validate() error {
	if c.LandingPeriod < 0 {
		return errors.New("landing period must not be negative")
	}
	phases := []struct {
		name  string
		phase RevenuePhase
	}{{"high", c.High}, {"medium", c.Medium}, {"rest", c.Rest}}
	for _, p := range phases {
		if p.phase.Months < 0 {
			return fmt.Errorf("%s phase months must not be negative", p.name)
		}
		if p.phase.Revenue.IsNegative() {
			return fmt.Errorf("%s phase revenue must not be negative", p.name)
		}
	}
	if total := c.High.Months + c.Medium.Months + c.Rest.Months; total != CycleMonths {
		return fmt.Errorf("phase months sum to %d, want %d", total, CycleMonths)
	}
	return nil
}

// YearlyRevenue is the herd's financial record for one calendar year.
type YearlyRevenue struct {
	Year                int             `json:"year"`
	ActiveUnits         int             `json:"activeUnits"`
	Revenue             decimal.Decimal `json:"revenue"`
	MonthlyRevenue      decimal.Decimal `json:"monthlyRevenue"`
	TotalAnimals        int             `json:"totalBuffaloes"`
	ProducingAnimals    int             `json:"producingBuffaloes"`
	NonProducingAnimals int             `json:"nonProducingBuffaloes"`
	StartMonth          string          `json:"startMonth"`
	StartYear           int             `json:"startYear"`
}

// RevenueSummary is the full yearly series plus run totals.
type RevenueSummary struct {
	Yearly                 []YearlyRevenue `json:"yearlyData"`
	TotalRevenue           decimal.Decimal `json:"totalRevenue"`
	AverageAnnualRevenue   decimal.Decimal `json:"averageAnnualRevenue"`
	TotalUnits             float64         `json:"totalUnits"`
	TotalMatureAnimalYears int             `json:"totalMatureBuffaloYears"`
	RevenueStdDev          float64         `json:"revenueStdDev"`
	Config                 RevenueConfig   `json:"revenueConfig"`
}
