package reporting

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/mamadbah2/herdsim/internal/domain/models"
)

// yearlyRow is the CSV shape of one YearlyRevenue record.
type yearlyRow struct {
	Year                int    `csv:"year"`
	ActiveUnits         int    `csv:"active_units"`
	TotalAnimals        int    `csv:"total_buffaloes"`
	ProducingAnimals    int    `csv:"producing_buffaloes"`
	NonProducingAnimals int    `csv:"non_producing_buffaloes"`
	Revenue             string `csv:"revenue"`
	MonthlyRevenue      string `csv:"monthly_revenue_per_buffalo"`
	StartMonth          string `csv:"start_month"`
	StartYear           int    `csv:"start_year"`
}

// WriteYearlyCSV writes the yearly revenue series with a header row.
func WriteYearlyCSV(w io.Writer, summary *models.RevenueSummary) error {
	if summary == nil {
		return fmt.Errorf("no revenue data to export")
	}

	rows := make([]*yearlyRow, 0, len(summary.Yearly))
	for _, y := range summary.Yearly {
		rows = append(rows, &yearlyRow{
			Year:                y.Year,
			ActiveUnits:         y.ActiveUnits,
			TotalAnimals:        y.TotalAnimals,
			ProducingAnimals:    y.ProducingAnimals,
			NonProducingAnimals: y.NonProducingAnimals,
			Revenue:             y.Revenue.StringFixed(2),
			MonthlyRevenue:      y.MonthlyRevenue.StringFixed(2),
			StartMonth:          y.StartMonth,
			StartYear:           y.StartYear,
		})
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing yearly csv: %w", err)
	}
	return nil
}
