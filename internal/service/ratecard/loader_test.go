package ratecard

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herdsim/internal/domain/models"
)

type fakeSheet struct {
	rows [][]interface{}
	err  error
	got  string
}

func (f *fakeSheet) ReadRange(_ context.Context, sheetRange string) ([][]interface{}, error) {
	f.got = sheetRange
	return f.rows, f.err
}

func TestSheetLoader_OverridesPhases(t *testing.T) {
	sheet := &fakeSheet{rows: [][]interface{}{
		{"Phase", "Months", "Revenue"},
		{"landing", "1"},
		{"High", "6", "10,500"},
		{"medium", 2, "7000.50"},
		{"rest", "4", "0"},
		{"bonus", "1", "5"},
	}}
	l := NewSheetLoader(sheet, "RateCard!A:C", models.DefaultRevenueConfig(), nil)

	cfg, err := l.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "RateCard!A:C", sheet.got)
	assert.Equal(t, 1, cfg.LandingPeriod)
	assert.Equal(t, 6, cfg.High.Months)
	assert.True(t, cfg.High.Revenue.Equal(decimal.NewFromInt(10500)))
	assert.Equal(t, 2, cfg.Medium.Months)
	assert.Equal(t, "7000.5", cfg.Medium.Revenue.String())
	assert.Equal(t, 4, cfg.Rest.Months)
}

func TestSheetLoader_EmptySheetKeepsFallback(t *testing.T) {
	l := NewSheetLoader(&fakeSheet{}, "RateCard!A:C", models.DefaultRevenueConfig(), nil)

	cfg, err := l.RateCard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultRevenueConfig(), cfg)
}

func TestSheetLoader_RejectsCycleNotTwelveMonths(t *testing.T) {
	sheet := &fakeSheet{rows: [][]interface{}{{"high", "7", "9000"}}}
	l := NewSheetLoader(sheet, "RateCard!A:C", models.DefaultRevenueConfig(), nil)

	_, err := l.Load(context.Background())
	require.Error(t, err)
}

func TestSheetLoader_PropagatesReadErrors(t *testing.T) {
	boom := errors.New("quota exceeded")
	l := NewSheetLoader(&fakeSheet{err: boom}, "RateCard!A:C", models.DefaultRevenueConfig(), nil)

	_, err := l.Load(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestStatic(t *testing.T) {
	cfg, err := Static(models.DefaultRevenueConfig()).RateCard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.High.Months)
}

func TestSheetLoader_MissingRevenueCellKeepsFallbackRate(t *testing.T) {
	// GIVEN rows that only carry the month count
	sheet := &fakeSheet{rows: [][]interface{}{
		{"high", "6"},
		{"medium", "2", "  "},
	}}
	l := NewSheetLoader(sheet, "RateCard!A:C", models.DefaultRevenueConfig(), nil)

	cfg, err := l.Load(context.Background())
	require.NoError(t, err)

	// THEN the months change but the rates stay at the fallback values
	assert.Equal(t, 6, cfg.High.Months)
	assert.True(t, cfg.High.Revenue.Equal(decimal.NewFromInt(9000)), cfg.High.Revenue.String())
	assert.Equal(t, 2, cfg.Medium.Months)
	assert.True(t, cfg.Medium.Revenue.Equal(decimal.NewFromInt(6000)), cfg.Medium.Revenue.String())
}
