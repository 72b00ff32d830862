package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herdsim/internal/domain/models"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRun_JSON(t *testing.T) {
	out, err := execute(t, "run", "--units", "1", "--years", "3", "--start-year", "2026", "--format", "json")
	require.NoError(t, err)

	var res models.SimulationResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 8, res.TotalAnimals)
	require.NotNil(t, res.Revenue)
	assert.Equal(t, "351000", res.Revenue.TotalRevenue.String())
}

func TestRun_CSV(t *testing.T) {
	out, err := execute(t, "run", "--units", "1", "--years", "3", "--start-year", "2026", "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "2026,2,4,2,2,99000.00,4125.00,"))
}

func TestRun_Table(t *testing.T) {
	out, err := execute(t, "run", "--units", "1", "--years", "2", "--start-year", "2026")
	require.NoError(t, err)

	assert.Contains(t, out, "YEAR")
	assert.Contains(t, out, "₹99,000")
	assert.Contains(t, out, "Herd projection 2026-2027")
}

func TestRun_TableWithoutRevenue(t *testing.T) {
	out, err := execute(t, "run", "--units", "1", "--years", "10", "--no-revenue")
	require.NoError(t, err)

	assert.Contains(t, out, "GENERATION")
	assert.Contains(t, out, "Revenue: not computed")
	assert.NotContains(t, out, "YEAR")
}

func TestRun_RejectsBadInput(t *testing.T) {
	_, err := execute(t, "run", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")

	_, err = execute(t, "run", "--format", "csv", "--no-revenue")
	assert.Error(t, err)

	_, err = execute(t, "run", "--units", "0")
	assert.ErrorContains(t, err, "invalid argument")

	_, err = execute(t, "run", "--start-month", "12")
	assert.Error(t, err)
}

func TestRun_ScenarioFileWithFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pair.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: pair\nunits: 2\nyears: 3\nstart_year: 2030\nstart_month: 6\n"), 0o600))

	// GIVEN only the scenario file
	out, err := execute(t, "run", "--scenario", path, "--format", "json", "--no-revenue")
	require.NoError(t, err)
	var res models.SimulationResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, models.SimulationParams{Units: 2, Years: 3, StartYear: 2030, StartMonth: 6}, res.Params)
	assert.Equal(t, 16, res.TotalAnimals)

	// WHEN --years is passed explicitly THEN it wins over the file
	out, err = execute(t, "run", "--scenario", path, "--years", "1", "--format", "json", "--no-revenue")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 1, res.Params.Years)
	assert.Equal(t, 8, res.TotalAnimals)
}

func TestTree(t *testing.T) {
	out, err := execute(t, "tree", "--units", "1", "--years", "1", "--start-year", "2026")
	require.NoError(t, err)

	want := "B1 Founder, unit 1\n" +
		"└── B3 Born 2026, Gen 1 (parent B1)\n" +
		"B2 Founder, unit 1\n" +
		"└── B4 Born 2026, Gen 1 (parent B2)\n"
	assert.Equal(t, want, out)
}

func TestTree_Depth(t *testing.T) {
	full, err := execute(t, "tree", "--years", "5")
	require.NoError(t, err)
	assert.Contains(t, full, "Gen 2")

	shallow, err := execute(t, "tree", "--years", "5", "--depth", "1")
	require.NoError(t, err)
	assert.NotContains(t, shallow, "Gen 2")
	assert.Contains(t, shallow, "Gen 1")
}
