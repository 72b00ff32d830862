package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mamadbah2/herdsim/internal/config"
	"github.com/mamadbah2/herdsim/internal/domain/models"
	"github.com/mamadbah2/herdsim/internal/service/reporting"
	"github.com/mamadbah2/herdsim/internal/service/simulation"
	"github.com/mamadbah2/herdsim/pkg/clients/callback"
)

type recordingShell struct {
	mu   sync.Mutex
	msgs []callback.Message
	err  error
}

func (r *recordingShell) Deliver(_ context.Context, msg callback.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return r.err
}

type failingDigests struct{}

func (failingDigests) GenerateDigest(context.Context, models.SimulationParams) (string, *models.SimulationResult, error) {
	return "", nil, errors.New("no data")
}

func testConfig() config.Config {
	return config.Config{
		Simulation: config.SimulationConfig{DefaultUnits: 1, DefaultYears: 3, DefaultStartYear: 2026},
		Digest:     config.DigestConfig{CronSchedule: "0 20 * * 5", Timezone: "UTC"},
	}
}

func TestSendDigest_DeliversTrimmedResult(t *testing.T) {
	shell := &recordingShell{}
	digests := reporting.NewService(simulation.NewService(nil, simulation.Limits{}, nil), nil)
	s, err := NewScheduler(testConfig(), digests, shell, nil)
	require.NoError(t, err)

	s.sendDigest()

	require.Len(t, shell.msgs, 1)
	msg := shell.msgs[0]
	assert.Equal(t, models.MessageProjectionDigest, msg.Type)

	payload, ok := msg.Payload.(DigestPayload)
	require.True(t, ok)
	assert.Contains(t, payload.Text, "Herd projection 2026-2028")
	assert.Equal(t, 8, payload.Result.TotalAnimals)
	assert.Nil(t, payload.Result.Herd)
	assert.Nil(t, payload.Result.Lineage)
	assert.NotNil(t, payload.Result.Revenue)
}

func TestSendDigest_SkipsDeliveryOnFailure(t *testing.T) {
	shell := &recordingShell{}
	s, err := NewScheduler(testConfig(), failingDigests{}, shell, nil)
	require.NoError(t, err)

	s.sendDigest()
	assert.Empty(t, shell.msgs)
}

func TestNewScheduler_RejectsUnknownTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Digest.Timezone = "Mars/Olympus"
	_, err := NewScheduler(cfg, failingDigests{}, &recordingShell{}, nil)
	assert.Error(t, err)
}

func TestStartStop_NoLeakedGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, err := NewScheduler(testConfig(), failingDigests{}, &recordingShell{}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	s.Stop()
}

func TestStart_RejectsBadSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.Digest.CronSchedule = "every friday"
	s, err := NewScheduler(cfg, failingDigests{}, &recordingShell{}, nil)
	require.NoError(t, err)
	assert.Error(t, s.Start())
}
