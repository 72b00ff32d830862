package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/mamadbah2/herdsim/internal/domain/models"
	"github.com/mamadbah2/herdsim/internal/repository"
)

const ns = "herdsim.scenarios"

func newMockRepo(mt *mtest.T) *ScenarioRepository {
	r := newScenarioRepository(mt.Client, "herdsim")
	r.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return r
}

func TestScenarioRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("save upserts by name", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 0}))

		err := repo.SaveScenario(ctx, models.Scenario{Name: "pilot", Units: 2, Years: 10, StartYear: 2026})
		require.NoError(mt, err)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "update", evt.CommandName)
	})

	mt.Run("save surfaces write errors", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		err := repo.SaveScenario(ctx, models.Scenario{Name: "pilot", Units: 1, Years: 1})
		assert.ErrorContains(mt, err, "failed to upsert scenario pilot")
	})

	mt.Run("find decodes stored document", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "name", Value: "pilot"},
			{Key: "units", Value: 2},
			{Key: "years", Value: 10},
			{Key: "start_year", Value: 2026},
			{Key: "start_month", Value: 6},
		}))

		got, err := repo.FindScenario(ctx, "pilot")
		require.NoError(mt, err)
		assert.Equal(mt, models.SimulationParams{Units: 2, Years: 10, StartYear: 2026, StartMonth: 6}, got.Params())
	})

	mt.Run("find missing maps to not found", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.FindScenario(ctx, "missing")
		assert.ErrorIs(mt, err, repository.ErrScenarioNotFound)
	})

	mt.Run("list returns every document", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "name", Value: "a"}, {Key: "units", Value: 1}, {Key: "years", Value: 3}},
			bson.D{{Key: "name", Value: "b"}, {Key: "units", Value: 2}, {Key: "years", Value: 5}},
		))

		got, err := repo.ListScenarios(ctx)
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, "a", got[0].Name)
		assert.Equal(mt, 5, got[1].Years)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		require.NoError(mt, repo.DeleteScenario(ctx, "pilot"))
		assert.ErrorIs(mt, repo.DeleteScenario(ctx, "pilot"), repository.ErrScenarioNotFound)
	})
}
