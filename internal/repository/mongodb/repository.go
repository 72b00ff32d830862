package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/herdsim/internal/domain/models"
	"github.com/mamadbah2/herdsim/internal/repository"
)

// ScenarioRepository implements repository.ScenarioRepository on MongoDB.
type ScenarioRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
	now      func() time.Time
}

var _ repository.ScenarioRepository = (*ScenarioRepository)(nil)

// NewScenarioRepository connects to MongoDB and ensures the unique name index exists.
func NewScenarioRepository(ctx context.Context, uri string, dbName string) (*ScenarioRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	r := newScenarioRepository(client, dbName)
	_, err = r.collection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create scenario name index: %w", err)
	}

	return r, nil
}

func newScenarioRepository(client *mongo.Client, dbName string) *ScenarioRepository {
	return &ScenarioRepository{
		client:   client,
		dbName:   dbName,
		collName: "scenarios",
		now:      time.Now,
	}
}

func (r *ScenarioRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// SaveScenario inserts or replaces the scenario with the same name.
func (r *ScenarioRepository) SaveScenario(ctx context.Context, scenario models.Scenario) error {
	now := r.now().UTC()
	scenario.UpdatedAt = now

	filter := bson.M{"name": scenario.Name}
	update := bson.M{
		"$set": bson.M{
			"units":       scenario.Units,
			"years":       scenario.Years,
			"start_year":  scenario.StartYear,
			"start_month": scenario.StartMonth,
			"updated_at":  scenario.UpdatedAt,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}

	_, err := r.collection().UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert scenario %s: %w", scenario.Name, err)
	}
	return nil
}

// FindScenario returns the scenario stored under name.
func (r *ScenarioRepository) FindScenario(ctx context.Context, name string) (models.Scenario, error) {
	var scenario models.Scenario
	err := r.collection().FindOne(ctx, bson.M{"name": name}).Decode(&scenario)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Scenario{}, repository.ErrScenarioNotFound
	}
	if err != nil {
		return models.Scenario{}, fmt.Errorf("failed to find scenario %s: %w", name, err)
	}
	return scenario, nil
}

// ListScenarios returns every stored scenario ordered by name.
func (r *ScenarioRepository) ListScenarios(ctx context.Context) ([]models.Scenario, error) {
	cursor, err := r.collection().Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer cursor.Close(ctx)

	scenarios := []models.Scenario{}
	if err := cursor.All(ctx, &scenarios); err != nil {
		return nil, fmt.Errorf("failed to decode scenarios: %w", err)
	}
	return scenarios, nil
}

// DeleteScenario removes the named scenario.
func (r *ScenarioRepository) DeleteScenario(ctx context.Context, name string) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("failed to delete scenario %s: %w", name, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrScenarioNotFound
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *ScenarioRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
