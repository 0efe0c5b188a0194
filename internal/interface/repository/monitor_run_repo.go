// internal/interface/repository/monitor_run_repo.go
package repository

import (
	"context"
	"fmt"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMonitorRunRepository implements the MonitorRunRepository interface
type MongoMonitorRunRepository struct {
	collection *mongo.Collection
}

// NewMongoMonitorRunRepository creates a new MongoDB monitor run repository
func NewMongoMonitorRunRepository(db *mongo.Database) repository.MonitorRunRepository {
	collection := db.Collection("monitorRuns")

	// Create indexes for better performance
	ctx := context.Background()

	runIDIndex := mongo.IndexModel{
		Keys:    bson.M{"runId": 1},
		Options: options.Index().SetUnique(true),
	}

	// Index on startedAt for finding the latest run
	startedAtIndex := mongo.IndexModel{
		Keys: bson.M{"startedAt": -1},
	}

	// Compound index for listing runs by status
	statusIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "startedAt", Value: -1},
		},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		runIDIndex,
		startedAtIndex,
		statusIndex,
	})

	return &MongoMonitorRunRepository{
		collection: collection,
	}
}

// Start saves a new run in PROCESSING state
func (r *MongoMonitorRunRepository) Start(ctx context.Context, run *entity.MonitorRun) error {
	if run.Status == "" {
		run.Status = entity.StatusProcessing
	}

	_, err := r.collection.InsertOne(ctx, run)
	if err != nil {
		return fmt.Errorf("failed to insert monitor run: %w", err)
	}
	return nil
}

// Finish stores the outcome of a run
func (r *MongoMonitorRunRepository) Finish(ctx context.Context, run *entity.MonitorRun) error {
	update := bson.M{
		"$set": bson.M{
			"status":     run.Status,
			"finishedAt": run.FinishedAt,
			"processed":  run.Processed,
			"totalDeals": run.TotalDeals,
			"errors":     run.Errors,
			"results":    run.Results,
		},
	}

	if run.ErrorText != "" {
		update["$set"].(bson.M)["errorDetail"] = run.ErrorText
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"runId": run.RunID}, update)
	if err != nil {
		return fmt.Errorf("failed to finish monitor run: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no monitor run found with runId: %s", run.RunID)
	}

	return nil
}

// Latest returns the most recently started run, or nil when none exist
func (r *MongoMonitorRunRepository) Latest(ctx context.Context) (*entity.MonitorRun, error) {
	var run entity.MonitorRun
	opts := options.FindOne().SetSort(bson.D{{Key: "startedAt", Value: -1}})
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&run)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}
