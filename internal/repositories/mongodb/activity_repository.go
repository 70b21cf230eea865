package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"platelink/internal/apperrors"
	"platelink/internal/models"
	"platelink/internal/repositories/interfaces"
)

type activityRepository struct {
	stats  *mongo.Collection
	events *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) interfaces.ActivityRepository {
	return &activityRepository{
		stats:  db.Collection("vehicle_stats"),
		events: db.Collection("search_events"),
	}
}

func (r *activityRepository) RecordSearch(ctx context.Context, vehicleID primitive.ObjectID, at time.Time) error {
	_, err := r.stats.UpdateByID(ctx, vehicleID,
		bson.M{
			"$inc": bson.M{"total_searches": 1},
			"$set": bson.M{"last_searched_at": at},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return apperrors.NewTransient("failed to record search", err)
	}

	return nil
}

func (r *activityRepository) RecordContactRequest(ctx context.Context, vehicleID primitive.ObjectID) error {
	_, err := r.stats.UpdateByID(ctx, vehicleID,
		bson.M{"$inc": bson.M{"contact_requests": 1}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return apperrors.NewTransient("failed to record contact request", err)
	}

	return nil
}

func (r *activityRepository) GetStats(ctx context.Context, vehicleID primitive.ObjectID) (*models.VehicleStats, error) {
	var stats models.VehicleStats
	err := r.stats.FindOne(ctx, bson.M{"_id": vehicleID}).Decode(&stats)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return &models.VehicleStats{VehicleID: vehicleID}, nil
		}
		return nil, apperrors.NewTransient("failed to get vehicle stats", err)
	}

	return &stats, nil
}

func (r *activityRepository) DeleteStats(ctx context.Context, vehicleID primitive.ObjectID) error {
	_, err := r.stats.DeleteOne(ctx, bson.M{"_id": vehicleID})
	if err != nil {
		return apperrors.NewTransient("failed to delete vehicle stats", err)
	}

	return nil
}

func (r *activityRepository) CreateEvent(ctx context.Context, event *models.SearchEvent) error {
	event.ID = primitive.NewObjectID()
	event.CreatedAt = time.Now()

	_, err := r.events.InsertOne(ctx, event)
	if err != nil {
		return apperrors.NewTransient("failed to record search event", err)
	}

	return nil
}

func (r *activityRepository) ListEventsByOwner(ctx context.Context, ownerID primitive.ObjectID, limit int64) ([]*models.SearchEvent, error) {
	cursor, err := r.events.Find(ctx, bson.M{"owner_id": ownerID},
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetLimit(limit))
	if err != nil {
		return nil, apperrors.NewTransient("failed to list search events", err)
	}
	defer cursor.Close(ctx)

	var events []*models.SearchEvent
	for cursor.Next(ctx) {
		var event models.SearchEvent
		if err := cursor.Decode(&event); err != nil {
			return nil, fmt.Errorf("failed to decode search event: %w", err)
		}
		events = append(events, &event)
	}

	return events, nil
}

func (r *activityRepository) CountEventsByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"owner_id": ownerID}}},
		{{Key: "$group", Value: bson.M{
			"_id":      nil,
			"searches": bson.M{"$sum": 1},
			"reveals": bson.M{"$sum": bson.M{
				"$cond": bson.A{"$revealed", 1, 0},
			}},
		}}},
	}

	cursor, err := r.events.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, apperrors.NewTransient("failed to aggregate search events", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		Searches int64 `bson:"searches"`
		Reveals  int64 `bson:"reveals"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, 0, fmt.Errorf("failed to decode event counts: %w", err)
		}
	}

	return result.Searches, result.Reveals, nil
}
