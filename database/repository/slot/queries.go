package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mediplan/models"
)

func (r *mongoSlotRepo) GetByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Slot, error) {
	return r.find(ctx, bson.M{"providerId": providerID, "date": date})
}

func (r *mongoSlotRepo) GetAvailableByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Slot, error) {
	return r.find(ctx, bson.M{"providerId": providerID, "date": date, "status": models.SlotAvailable})
}

func (r *mongoSlotRepo) find(ctx context.Context, filter bson.M) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding slots: %w", err)
	}
	return slots, nil
}

func (r *mongoSlotRepo) CountByProviderAndDate(ctx context.Context, providerID, date string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"providerId": providerID, "date": date})
	if err != nil {
		return 0, fmt.Errorf("failed to count slots: %w", err)
	}
	return count, nil
}

// MaxMaterializedDate returns the latest slot date for a provider from today
// onward, or "" when nothing is materialized yet.
func (r *mongoSlotRepo) MaxMaterializedDate(ctx context.Context, providerID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"providerId": providerID,
			"date":       bson.M{"$gte": time.Now().Format("2006-01-02")},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"maxDate": bson.M{"$max": "$date"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return "", fmt.Errorf("failed to aggregate max date: %w", err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		MaxDate string `bson:"maxDate"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return "", fmt.Errorf("decode error: %w", err)
	}

	if len(result) == 0 {
		return "", nil
	}
	return result[0].MaxDate, nil
}
