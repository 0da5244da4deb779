package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mediplan/models"
)

func (r *mongoAvailabilityRepo) GetByProvider(ctx context.Context, providerID string) ([]models.Availability, error) {
	return r.find(ctx, bson.M{"providerId": providerID})
}

func (r *mongoAvailabilityRepo) GetByProviderAndDay(ctx context.Context, providerID string, dayOfWeek int) ([]models.Availability, error) {
	return r.find(ctx, bson.M{"providerId": providerID, "dayOfWeek": dayOfWeek})
}

func (r *mongoAvailabilityRepo) find(ctx context.Context, filter bson.M) ([]models.Availability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "dayOfWeek", Value: 1}, {Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availabilities: %w", err)
	}
	defer cursor.Close(ctx)

	var availabilities []models.Availability
	if err := cursor.All(ctx, &availabilities); err != nil {
		return nil, fmt.Errorf("error decoding availabilities: %w", err)
	}
	return availabilities, nil
}

// ListProviderIDs returns every provider that currently owns at least one
// availability rule. Used by the materialization worker.
func (r *mongoAvailabilityRepo) ListProviderIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	raw, err := r.coll.Distinct(ctx, "providerId", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list provider ids: %w", err)
	}

	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(string); ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
