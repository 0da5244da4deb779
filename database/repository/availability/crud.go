package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mediplan/models"
)

func (r *mongoAvailabilityRepo) Insert(ctx context.Context, availability models.Availability) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if availability.ID == "" {
		availability.ID = uuid.New().String()
	}
	if _, err := r.coll.InsertOne(ctx, availability); err != nil {
		return "", fmt.Errorf("failed to insert availability: %w", err)
	}
	return availability.ID, nil
}

func (r *mongoAvailabilityRepo) GetByID(ctx context.Context, providerID, availabilityID string) (*models.Availability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": availabilityID, "providerId": providerID}
	var availability models.Availability
	if err := r.coll.FindOne(ctx, filter).Decode(&availability); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch availability %s: %w", availabilityID, err)
	}
	return &availability, nil
}

func (r *mongoAvailabilityRepo) DeleteAllByProvider(ctx context.Context, providerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"providerId": providerID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete availabilities for provider %s: %w", providerID, err)
	}
	return res.DeletedCount, nil
}
