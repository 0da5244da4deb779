package availabilityRepo

import (
	"context"

	"mediplan/database"
	"mediplan/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AvailabilityRepository is the store adapter for recurring weekly
// availability rules. Records are never mutated in place: a provider's
// schedule changes by deleting all of their records and recreating them.
type AvailabilityRepository interface {
	Insert(ctx context.Context, availability models.Availability) (string, error)
	GetByID(ctx context.Context, providerID, availabilityID string) (*models.Availability, error)
	GetByProvider(ctx context.Context, providerID string) ([]models.Availability, error)
	GetByProviderAndDay(ctx context.Context, providerID string, dayOfWeek int) ([]models.Availability, error)
	ListProviderIDs(ctx context.Context) ([]string, error)
	DeleteAllByProvider(ctx context.Context, providerID string) (int64, error)
}

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new MongoDB AvailabilityRepository
// and ensures its indexes exist.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	repo := &mongoAvailabilityRepo{
		coll: database.DB().Collection("availabilities"),
	}
	repo.ensureIndexes()
	return repo
}
