package slotRepo

import (
	"context"

	"mediplan/database"
	"mediplan/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// SlotRepository is the store adapter for materialized slots. The uniqueness
// invariant (at most one slot per providerId/date/time) is backed by a unique
// index, so concurrent reconcilers racing on the same date cannot create
// duplicates.
type SlotRepository interface {
	InsertIfAbsent(ctx context.Context, slot models.Slot) (bool, error)
	GetByID(ctx context.Context, slotID string) (*models.Slot, error)
	GetByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Slot, error)
	GetAvailableByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Slot, error)
	CountByProviderAndDate(ctx context.Context, providerID, date string) (int64, error)
	MaxMaterializedDate(ctx context.Context, providerID string) (string, error)
	UpdateStatusIfCurrent(ctx context.Context, slotID, expectedStatus, newStatus string, consumerID *string) (bool, error)
	DeleteAllByProvider(ctx context.Context, providerID string) (int64, error)
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository and ensures its
// indexes exist.
func NewMongoSlotRepo() SlotRepository {
	repo := &mongoSlotRepo{
		coll: database.DB().Collection("slots"),
	}
	repo.ensureIndexes()
	return repo
}
