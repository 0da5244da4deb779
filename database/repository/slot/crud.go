package slotRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mediplan/models"
)

// InsertIfAbsent creates the slot unless one already exists for the same
// (providerId, date, time). It reports false without error when the slot was
// already there, either from an earlier reconciliation or from a racing one.
func (r *mongoSlotRepo) InsertIfAbsent(ctx context.Context, slot models.Slot) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	if _, err := r.coll.InsertOne(ctx, slot); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert slot: %w", err)
	}
	return true, nil
}

func (r *mongoSlotRepo) GetByID(ctx context.Context, slotID string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.Slot
	if err := r.coll.FindOne(ctx, bson.M{"id": slotID}).Decode(&slot); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch slot %s: %w", slotID, err)
	}
	return &slot, nil
}

// UpdateStatusIfCurrent atomically moves a slot from expectedStatus to
// newStatus. It reports false when no document matched, i.e. the slot does
// not exist or its status changed underneath the caller. consumerID controls
// the claim field: nil leaves it untouched, empty string clears it, anything
// else sets it.
func (r *mongoSlotRepo) UpdateStatusIfCurrent(ctx context.Context, slotID, expectedStatus, newStatus string, consumerID *string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": slotID, "status": expectedStatus}
	set := bson.M{"status": newStatus}
	update := bson.M{"$set": set}
	if consumerID != nil {
		if *consumerID == "" {
			update["$unset"] = bson.M{"consumerId": ""}
		} else {
			set["consumerId"] = *consumerID
		}
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to update slot %s status: %w", slotID, err)
	}
	return res.MatchedCount == 1, nil
}

func (r *mongoSlotRepo) DeleteAllByProvider(ctx context.Context, providerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"providerId": providerID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete slots for provider %s: %w", providerID, err)
	}
	return res.DeletedCount, nil
}
