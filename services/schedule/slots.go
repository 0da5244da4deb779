package schedule

import (
	"context"

	"mediplan/models"
	"mediplan/utils"

	"go.uber.org/zap"
)

// GetSlots returns every materialized slot for the provider and date,
// whatever its status. Read-only: listing never triggers writes.
func (s *DefaultScheduleService) GetSlots(ctx context.Context, providerID, date string) ([]models.Slot, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}
	slots, err := s.Slots.GetByProviderAndDate(ctx, providerID, date)
	if err != nil {
		return nil, storeErr("listing slots", err)
	}
	return slots, nil
}

// GetAvailableSlots returns only the slots a patient may still claim.
func (s *DefaultScheduleService) GetAvailableSlots(ctx context.Context, providerID, date string) ([]models.Slot, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}
	slots, err := s.Slots.GetAvailableByProviderAndDate(ctx, providerID, date)
	if err != nil {
		return nil, storeErr("listing available slots", err)
	}
	return slots, nil
}

// RequestSlot claims an AVAILABLE slot for a patient.
func (s *DefaultScheduleService) RequestSlot(ctx context.Context, slotID, consumerID string) (*models.Slot, error) {
	return s.transition(ctx, slotID, models.SlotRequested, &consumerID)
}

// ConfirmSlot accepts a REQUESTED slot on behalf of the provider.
func (s *DefaultScheduleService) ConfirmSlot(ctx context.Context, slotID string) (*models.Slot, error) {
	return s.transition(ctx, slotID, models.SlotConfirmed, nil)
}

// CancelSlot releases a REQUESTED or CONFIRMED slot back to AVAILABLE and
// clears the claim.
func (s *DefaultScheduleService) CancelSlot(ctx context.Context, slotID string) (*models.Slot, error) {
	cleared := ""
	return s.transition(ctx, slotID, models.SlotAvailable, &cleared)
}

// transition moves a slot to the target status along a legal edge. The store
// update is conditional on the status observed here, so a race with another
// caller fails cleanly instead of jumping an edge; the loser sees
// InvalidTransitionError and the slot keeps whatever state won.
func (s *DefaultScheduleService) transition(ctx context.Context, slotID, to string, consumerID *string) (*models.Slot, error) {
	slot, err := s.Slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, storeErr("loading slot", err)
	}
	if slot == nil {
		return nil, ErrNotFound
	}
	if !models.CanTransition(slot.Status, to) {
		return nil, InvalidTransitionError{From: slot.Status, To: to}
	}

	ok, err := s.Slots.UpdateStatusIfCurrent(ctx, slotID, slot.Status, to, consumerID)
	if err != nil {
		return nil, storeErr("updating slot status", err)
	}
	if !ok {
		// Lost a race: re-read to tell a vanished slot from a changed status.
		current, err := s.Slots.GetByID(ctx, slotID)
		if err != nil {
			return nil, storeErr("re-loading slot", err)
		}
		if current == nil {
			return nil, ErrNotFound
		}
		return nil, InvalidTransitionError{From: current.Status, To: to}
	}

	slot.Status = to
	if consumerID != nil {
		slot.ConsumerID = *consumerID
	}

	utils.GetLogger().Info("Slot status changed",
		zap.String("slotId", slotID),
		zap.String("status", to))
	return slot, nil
}
