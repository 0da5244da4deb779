package schedule

import (
	"context"
	"testing"

	"mediplan/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConsumer = "patient-9"

func seedSlot(t *testing.T, slots *fakeSlotRepo, status, consumerID string) string {
	t.Helper()
	created, err := slots.InsertIfAbsent(context.Background(), models.Slot{
		ProviderID: testProvider,
		Date:       testMonday,
		Time:       "09:00",
		Status:     status,
		ConsumerID: consumerID,
	})
	require.NoError(t, err)
	require.True(t, created)

	stored, err := slots.GetByProviderAndDate(context.Background(), testProvider, testMonday)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	return stored[0].ID
}

func TestRequestSlotClaimsAvailable(t *testing.T) {
	svc, _, slots := newTestService()
	id := seedSlot(t, slots, models.SlotAvailable, "")

	slot, err := svc.RequestSlot(context.Background(), id, testConsumer)
	require.NoError(t, err)
	assert.Equal(t, models.SlotRequested, slot.Status)
	assert.Equal(t, testConsumer, slot.ConsumerID)

	stored, err := slots.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.SlotRequested, stored.Status)
	assert.Equal(t, testConsumer, stored.ConsumerID)
}

func TestConfirmSlotAcceptsRequested(t *testing.T) {
	svc, _, slots := newTestService()
	id := seedSlot(t, slots, models.SlotRequested, testConsumer)

	slot, err := svc.ConfirmSlot(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.SlotConfirmed, slot.Status)
	assert.Equal(t, testConsumer, slot.ConsumerID, "confirmation keeps the claim")
}

func TestCancelSlotReleasesClaim(t *testing.T) {
	for _, from := range []string{models.SlotRequested, models.SlotConfirmed} {
		t.Run(from, func(t *testing.T) {
			svc, _, slots := newTestService()
			id := seedSlot(t, slots, from, testConsumer)

			slot, err := svc.CancelSlot(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, models.SlotAvailable, slot.Status)
			assert.Empty(t, slot.ConsumerID)

			stored, err := slots.GetByID(context.Background(), id)
			require.NoError(t, err)
			assert.Empty(t, stored.ConsumerID)
		})
	}
}

func TestIllegalTransitionsLeaveStatusUnchanged(t *testing.T) {
	cases := []struct {
		name string
		from string
		call func(svc *DefaultScheduleService, id string) error
	}{
		{"confirm available", models.SlotAvailable, func(svc *DefaultScheduleService, id string) error {
			_, err := svc.ConfirmSlot(context.Background(), id)
			return err
		}},
		{"cancel available", models.SlotAvailable, func(svc *DefaultScheduleService, id string) error {
			_, err := svc.CancelSlot(context.Background(), id)
			return err
		}},
		{"request requested", models.SlotRequested, func(svc *DefaultScheduleService, id string) error {
			_, err := svc.RequestSlot(context.Background(), id, "someone-else")
			return err
		}},
		{"request confirmed", models.SlotConfirmed, func(svc *DefaultScheduleService, id string) error {
			_, err := svc.RequestSlot(context.Background(), id, "someone-else")
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, slots := newTestService()
			id := seedSlot(t, slots, tc.from, "")

			err := tc.call(svc, id)
			var transition InvalidTransitionError
			require.ErrorAs(t, err, &transition)
			assert.Equal(t, tc.from, transition.From)

			stored, getErr := slots.GetByID(context.Background(), id)
			require.NoError(t, getErr)
			assert.Equal(t, tc.from, stored.Status, "status must survive the rejected call")
		})
	}
}

func TestTransitionOnMissingSlot(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.RequestSlot(context.Background(), "no-such-slot", testConsumer)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLostRaceReportsInvalidTransition(t *testing.T) {
	svc, _, slots := newTestService()
	id := seedSlot(t, slots, models.SlotAvailable, "")

	// The conditional update misses, as if another caller claimed the slot
	// between our read and write.
	slots.updateReturnsFalse = true

	_, err := svc.RequestSlot(context.Background(), id, testConsumer)
	var transition InvalidTransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, models.SlotRequested, transition.To)
}

func TestGetSlotsValidatesDate(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.GetSlots(context.Background(), testProvider, "not-a-date")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestGetAvailableSlotsFiltersByStatus(t *testing.T) {
	svc, _, slots := newTestService()
	_, err := slots.InsertIfAbsent(context.Background(), models.Slot{
		ProviderID: testProvider, Date: testMonday, Time: "09:00", Status: models.SlotAvailable,
	})
	require.NoError(t, err)
	_, err = slots.InsertIfAbsent(context.Background(), models.Slot{
		ProviderID: testProvider, Date: testMonday, Time: "10:00", Status: models.SlotConfirmed, ConsumerID: testConsumer,
	})
	require.NoError(t, err)

	all, err := svc.GetSlots(context.Background(), testProvider, testMonday)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	available, err := svc.GetAvailableSlots(context.Background(), testProvider, testMonday)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "09:00", available[0].Time)
}
