package schedule

import (
	"context"

	availabilityRepo "mediplan/database/repository/availability"
	slotRepo "mediplan/database/repository/slot"
	"mediplan/models"

	"github.com/go-redis/redis/v8"
)

// ScheduleService owns a provider's weekly availability and the materialized
// slots derived from it.
type ScheduleService interface {
	SaveWeeklySchedule(ctx context.Context, providerID string, req models.WeeklyScheduleRequest) ([]models.Availability, error)
	ListAvailability(ctx context.Context, providerID string) ([]models.Availability, error)
	ResetAvailability(ctx context.Context, providerID string) (int64, error)

	Reconcile(ctx context.Context, providerID, date string) (*models.ReconcileResult, error)

	GetSlots(ctx context.Context, providerID, date string) ([]models.Slot, error)
	GetAvailableSlots(ctx context.Context, providerID, date string) ([]models.Slot, error)
	RequestSlot(ctx context.Context, slotID, consumerID string) (*models.Slot, error)
	ConfirmSlot(ctx context.Context, slotID string) (*models.Slot, error)
	CancelSlot(ctx context.Context, slotID string) (*models.Slot, error)
}

// DefaultScheduleService is the production implementation. Both store
// adapters are injected; the service never reaches for ambient database
// handles. Cache is optional: when nil, the worker simply reconciles every
// date on every run.
type DefaultScheduleService struct {
	Availability availabilityRepo.AvailabilityRepository
	Slots        slotRepo.SlotRepository
	Cache        *redis.Client
}

func NewDefaultScheduleService(
	availability availabilityRepo.AvailabilityRepository,
	slots slotRepo.SlotRepository,
	cache *redis.Client,
) (*DefaultScheduleService, error) {
	if availability == nil || slots == nil {
		return nil, errNilDependency
	}
	return &DefaultScheduleService{
		Availability: availability,
		Slots:        slots,
		Cache:        cache,
	}, nil
}
