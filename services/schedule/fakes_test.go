package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	availabilityRepo "mediplan/database/repository/availability"
	slotRepo "mediplan/database/repository/slot"
	"mediplan/models"
)

// In-memory store adapters mirroring the Mongo repositories, including the
// unique (providerId, date, time) constraint behind InsertIfAbsent.

type fakeAvailabilityRepo struct {
	mu      sync.Mutex
	seq     int
	records []models.Availability
	err     error
}

var _ availabilityRepo.AvailabilityRepository = (*fakeAvailabilityRepo)(nil)

func (f *fakeAvailabilityRepo) Insert(ctx context.Context, a models.Availability) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.seq++
	a.ID = fmt.Sprintf("avail-%d", f.seq)
	f.records = append(f.records, a)
	return a.ID, nil
}

func (f *fakeAvailabilityRepo) GetByID(ctx context.Context, providerID, availabilityID string) (*models.Availability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == availabilityID && r.ProviderID == providerID {
			copied := r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAvailabilityRepo) GetByProvider(ctx context.Context, providerID string) ([]models.Availability, error) {
	return f.filter(func(r models.Availability) bool { return r.ProviderID == providerID })
}

func (f *fakeAvailabilityRepo) GetByProviderAndDay(ctx context.Context, providerID string, dayOfWeek int) ([]models.Availability, error) {
	return f.filter(func(r models.Availability) bool {
		return r.ProviderID == providerID && r.DayOfWeek == dayOfWeek
	})
}

func (f *fakeAvailabilityRepo) filter(keep func(models.Availability) bool) ([]models.Availability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Availability
	for _, r := range f.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) ListProviderIDs(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]bool{}
	var ids []string
	for _, r := range f.records {
		if !seen[r.ProviderID] {
			seen[r.ProviderID] = true
			ids = append(ids, r.ProviderID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *fakeAvailabilityRepo) DeleteAllByProvider(ctx context.Context, providerID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	var kept []models.Availability
	var deleted int64
	for _, r := range f.records {
		if r.ProviderID == providerID {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	return deleted, nil
}

type fakeSlotRepo struct {
	mu                 sync.Mutex
	seq                int
	slots              map[string]*models.Slot // by slot id
	tuples             map[string]string       // providerId|date|time -> slot id
	failTimes          map[string]bool         // times whose insert is refused
	updateReturnsFalse bool
	err                error
}

var _ slotRepo.SlotRepository = (*fakeSlotRepo)(nil)

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{
		slots:     map[string]*models.Slot{},
		tuples:    map[string]string{},
		failTimes: map[string]bool{},
	}
}

func tupleKey(providerID, date, t string) string {
	return providerID + "|" + date + "|" + t
}

func (f *fakeSlotRepo) InsertIfAbsent(ctx context.Context, slot models.Slot) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if f.failTimes[slot.Time] {
		return false, errors.New("write refused")
	}
	key := tupleKey(slot.ProviderID, slot.Date, slot.Time)
	if _, exists := f.tuples[key]; exists {
		return false, nil
	}
	f.seq++
	slot.ID = fmt.Sprintf("slot-%d", f.seq)
	f.slots[slot.ID] = &slot
	f.tuples[key] = slot.ID
	return true, nil
}

func (f *fakeSlotRepo) GetByID(ctx context.Context, slotID string) (*models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	slot, ok := f.slots[slotID]
	if !ok {
		return nil, nil
	}
	copied := *slot
	return &copied, nil
}

func (f *fakeSlotRepo) GetByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Slot, error) {
	return f.find(func(s *models.Slot) bool {
		return s.ProviderID == providerID && s.Date == date
	})
}

func (f *fakeSlotRepo) GetAvailableByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Slot, error) {
	return f.find(func(s *models.Slot) bool {
		return s.ProviderID == providerID && s.Date == date && s.Status == models.SlotAvailable
	})
}

func (f *fakeSlotRepo) find(keep func(*models.Slot) bool) ([]models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Slot
	for _, s := range f.slots {
		if keep(s) {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

func (f *fakeSlotRepo) CountByProviderAndDate(ctx context.Context, providerID, date string) (int64, error) {
	slots, err := f.GetByProviderAndDate(ctx, providerID, date)
	return int64(len(slots)), err
}

func (f *fakeSlotRepo) MaxMaterializedDate(ctx context.Context, providerID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	today := time.Now().Format(DateLayout)
	var max string
	for _, s := range f.slots {
		if s.ProviderID == providerID && s.Date >= today && s.Date > max {
			max = s.Date
		}
	}
	return max, nil
}

func (f *fakeSlotRepo) UpdateStatusIfCurrent(ctx context.Context, slotID, expectedStatus, newStatus string, consumerID *string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if f.updateReturnsFalse {
		return false, nil
	}
	slot, ok := f.slots[slotID]
	if !ok || slot.Status != expectedStatus {
		return false, nil
	}
	slot.Status = newStatus
	if consumerID != nil {
		slot.ConsumerID = *consumerID
	}
	return true, nil
}

func (f *fakeSlotRepo) DeleteAllByProvider(ctx context.Context, providerID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for id, s := range f.slots {
		if s.ProviderID == providerID {
			delete(f.slots, id)
			delete(f.tuples, tupleKey(s.ProviderID, s.Date, s.Time))
			deleted++
		}
	}
	return deleted, nil
}

func newTestService() (*DefaultScheduleService, *fakeAvailabilityRepo, *fakeSlotRepo) {
	availRepo := &fakeAvailabilityRepo{}
	slots := newFakeSlotRepo()
	svc := &DefaultScheduleService{Availability: availRepo, Slots: slots}
	return svc, availRepo, slots
}
