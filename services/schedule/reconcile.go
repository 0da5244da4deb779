package schedule

import (
	"context"
	"sort"
	"sync"
	"time"

	"mediplan/models"
	"mediplan/utils"

	"go.uber.org/zap"
)

// Reconcile makes sure every slot time derivable from the provider's weekly
// availability exists as a persisted slot for the given date. It computes the
// union of session times across all matching availability rules, diffs it
// against the slots already stored, and inserts only the missing ones.
//
// The inserts are independent and issued concurrently; a failed insert leaves
// that time missing and is simply picked up by the next call. Partial failure
// is therefore reported in the result, not returned as an error. Existing
// slots are never modified or deleted here, whatever their status.
func (s *DefaultScheduleService) Reconcile(ctx context.Context, providerID, date string) (*models.ReconcileResult, error) {
	logger := utils.GetLogger()

	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	weeklyDay := WeeklyDay(day)

	availabilities, err := s.Availability.GetByProviderAndDay(ctx, providerID, weeklyDay)
	if err != nil {
		return nil, storeErr("loading availability", err)
	}

	// Union of partitioned times across rules; duplicates from overlapping
	// rules collapse before any write happens.
	computed := make(map[int]struct{})
	for _, a := range availabilities {
		times, err := partitionAvailability(a)
		if err != nil {
			// The record violates the invariants it was created under.
			// Repairing it here would hide the corruption, so skip it loudly.
			logger.Warn("Skipping malformed availability record",
				zap.String("availabilityId", a.ID),
				zap.String("providerId", providerID),
				zap.Error(err))
			continue
		}
		for _, t := range times {
			computed[t] = struct{}{}
		}
	}

	existing, err := s.Slots.GetByProviderAndDate(ctx, providerID, date)
	if err != nil {
		return nil, storeErr("loading slots", err)
	}

	guaranteed := make(map[string]bool, len(existing))
	for _, slot := range existing {
		guaranteed[slot.Time] = true
	}

	var missing []string
	for t := range computed {
		if formatted := FromMinutes(t); !guaranteed[formatted] {
			missing = append(missing, formatted)
		}
	}
	sort.Strings(missing)

	result := &models.ReconcileResult{
		ProviderID: providerID,
		Date:       date,
		DayOfWeek:  weeklyDay,
	}

	// One concurrent write per missing time, one outcome each. No write
	// depends on another, so there is nothing to order or roll back.
	type writeOutcome struct {
		time    string
		created bool
		err     error
	}
	outcomes := make(chan writeOutcome, len(missing))
	var wg sync.WaitGroup
	now := time.Now()

	for _, t := range missing {
		wg.Add(1)
		go func(slotTime string) {
			defer wg.Done()
			created, err := s.Slots.InsertIfAbsent(ctx, models.Slot{
				ProviderID: providerID,
				Date:       date,
				Time:       slotTime,
				Status:     models.SlotAvailable,
				CreatedAt:  now,
			})
			outcomes <- writeOutcome{time: slotTime, created: created, err: err}
		}(t)
	}
	wg.Wait()
	close(outcomes)

	for o := range outcomes {
		if o.err != nil {
			result.Failed = append(result.Failed, models.SlotWriteFailure{Time: o.time, Reason: o.err.Error()})
			continue
		}
		guaranteed[o.time] = true
		if o.created {
			result.Created = append(result.Created, o.time)
		}
	}

	for t := range guaranteed {
		result.Times = append(result.Times, t)
	}
	sort.Strings(result.Times)
	sort.Strings(result.Created)
	sort.Slice(result.Failed, func(i, j int) bool { return result.Failed[i].Time < result.Failed[j].Time })

	if len(result.Failed) > 0 {
		logger.Warn("Reconciliation completed with failed slot writes",
			zap.String("providerId", providerID),
			zap.String("date", date),
			zap.Int("failed", len(result.Failed)))
	} else {
		s.markReconciled(ctx, providerID, date)
		logger.Debug("Reconciled date",
			zap.String("providerId", providerID),
			zap.String("date", date),
			zap.Int("created", len(result.Created)),
			zap.Int("total", len(result.Times)))
	}

	return result, nil
}

// partitionAvailability turns one availability rule into its session start
// times for a single day.
func partitionAvailability(a models.Availability) ([]int, error) {
	start, err := ToMinutes(a.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := ToMinutes(a.EndTime)
	if err != nil {
		return nil, err
	}
	breakStart, err := ToMinutes(a.BreakStart)
	if err != nil {
		return nil, err
	}
	breakEnd, err := ToMinutes(a.BreakEnd)
	if err != nil {
		return nil, err
	}
	return PartitionWindow(start, end, breakStart, breakEnd, a.SessionDurationMinutes), nil
}
