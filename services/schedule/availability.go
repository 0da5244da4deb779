package schedule

import (
	"context"
	"sort"
	"time"

	"mediplan/models"
	"mediplan/utils"

	"go.uber.org/zap"
)

// allowedDurations mirrors the session lengths offered by the schedule form.
var allowedDurations = map[int]bool{10: true, 15: true, 20: true, 30: true, 45: true, 60: true}

// timeGranularityMinutes is the grid the window bounds must sit on.
const timeGranularityMinutes = 15

// SaveWeeklySchedule validates the submitted window and creates one
// Availability record per selected day. Records are append-only; changing a
// schedule means resetting and saving again.
func (s *DefaultScheduleService) SaveWeeklySchedule(ctx context.Context, providerID string, req models.WeeklyScheduleRequest) ([]models.Availability, error) {
	logger := utils.GetLogger()

	window, err := validateWindow(req)
	if err != nil {
		return nil, err
	}

	days, err := normalizeDays(req.Days)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	created := make([]models.Availability, 0, len(days))
	for _, day := range days {
		availability := models.Availability{
			ProviderID:             providerID,
			DayOfWeek:              day,
			DayLabel:               DayLabel(day),
			StartTime:              FromMinutes(window.start),
			EndTime:                FromMinutes(window.end),
			BreakStart:             FromMinutes(window.breakStart),
			BreakEnd:               FromMinutes(window.breakEnd),
			SessionDurationMinutes: req.SessionDurationMinutes,
			CreatedAt:              now,
		}
		id, err := s.Availability.Insert(ctx, availability)
		if err != nil {
			return created, storeErr("saving availability", err)
		}
		availability.ID = id
		created = append(created, availability)
	}

	// Previously materialized dates may now be missing times.
	s.invalidateReconcileMarkers(ctx, providerID)

	logger.Info("Saved weekly schedule",
		zap.String("providerId", providerID),
		zap.Ints("days", days),
		zap.Int("sessionMinutes", req.SessionDurationMinutes))
	return created, nil
}

// ListAvailability returns every availability rule the provider owns.
func (s *DefaultScheduleService) ListAvailability(ctx context.Context, providerID string) ([]models.Availability, error) {
	availabilities, err := s.Availability.GetByProvider(ctx, providerID)
	if err != nil {
		return nil, storeErr("listing availability", err)
	}
	return availabilities, nil
}

// ResetAvailability deletes all of the provider's availability rules.
// Already materialized slots stay in place: published times remain bookable
// even after the rules behind them are gone.
func (s *DefaultScheduleService) ResetAvailability(ctx context.Context, providerID string) (int64, error) {
	deleted, err := s.Availability.DeleteAllByProvider(ctx, providerID)
	if err != nil {
		return 0, storeErr("resetting availability", err)
	}
	s.invalidateReconcileMarkers(ctx, providerID)

	utils.GetLogger().Info("Reset availability",
		zap.String("providerId", providerID),
		zap.Int64("deleted", deleted))
	return deleted, nil
}

type windowMinutes struct {
	start, end, breakStart, breakEnd int
}

func validateWindow(req models.WeeklyScheduleRequest) (*windowMinutes, error) {
	var w windowMinutes
	fields := []struct {
		name  string
		value string
		dst   *int
	}{
		{"startTime", req.StartTime, &w.start},
		{"endTime", req.EndTime, &w.end},
		{"breakStart", req.BreakStart, &w.breakStart},
		{"breakEnd", req.BreakEnd, &w.breakEnd},
	}
	for _, f := range fields {
		m, err := ToMinutes(f.value)
		if err != nil {
			return nil, invalidWindowf("%s: %v", f.name, err)
		}
		if m%timeGranularityMinutes != 0 {
			return nil, invalidWindowf("%s %q not on a %d-minute boundary", f.name, f.value, timeGranularityMinutes)
		}
		*f.dst = m
	}

	if w.start >= w.end {
		return nil, invalidWindowf("start %s must be before end %s", req.StartTime, req.EndTime)
	}
	if w.breakStart >= w.breakEnd {
		return nil, invalidWindowf("break start %s must be before break end %s", req.BreakStart, req.BreakEnd)
	}
	if w.breakStart < w.start || w.breakEnd > w.end {
		return nil, invalidWindowf("break %s-%s must lie within %s-%s", req.BreakStart, req.BreakEnd, req.StartTime, req.EndTime)
	}
	if !allowedDurations[req.SessionDurationMinutes] {
		return nil, invalidWindowf("unsupported session duration %d", req.SessionDurationMinutes)
	}
	return &w, nil
}

func normalizeDays(days []int) ([]int, error) {
	if len(days) == 0 {
		return nil, invalidWindowf("select at least one day")
	}
	seen := map[int]bool{}
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d < 1 || d > 7 {
			return nil, invalidWindowf("day %d out of range 1..7", d)
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out, nil
}
