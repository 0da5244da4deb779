package schedule

import (
	"context"
	"fmt"
	"time"

	"mediplan/utils"

	"go.uber.org/zap"
)

// reconcileMarkerTTL bounds how long the worker may skip a fully reconciled
// (provider, date) pair. Markers are a pure optimization: losing Redis just
// means redundant, harmless reconcile runs.
const reconcileMarkerTTL = 4 * time.Hour

func reconcileMarkerKey(providerID, date string) string {
	return fmt.Sprintf("reconciled:%s:%s", providerID, date)
}

// RecentlyReconciled reports whether a clean reconciliation for the pair
// completed within the marker TTL. Used by the materialization worker to
// avoid rescanning dates that cannot have changed.
func (s *DefaultScheduleService) RecentlyReconciled(ctx context.Context, providerID, date string) bool {
	if s.Cache == nil {
		return false
	}
	n, err := s.Cache.Exists(ctx, reconcileMarkerKey(providerID, date)).Result()
	return err == nil && n > 0
}

func (s *DefaultScheduleService) markReconciled(ctx context.Context, providerID, date string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, reconcileMarkerKey(providerID, date), 1, reconcileMarkerTTL).Err(); err != nil {
		utils.GetLogger().Debug("Failed to set reconcile marker", zap.Error(err))
	}
}

// invalidateReconcileMarkers drops every marker for the provider. Called when
// the availability rules change, since previously clean dates may now be
// missing times.
func (s *DefaultScheduleService) invalidateReconcileMarkers(ctx context.Context, providerID string) {
	if s.Cache == nil {
		return
	}
	pattern := fmt.Sprintf("reconciled:%s:*", providerID)
	iter := s.Cache.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := s.Cache.Del(ctx, iter.Val()).Err(); err != nil {
			utils.GetLogger().Debug("Failed to drop reconcile marker", zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		utils.GetLogger().Debug("Reconcile marker scan failed", zap.Error(err))
	}
}
