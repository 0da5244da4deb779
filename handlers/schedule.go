package handlers

import (
	"net/http"
	"time"

	"mediplan/cron"
	"mediplan/models"
	"mediplan/services/schedule"
	"mediplan/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ScheduleHandler exposes the scheduling engine over HTTP. It is a thin
// trigger layer: all invariants live in the service underneath.
type ScheduleHandler struct {
	Service schedule.ScheduleService
	Queue   *asynq.Client // optional; nil disables background materialization triggers
}

func NewScheduleHandler(service schedule.ScheduleService, queue *asynq.Client) *ScheduleHandler {
	return &ScheduleHandler{Service: service, Queue: queue}
}

// SaveAvailabilityHandler stores a provider's weekly schedule and immediately
// reconciles today's slots, mirroring the save-then-agenda flow of the
// client. The remaining horizon is materialized in the background.
func (h *ScheduleHandler) SaveAvailabilityHandler(c *gin.Context) {
	logger := utils.GetLogger()
	providerID := c.Param("id")

	var req models.WeeklyScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	created, err := h.Service.SaveWeeklySchedule(c.Request.Context(), providerID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	today := time.Now().Format(schedule.DateLayout)
	result, err := h.Service.Reconcile(c.Request.Context(), providerID, today)
	if err != nil {
		// The schedule itself is saved; report the reconcile hiccup as retryable.
		logger.Warn("Post-save reconcile failed", zap.String("providerId", providerID), zap.Error(err))
	}

	h.enqueueMaterialization(providerID)

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Weekly schedule saved",
		"availability": created,
		"reconciled":   result,
	})
}

// ListAvailabilityHandler returns the provider's current weekly rules.
func (h *ScheduleHandler) ListAvailabilityHandler(c *gin.Context) {
	availability, err := h.Service.ListAvailability(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": availability})
}

// ResetAvailabilityHandler deletes every weekly rule the provider owns.
// Slots already materialized from those rules stay untouched.
func (h *ScheduleHandler) ResetAvailabilityHandler(c *gin.Context) {
	providerID := c.Param("id")
	deleted, err := h.Service.ResetAvailability(c.Request.Context(), providerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "All availability cleared",
		"deleted": deleted,
	})
}

// ReconcileHandler materializes slots for one date, the date-selection
// trigger. Partial write failures come back inside the result, not as an
// HTTP error, since the next call retries exactly the missing times.
func (h *ScheduleHandler) ReconcileHandler(c *gin.Context) {
	result, err := h.Service.Reconcile(c.Request.Context(), c.Param("id"), c.Param("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reconciled": result})
}

func (h *ScheduleHandler) enqueueMaterialization(providerID string) {
	if h.Queue == nil {
		return
	}
	if err := cron.EnqueueProviderMaterialization(h.Queue, providerID); err != nil {
		utils.GetLogger().Warn("Failed to enqueue materialization task",
			zap.String("providerId", providerID), zap.Error(err))
	}
}
