package handlers

import (
	"net/http"

	"mediplan/utils"

	"github.com/gin-gonic/gin"
)

// GetSlotsHandler lists a provider's slots for a date. With ?status=available
// only claimable slots are returned, the view patients see.
func (h *ScheduleHandler) GetSlotsHandler(c *gin.Context) {
	providerID := c.Param("id")
	date := c.Param("date")

	var (
		slots interface{}
		err   error
	)
	if c.Query("status") == "available" {
		slots, err = h.Service.GetAvailableSlots(c.Request.Context(), providerID, date)
	} else {
		slots, err = h.Service.GetSlots(c.Request.Context(), providerID, date)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// RequestSlotHandler lets a patient claim an AVAILABLE slot.
func (h *ScheduleHandler) RequestSlotHandler(c *gin.Context) {
	var body struct {
		ConsumerID string `json:"consumerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing or invalid consumerId", err.Error())
		return
	}

	slot, err := h.Service.RequestSlot(c.Request.Context(), c.Param("id"), body.ConsumerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slot": slot})
}

// ConfirmSlotHandler lets the provider accept a REQUESTED slot.
func (h *ScheduleHandler) ConfirmSlotHandler(c *gin.Context) {
	slot, err := h.Service.ConfirmSlot(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slot": slot})
}

// CancelSlotHandler releases a claimed slot back to AVAILABLE.
func (h *ScheduleHandler) CancelSlotHandler(c *gin.Context) {
	slot, err := h.Service.CancelSlot(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slot": slot})
}
