package handlers

import (
	"errors"
	"net/http"

	"mediplan/services/schedule"
	"mediplan/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps engine errors onto HTTP statuses. Store failures
// are flagged retryable: rerunning the same call is always safe.
func respondServiceError(c *gin.Context, err error) {
	var transition schedule.InvalidTransitionError
	switch {
	case errors.Is(err, schedule.ErrInvalidWindow), errors.Is(err, schedule.ErrInvalidDate):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, schedule.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case errors.As(err, &transition):
		utils.JSONError(c, http.StatusConflict, "Invalid slot transition", err.Error())
	case errors.Is(err, schedule.ErrStoreUnavailable):
		utils.JSONError(c, http.StatusServiceUnavailable, "Temporary storage failure, please retry", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", err.Error())
	}
}
