package routes

import (
	"net/http"
	"time"

	"mediplan/handlers"
	"mediplan/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterProviderRoutes registers the provider-facing schedule endpoints.
func RegisterProviderRoutes(r *gin.Engine, h *handlers.ScheduleHandler) {
	api := r.Group("/api/providers")
	{
		api.POST("/:id/availability", h.SaveAvailabilityHandler)
		api.GET("/:id/availability", h.ListAvailabilityHandler)
		api.DELETE("/:id/availability", h.ResetAvailabilityHandler)

		// Date selection on the agenda triggers slot materialization.
		api.POST("/:id/agenda/:date", h.ReconcileHandler)
		api.GET("/:id/slots/:date", h.GetSlotsHandler)
	}
}

// RegisterSlotRoutes registers the booking-side slot transitions.
func RegisterSlotRoutes(r *gin.Engine, h *handlers.ScheduleHandler) {
	api := r.Group("/api/slots")
	{
		api.POST("/:id/request", h.RequestSlotHandler)
		api.POST("/:id/confirm", h.ConfirmSlotHandler)
		api.POST("/:id/cancel", h.CancelSlotHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, h *handlers.ScheduleHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterProviderRoutes(r, h)
	RegisterSlotRoutes(r, h)
	RegisterHealthRoute(r)
}
