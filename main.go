package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mediplan/config"
	"mediplan/cron"
	"mediplan/database"
	availabilityRepo "mediplan/database/repository/availability"
	slotRepo "mediplan/database/repository/slot"
	"mediplan/handlers"
	"mediplan/middleware"
	"mediplan/routes"
	"mediplan/services/schedule"
	"mediplan/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Repositories.
	availRepo := availabilityRepo.NewMongoAvailabilityRepo()
	slotsRepo := slotRepo.NewMongoSlotRepo()

	// The scheduling engine, with its store adapters injected.
	scheduleService, err := schedule.NewDefaultScheduleService(availRepo, slotsRepo, utils.GetCacheClient())
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize schedule service: %v", err)
	}

	// Background slot materialization.
	queueClient := cron.NewQueueClient()
	defer queueClient.Close()
	cron.InitMaterializeWorker(scheduleService)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	scheduleHandler := handlers.NewScheduleHandler(scheduleService, queueClient)
	routes.RegisterRoutes(router, scheduleHandler)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("Starting server on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
	logger.Info("Server exited")
}
