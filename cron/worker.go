package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"mediplan/config"
	"mediplan/services/schedule"
	"mediplan/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	// TypeMaterializeAll sweeps every provider with availability rules.
	TypeMaterializeAll = "slots:materialize"
	// TypeMaterializeProvider targets a single provider, enqueued after a
	// schedule save.
	TypeMaterializeProvider = "slots:materialize:provider"
)

// MaterializePayload carries the target of a provider-scoped task.
type MaterializePayload struct {
	ProviderID string `json:"providerId"`
}

func redisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewQueueClient returns an asynq client for enqueueing materialization tasks.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(redisOpt())
}

// EnqueueProviderMaterialization schedules a background sweep of one
// provider's horizon.
func EnqueueProviderMaterialization(client *asynq.Client, providerID string) error {
	payload, err := json.Marshal(MaterializePayload{ProviderID: providerID})
	if err != nil {
		return err
	}
	_, err = client.Enqueue(asynq.NewTask(TypeMaterializeProvider, payload))
	return err
}

// InitMaterializeWorker runs the asynq worker and the periodic scheduler in
// the background. The sweep keeps every provider's slots materialized over
// the configured horizon; reconciliation is idempotent, so an overlapping or
// repeated run is harmless.
func InitMaterializeWorker(svc *schedule.DefaultScheduleService) {
	srv := asynq.NewServer(
		redisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeMaterializeAll, handleMaterializeAll(svc))
	mux.HandleFunc(TypeMaterializeProvider, handleMaterializeProvider(svc))

	go func() {
		log.Println("[MaterializeWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[MaterializeWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[MaterializeWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	scheduler := asynq.NewScheduler(redisOpt(), nil)
	if _, err := scheduler.Register(config.AppConfig.ReconcileInterval, asynq.NewTask(TypeMaterializeAll, nil)); err != nil {
		log.Fatalf("[MaterializeWorker] Failed to register periodic sweep: %v", err)
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[MaterializeWorker] Scheduler stopped: %v", err)
		}
	}()
}

func handleMaterializeAll(svc *schedule.DefaultScheduleService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		providerIDs, err := svc.Availability.ListProviderIDs(ctx)
		if err != nil {
			return err
		}
		for _, providerID := range providerIDs {
			materializeHorizon(ctx, svc, providerID)
		}
		return nil
	}
}

func handleMaterializeProvider(svc *schedule.DefaultScheduleService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p MaterializePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[MaterializeWorker] Invalid payload: %v", err)
			return err
		}
		materializeHorizon(ctx, svc, p.ProviderID)
		return nil
	}
}

// materializeHorizon reconciles each date in [today, today+horizon] for one
// provider, skipping dates whose last sweep is still fresh. Per-date failures
// are logged and left for the next sweep.
func materializeHorizon(ctx context.Context, svc *schedule.DefaultScheduleService, providerID string) {
	logger := utils.GetLogger()
	horizon := config.AppConfig.ReconcileHorizonDays
	today := time.Now()

	var created int
	for i := 0; i <= horizon; i++ {
		date := today.AddDate(0, 0, i).Format(schedule.DateLayout)
		if svc.RecentlyReconciled(ctx, providerID, date) {
			continue
		}
		result, err := svc.Reconcile(ctx, providerID, date)
		if err != nil {
			logger.Warn("Horizon reconcile failed",
				zap.String("providerId", providerID),
				zap.String("date", date),
				zap.Error(err))
			continue
		}
		created += len(result.Created)
	}

	maxDate, err := svc.Slots.MaxMaterializedDate(ctx, providerID)
	if err != nil {
		logger.Warn("Failed to read max materialized date",
			zap.String("providerId", providerID), zap.Error(err))
		return
	}
	logger.Info("Materialized provider horizon",
		zap.String("providerId", providerID),
		zap.Int("created", created),
		zap.String("maxDate", maxDate))
}
