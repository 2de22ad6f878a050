package cron

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"schedula/config"
	"schedula/services/scheduling"
	"schedula/utils"
)

const TypeCompletePast = "appointments:complete_past"

// InitCompletionWorker runs the asynq worker and the periodic scheduler that
// sweeps past Booked appointments into Completed.
func InitCompletionWorker(svc scheduling.Service) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCompletePast, handleCompletePast(svc))

	go func() {
		log.Println("[CompletionWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[CompletionWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[CompletionWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go runScheduler(redisOpts)
}

// runScheduler enqueues the sweep task on the configured cron spec.
func runScheduler(redisOpts asynq.RedisClientOpt) {
	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{
		Location: time.UTC,
	})

	spec := config.AppConfig.CompletionSweepSpec
	if spec == "" {
		spec = "@every 1h"
	}
	if _, err := scheduler.Register(spec, asynq.NewTask(TypeCompletePast, nil)); err != nil {
		log.Fatalf("[CompletionWorker] failed to register sweep task: %v", err)
	}
	if err := scheduler.Run(); err != nil {
		log.Fatalf("[CompletionWorker] scheduler stopped: %v", err)
	}
}

func handleCompletePast(svc scheduling.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()
		count, err := svc.CompletePastAppointments(ctx, time.Now())
		if err != nil {
			logger.Error("completion sweep failed", zap.Error(err))
			return err
		}
		logger.Info("completion sweep finished", zap.Int("completed", count))
		return nil
	}
}
