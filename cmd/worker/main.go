package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tenantcore/internal/email"
	"tenantcore/internal/scheduler"
	"tenantcore/platform/config"
	"tenantcore/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sender := email.NewSender(cfg, log)

	worker, err := scheduler.NewWorker(cfg, sender, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	log.Info("worker starting", "queue", cfg.QueueName, "concurrency", cfg.WorkerConcurrency)
	worker.Run(ctx)
	log.Info("worker stopped")
}
