package scheduler

import (
	"context"
	"fmt"

	"tenantcore/internal/email"
	"tenantcore/platform/config"
	"tenantcore/platform/logger"

	"github.com/hibiken/asynq"
)

// Worker consumes the background queue and delivers notification emails.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	sender email.Sender
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, sender email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetWorkerConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		sender: sender,
		log:    log,
	}

	mux.HandleFunc(TaskMemberInviteEmail, w.handleMemberInviteEmail)

	return w, nil
}

func (w *Worker) handleMemberInviteEmail(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseMemberInviteEmailPayload(task)
	if err != nil {
		return err
	}

	if err := w.sender.SendMemberInviteEmail(ctx, payload.Email, payload.OrganizationName); err != nil {
		w.log.Error("member invite email failed",
			"email", payload.Email,
			"organization_id", payload.OrganizationID,
			"error", err.Error(),
		)
		return err
	}

	w.log.Info("member invite email sent",
		"email", payload.Email,
		"organization_id", payload.OrganizationID,
	)
	return nil
}

// Run blocks processing tasks until ctx is cancelled, then shuts the server
// down gracefully.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
