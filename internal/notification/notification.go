// Package notification bridges domain events to email delivery. It runs in
// the API process and keeps email out of the request path: invite emails are
// queued for the worker when Redis is configured, or sent directly otherwise.
package notification

import (
	"context"

	"tenantcore/internal/email"
	"tenantcore/internal/events"
	"tenantcore/internal/scheduler"
	"tenantcore/platform/logger"
)

type Notifier struct {
	queue  *scheduler.Client
	sender email.Sender
	log    *logger.Logger
}

// New creates a notifier. queue may be nil when no Redis is configured; the
// notifier then delivers emails inline.
func New(queue *scheduler.Client, sender email.Sender, log *logger.Logger) *Notifier {
	return &Notifier{queue: queue, sender: sender, log: log}
}

// RegisterHandlers subscribes the notifier to the events it acts on.
func (n *Notifier) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.MemberInvited{}.EventName(), events.HandlerFunc(n.handleMemberInvited))
}

func (n *Notifier) handleMemberInvited(ctx context.Context, event events.Event) error {
	invited, ok := event.(events.MemberInvited)
	if !ok {
		return nil
	}

	if n.queue != nil {
		err := n.queue.EnqueueMemberInviteEmail(ctx, scheduler.MemberInviteEmailPayload{
			Email:            invited.Email,
			OrganizationID:   invited.OrganizationID,
			OrganizationName: invited.OrganizationName,
		})
		if err == nil {
			return nil
		}
		n.log.Error("could not queue invite email, delivering inline",
			"email", invited.Email,
			"error", err.Error(),
		)
	}

	return n.sender.SendMemberInviteEmail(ctx, invited.Email, invited.OrganizationName)
}
