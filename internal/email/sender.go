// Package email delivers transactional email for the identity service.
package email

import (
	"context"

	"tenantcore/platform/config"
	"tenantcore/platform/logger"
)

// Sender delivers the notification emails the service sends.
type Sender interface {
	// SendMemberInviteEmail notifies a user that they were added to an
	// organization.
	SendMemberInviteEmail(ctx context.Context, toEmail, organizationName string) error
}

// NoopSender is used when email delivery is disabled. It logs what it would
// have sent and succeeds.
type NoopSender struct {
	log *logger.Logger
}

func NewNoopSender(log *logger.Logger) *NoopSender {
	return &NoopSender{log: log}
}

func (s *NoopSender) SendMemberInviteEmail(_ context.Context, toEmail, organizationName string) error {
	s.log.Info("email delivery disabled, skipping member invite email",
		"to", toEmail,
		"organization", organizationName,
	)
	return nil
}

// NewSender selects the configured delivery backend: SMTP when enabled,
// otherwise the logging noop.
func NewSender(cfg config.EmailConfig, log *logger.Logger) Sender {
	if !cfg.GetEmailEnabled() {
		return NewNoopSender(log)
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}
