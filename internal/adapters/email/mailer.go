package email

import (
	"context"
	"fmt"
	"log/slog"

	"volunteerhub/internal/domain"
)

// Providers accepted in EMAIL_PROVIDER.
const (
	ProviderSES  = "ses"
	ProviderNoop = "noop"
)

// SESConfig holds the AWS settings for the SES provider.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// MailerConfig selects and configures the outgoing mail provider.
type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
	Logger      *slog.Logger
}

// NewMailer returns the mailer for config.Provider. Unknown providers fall back to noop
// so a typo never blocks sign-ups; the fallback is logged.
func NewMailer(config MailerConfig) (domain.Mailer, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "mailer", "provider", config.Provider)

	switch config.Provider {
	case ProviderSES:
		if config.SES.Region == "" {
			return nil, fmt.Errorf("ses mailer: region is required")
		}
		if config.FromAddress == "" {
			return nil, fmt.Errorf("ses mailer: from address is required")
		}
		return &sesMailer{
			client:      newSESClient(config.SES, logger),
			fromAddress: config.FromAddress,
			fromName:    config.FromName,
			logger:      logger,
		}, nil
	case ProviderNoop, "":
		return &noopMailer{logger: logger}, nil
	default:
		logger.Warn("unknown email provider, mail will not be delivered")
		return &noopMailer{logger: logger}, nil
	}
}

// noopMailer drops every message. Used in development and tests.
type noopMailer struct {
	logger *slog.Logger
}

func (n *noopMailer) Send(ctx context.Context, to, subject, _, _ string) error {
	n.logger.DebugContext(ctx, "mail dropped", "to", to, "subject", subject)
	return nil
}
