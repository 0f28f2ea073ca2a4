package mailer

import (
	"github.com/mmttc/workshop-registration/pkg/config"
	"github.com/mmttc/workshop-registration/pkg/logger"
)

// FromConfig picks a provider adapter. Missing credentials degrade to the
// dev mailer instead of failing startup.
func FromConfig(cfg config.EmailConfig) Service {
	switch {
	case cfg.DevMode:
		logger.Info("email dev mode enabled, emails will be logged only")
		return NewDevMailer()
	case cfg.MailerSendKey != "" && cfg.FromEmail != "":
		return NewMailer(cfg.MailerSendKey, cfg.FromName, cfg.FromEmail)
	case cfg.SMTPHost != "" && cfg.FromEmail != "":
		return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.FromEmail, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPUseTLS)
	default:
		logger.Warn("no email provider configured, confirmation emails will be skipped")
		return NewDevMailer()
	}
}
