package mailer

import (
	"github.com/mmttc/workshop-registration/pkg/logger"
)

// DevMailer logs emails instead of sending them. It stands in whenever no
// provider credentials are configured, so registration keeps working with a
// warning rather than failing on missing secrets.
type DevMailer struct{}

func NewDevMailer() *DevMailer { return &DevMailer{} }

func (d *DevMailer) Send(toEmail, toName, subject, text, html string) (string, error) {
	logger.Info("dev mailer: email not sent",
		"to", toEmail,
		"to_name", toName,
		"subject", subject,
		"text", text,
	)
	return "dev", nil
}

var _ Service = (*DevMailer)(nil)
