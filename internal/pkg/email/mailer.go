package email

import (
	"log/slog"

	"github.com/attendly/ems-backend-go/internal/config"
	"gopkg.in/gomail.v2"
)

// Sender delivers one rendered message. The notification queue retries
// around it, so Send makes exactly one delivery attempt.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

type Mailer struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Send delivers a single HTML email over SMTP. When no SMTP host is
// configured the message is skipped, which keeps local development
// working without a mail server.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	if m.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.From, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}
