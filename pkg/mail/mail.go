package mail

import (
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"adces/config"
)

// Message is a plain-text notification mail.
type Message struct {
	ToName  string
	ToEmail string
	Subject string
	Body    string
}

// Mailer sends notification mail. Delivery is best-effort: failures are
// logged and never surfaced to the caller.
type Mailer interface {
	Send(msg Message)
}

// sendgridMailer delivers through the SendGrid v3 API.
type sendgridMailer struct {
	client *sendgrid.Client
	from   *sgmail.Email
	logger *zap.Logger
}

// NewSendGridMailer creates a SendGrid-backed mailer.
func NewSendGridMailer(cfg *config.MailConfig, logger *zap.Logger) Mailer {
	return &sendgridMailer{
		client: sendgrid.NewSendClient(cfg.SendGridKey),
		from:   sgmail.NewEmail(cfg.FromName, cfg.FromEmail),
		logger: logger,
	}
}

// Send dispatches the message on a goroutine and returns immediately.
func (m *sendgridMailer) Send(msg Message) {
	go func() {
		to := sgmail.NewEmail(msg.ToName, msg.ToEmail)
		mail := sgmail.NewSingleEmail(m.from, msg.Subject, to, msg.Body, "")

		resp, err := m.client.Send(mail)
		if err != nil {
			m.logger.Warn("notification mail send failed",
				zap.String("to", msg.ToEmail),
				zap.Error(err),
			)
			return
		}
		if resp.StatusCode >= 400 {
			m.logger.Warn("notification mail rejected",
				zap.String("to", msg.ToEmail),
				zap.Int("status", resp.StatusCode),
			)
			return
		}
		m.logger.Info("notification mail sent", zap.String("to", msg.ToEmail))
	}()
}

// NopMailer discards all messages. Used when no SendGrid key is configured
// and in tests.
type NopMailer struct{}

func (NopMailer) Send(Message) {}
