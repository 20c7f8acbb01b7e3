package notifiers

import (
	"context"
	"fmt"

	"github.com/karanpreetsingh462/FitGenius-Hub/internal/config"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// mailDialer is satisfied by *gomail.Dialer.
type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailNotifier sends jobs via SMTP.
type EmailNotifier struct {
	dialer mailDialer
	from   string
	logger zerolog.Logger
}

// NewEmailNotifier creates a new instance of EmailNotifier.
func NewEmailNotifier(cfg config.EmailConfig, logger *zerolog.Logger) *EmailNotifier {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &EmailNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
		logger: logger.With().Str("component", "email_notifier").Logger(),
	}
}

// Send implements the Notifier interface for email.
func (n *EmailNotifier) Send(_ context.Context, j *model.Job) error {
	if j.Kind != model.ChannelEmail || j.Email == nil || j.Email.To == "" {
		return fmt.Errorf("invalid job for email channel")
	}

	// DialAndSend opens a connection, sends the email, and closes it.
	if err := n.dialer.DialAndSend(n.buildMessage(j)); err != nil {
		n.logger.Error().Err(err).Stringer("job_id", j.ID).Msg("failed to send email")
		return err
	}

	n.logger.Info().Stringer("job_id", j.ID).Str("recipient", j.Email.To).Msg("email sent successfully")
	return nil
}

func (n *EmailNotifier) buildMessage(j *model.Job) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", j.Email.To)
	if j.Email.ReplyTo != "" {
		m.SetHeader("Reply-To", j.Email.ReplyTo)
	}
	m.SetHeader("Subject", j.Subject)
	if j.Email.HTML {
		m.SetBody("text/html", j.Body)
	} else {
		m.SetBody("text/plain", j.Body)
	}
	return m
}
