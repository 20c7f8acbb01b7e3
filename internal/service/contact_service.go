package service

import (
	"context"
	"fmt"

	"github.com/karanpreetsingh462/FitGenius-Hub/internal/config"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	repo "github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/repository"
	"github.com/rs/zerolog"
)

const defaultContactSubject = "Contact Form Submission"

// ContactMessage is a contact form submission.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// MembershipInquiry is a membership form submission.
type MembershipInquiry struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// ContactService turns form submissions into outbound email and alert jobs.
type ContactService struct {
	queue    repo.JobQueue
	email    config.EmailConfig
	telegram config.TelegramConfig
	logger   zerolog.Logger
}

func NewContactService(cfg *config.Config, queue repo.JobQueue, logger *zerolog.Logger) *ContactService {
	return &ContactService{
		queue:    queue,
		email:    cfg.Notifiers.Email,
		telegram: cfg.Notifiers.Telegram,
		logger:   logger.With().Str("layer", "service").Str("service", "contact").Logger(),
	}
}

// Submit enqueues a copy for the admin and a confirmation for the sender.
func (s *ContactService) Submit(ctx context.Context, m ContactMessage) error {
	if !s.email.Enabled() {
		return ErrEmailUnavailable
	}
	if m.Subject == "" {
		m.Subject = defaultContactSubject
	}

	admin, err := render(contactAdminTmpl, m)
	if err != nil {
		return err
	}
	confirm, err := render(contactConfirmTmpl, m)
	if err != nil {
		return err
	}
	return s.enqueue(ctx,
		model.NewEmailJob(s.email.Admin(), m.Email, "FitGenius Hub - "+m.Subject, admin, true),
		model.NewEmailJob(m.Email, "", "Thank you for contacting FitGenius Hub", confirm, true),
	)
}

// SubmitMembership enqueues the admin copy, the sender confirmation and,
// when a bot is configured, a Telegram alert for the admin chat.
func (s *ContactService) SubmitMembership(ctx context.Context, m MembershipInquiry) error {
	if !s.email.Enabled() {
		return ErrEmailUnavailable
	}

	admin, err := render(membershipAdminTmpl, m)
	if err != nil {
		return err
	}
	confirm, err := render(membershipConfirmTmpl, m)
	if err != nil {
		return err
	}
	jobs := []*model.Job{
		model.NewEmailJob(s.email.Admin(), m.Email, "FitGenius Hub - New Membership Inquiry", admin, true),
		model.NewEmailJob(m.Email, "", "Thank you for your membership inquiry - FitGenius Hub", confirm, true),
	}
	if s.telegram.BotToken != "" && s.telegram.AdminChatID != 0 {
		jobs = append(jobs, model.NewTelegramJob(s.telegram.AdminChatID,
			"New membership inquiry",
			fmt.Sprintf("%s <%s>, phone %s", m.Name, m.Email, m.Phone)))
	}
	return s.enqueue(ctx, jobs...)
}

func (s *ContactService) enqueue(ctx context.Context, jobs ...*model.Job) error {
	for _, j := range jobs {
		if err := s.queue.Publish(ctx, j); err != nil {
			return fmt.Errorf("enqueue %s job: %w", j.Kind, err)
		}
		s.logger.Info().Stringer("job_id", j.ID).Str("channel", string(j.Kind)).Msg("job enqueued")
	}
	return nil
}
