package service

import (
	"context"
	"errors"
	"testing"

	"github.com/karanpreetsingh462/FitGenius-Hub/internal/config"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactService_Submit(t *testing.T) {
	f := newFixture(t)
	s := NewContactService(f.cfg, f.queue, &f.logger)

	err := s.Submit(context.Background(), ContactMessage{
		Name:    "<b>Eve</b>",
		Email:   "eve@example.com",
		Message: "line one\nline two",
	})
	require.NoError(t, err)

	jobs := f.queue.Jobs()
	require.Len(t, jobs, 2)

	admin := jobs[0]
	assert.Equal(t, model.ChannelEmail, admin.Kind)
	assert.Equal(t, "hub@fitgenius.test", admin.Email.To)
	assert.Equal(t, "eve@example.com", admin.Email.ReplyTo)
	assert.Equal(t, "FitGenius Hub - Contact Form Submission", admin.Subject)
	assert.Contains(t, admin.Body, "&lt;b&gt;Eve&lt;/b&gt;")
	assert.NotContains(t, admin.Body, "<b>Eve</b>")
	assert.Contains(t, admin.Body, "line one<br>line two")

	confirm := jobs[1]
	assert.Equal(t, "eve@example.com", confirm.Email.To)
	assert.Empty(t, confirm.Email.ReplyTo)
}

func TestContactService_EmailUnavailable(t *testing.T) {
	f := newFixture(t)
	f.cfg.Notifiers.Email = config.EmailConfig{}
	s := NewContactService(f.cfg, f.queue, &f.logger)

	assert.ErrorIs(t, s.Submit(context.Background(), ContactMessage{Name: "a", Email: "a@b.c", Message: "hi"}), ErrEmailUnavailable)
	assert.ErrorIs(t, s.SubmitMembership(context.Background(), MembershipInquiry{Name: "a", Email: "a@b.c", Phone: "+123"}), ErrEmailUnavailable)
	assert.Empty(t, f.queue.Jobs())
}

func TestContactService_SubmitMembership(t *testing.T) {
	f := newFixture(t)
	f.cfg.Notifiers.Email.AdminAddress = "desk@fitgenius.test"
	f.cfg.Notifiers.Telegram = config.TelegramConfig{BotToken: "token", AdminChatID: 42}
	s := NewContactService(f.cfg, f.queue, &f.logger)

	require.NoError(t, s.SubmitMembership(context.Background(), MembershipInquiry{
		Name: "Eve", Email: "eve@example.com", Phone: "+15551234",
	}))

	jobs := f.queue.Jobs()
	require.Len(t, jobs, 3)
	assert.Equal(t, "desk@fitgenius.test", jobs[0].Email.To)
	assert.Equal(t, "eve@example.com", jobs[1].Email.To)
	assert.Equal(t, model.ChannelTelegram, jobs[2].Kind)
	assert.Equal(t, int64(42), jobs[2].Telegram.ChatID)
	assert.Contains(t, jobs[2].Body, "+15551234")
}

func TestContactService_QueueFailure(t *testing.T) {
	f := newFixture(t)
	f.queue.Err = errors.New("broker down")
	s := NewContactService(f.cfg, f.queue, &f.logger)

	err := s.Submit(context.Background(), ContactMessage{Name: "a", Email: "a@b.c", Message: "hi"})
	assert.ErrorContains(t, err, "broker down")
}
