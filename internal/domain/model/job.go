package model

import (
	"time"

	"github.com/google/uuid"
)

// Channel is the delivery channel of an outbound job.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelTelegram Channel = "telegram"
)

// EmailDetails contains recipient information specific to the email channel.
type EmailDetails struct {
	To      string `json:"to"`
	ReplyTo string `json:"replyTo,omitempty"`
	HTML    bool   `json:"html"`
}

// TelegramDetails contains recipient information specific to the telegram channel.
type TelegramDetails struct {
	ChatID int64 `json:"chatId"`
}

// Job is a unit of outbound work executed off the request path.
// Recipient details are mutually exclusive based on Kind.
type Job struct {
	ID        uuid.UUID        `json:"id"`
	Kind      Channel          `json:"kind"`
	Subject   string           `json:"subject"`
	Body      string           `json:"body"`
	Email     *EmailDetails    `json:"email,omitempty"`
	Telegram  *TelegramDetails `json:"telegram,omitempty"`
	Attempts  int              `json:"attempts"`
	NotBefore time.Time        `json:"notBefore"`
	CreatedAt time.Time        `json:"createdAt"`
}

// NewEmailJob is a factory function for an immediate email job.
func NewEmailJob(to, replyTo, subject, body string, html bool) *Job {
	now := time.Now().UTC()
	return &Job{
		ID:        uuid.New(),
		Kind:      ChannelEmail,
		Subject:   subject,
		Body:      body,
		Email:     &EmailDetails{To: to, ReplyTo: replyTo, HTML: html},
		NotBefore: now,
		CreatedAt: now,
	}
}

// NewTelegramJob is a factory function for an immediate telegram job.
func NewTelegramJob(chatID int64, subject, body string) *Job {
	now := time.Now().UTC()
	return &Job{
		ID:        uuid.New(),
		Kind:      ChannelTelegram,
		Subject:   subject,
		Body:      body,
		Telegram:  &TelegramDetails{ChatID: chatID},
		NotBefore: now,
		CreatedAt: now,
	}
}

// Delay returns how long the job must wait before it may run; zero when due.
func (j *Job) Delay(now time.Time) time.Duration {
	if d := j.NotBefore.Sub(now); d > 0 {
		return d
	}
	return 0
}
