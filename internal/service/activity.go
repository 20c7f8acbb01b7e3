package service

import "github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"

// ActivityPublisher fans social-feed events out to connected clients.
type ActivityPublisher interface {
	Publish(event model.ActivityEvent)
}

// NopActivity discards events. It backs processes without a WebSocket hub.
type NopActivity struct{}

func (NopActivity) Publish(model.ActivityEvent) {}
