package service

import (
	"context"
	"time"
)

const (
	EventTypePageViewed      = "page.viewed"
	EventTypeContactComposed = "contact.composed"
)

type PageViewedEvent struct {
	EventType string    `json:"event_type"`
	RequestID string    `json:"request_id"`
	Username  string    `json:"username,omitempty"`
	Theme     string    `json:"theme"`
	Outcome   string    `json:"outcome"`
	At        time.Time `json:"at"`
}

// ContactComposedEvent carries the sender's name only. Addresses and message
// bodies stay in the visitor's mail client.
type ContactComposedEvent struct {
	EventType string    `json:"event_type"`
	RequestID string    `json:"request_id"`
	Name      string    `json:"name"`
	At        time.Time `json:"at"`
}

type EventPublisher interface {
	PublishPageViewed(ctx context.Context, e PageViewedEvent) error
	PublishContactComposed(ctx context.Context, e ContactComposedEvent) error
	Close() error
}
