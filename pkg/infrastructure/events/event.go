// Package events provides an append-only audit trail for recommendation
// lifecycle transitions, keyed by recommendation ID.
package events

import (
	"time"
)

// Recommendation lifecycle event types.
const (
	RecommendationProposed = "recommendation.proposed"
	RecommendationApproved = "recommendation.approved"
	RecommendationRejected = "recommendation.rejected"
	RecommendationExecuted = "recommendation.executed"
	RecommendationReverted = "recommendation.reverted"
)

// Event is one entry in a stream's audit trail. Version numbers start at
// 1 and are assigned per stream in append order.
type Event struct {
	Type      string            `json:"type"`
	StreamID  string            `json:"stream_id"`
	Data      map[string]string `json:"data,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Version   int               `json:"version"`
}

// Handler consumes published events
type Handler interface {
	Handle(event Event) error
	CanHandle(eventType string) bool
}

// Store is an append-only event log with type-filtered subscriptions
type Store interface {
	Append(streamID, eventType string, data map[string]string) error
	History(streamID string) ([]Event, error)
	All() ([]Event, error)
	Subscribe(eventTypes []string, handler Handler) error
}
