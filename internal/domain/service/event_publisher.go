package service

import (
	"context"
)

// Recipe event types published to the message queue.
const (
	RecipeEventCreated = "recipe.created"
	RecipeEventDeleted = "recipe.deleted"
)

// RecipeEvent represents a recipe lifecycle event for downstream consumers
// (feed builders, search indexers).
type RecipeEvent struct {
	RequestID string `json:"request_id,omitempty"` // For distributed tracing
	EventType string `json:"event_type"`
	RecipeID  string `json:"recipe_id"`
	UserID    string `json:"user_id"`
	Title     string `json:"title,omitempty"`
	Category  string `json:"category,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishRecipeEvent publishes a recipe lifecycle event for async processing
	PublishRecipeEvent(ctx context.Context, event *RecipeEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
