package services

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Routing keys of the catalog events.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher delivers catalog events to a message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// ProductEvent is the body of every catalog event.
type ProductEvent struct {
	ProductID string `json:"productId"`
	Title     string `json:"title,omitempty"`
	Slug      string `json:"slug,omitempty"`
	UserID    string `json:"userId,omitempty"`
}

// publish sends the event after the store has committed. Failures are logged
// and swallowed: the write already happened.
func publish(p EventPublisher, logger *zap.Logger, routingKey string, event ProductEvent) {
	if p == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		logger.Error("failed to marshal product event", zap.String("routing_key", routingKey), zap.Error(err))
		return
	}
	if err := p.Publish(routingKey, body); err != nil {
		logger.Warn("failed to publish product event",
			zap.String("routing_key", routingKey),
			zap.String("product_id", event.ProductID),
			zap.Error(err))
	}
}
