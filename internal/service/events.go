package service

import (
	"context"

	"promptito-be/internal/entity"
	"promptito-be/internal/pkg/logger"
	"promptito-be/pkg/events"

	"github.com/google/uuid"
)

// publish sends event when a publisher is wired and only logs failures; a
// lost notification never fails the request that caused it.
func publish(ctx context.Context, pub EventPublisher, log logger.ILogger, event events.Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, event); err != nil {
		log.Warn("Events", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}

func promptPayload(p *entity.Prompt, actorID uuid.UUID) map[string]interface{} {
	payload := map[string]interface{}{
		"prompt_id": p.Id.String(),
		"owner_id":  p.OwnerId.String(),
		"title":     p.Title,
		"slug":      p.Slug,
	}
	if actorID != uuid.Nil {
		payload["actor_id"] = actorID.String()
	}
	return payload
}
