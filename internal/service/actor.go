package service

import (
	"context"
	"strings"

	"promptito-be/pkg/events"

	"github.com/google/uuid"
)

// Actor is the caller of a service operation. Signed-in users carry a
// UserID; anonymous sessions are identified by the X-Client-Id header.
type Actor struct {
	UserID   uuid.UUID
	ClientID string
	IsAdmin  bool
}

func (a Actor) SignedIn() bool {
	return a.UserID != uuid.Nil
}

// localKey is the key of the actor's local draft.
func (a Actor) localKey() string {
	if a.SignedIn() {
		return "user:" + a.UserID.String()
	}
	return "client:" + strings.TrimSpace(a.ClientID)
}

func (a Actor) hasIdentity() bool {
	return a.SignedIn() || strings.TrimSpace(a.ClientID) != ""
}

// EventPublisher is satisfied by the NATS publisher.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}
