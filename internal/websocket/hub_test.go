package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"promptito-be/internal/model"
	"promptito-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func TestHubSendDeliversLocally(t *testing.T) {
	hub := startHub(t)
	userID := uuid.New()
	a := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 4)}
	b := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 4)}
	other := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 4)}
	hub.register <- a
	hub.register <- b
	hub.register <- other
	require.Eventually(t, func() bool { return hub.Connected(userID) == 2 }, time.Second, 10*time.Millisecond)

	hub.Send(userID, model.Notification{Title: "Prompt favorited", TypeCode: "PROMPT_FAVORITED"})

	for _, c := range []*Client{a, b} {
		select {
		case raw := <-c.Send:
			var msg struct {
				Type string             `json:"type"`
				Data model.Notification `json:"data"`
			}
			require.NoError(t, json.Unmarshal(raw, &msg))
			assert.Equal(t, "notification", msg.Type)
			assert.Equal(t, "PROMPT_FAVORITED", msg.Data.TypeCode)
		case <-time.After(time.Second):
			t.Fatal("notification not delivered")
		}
	}
	assert.Empty(t, other.Send)
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := startHub(t)
	userID := uuid.New()
	c := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 1)}
	hub.register <- c
	require.Eventually(t, func() bool { return hub.Connected(userID) == 1 }, time.Second, 10*time.Millisecond)

	hub.unregister <- c
	require.Eventually(t, func() bool { return hub.Connected(userID) == 0 }, time.Second, 10*time.Millisecond)
	_, open := <-c.Send
	assert.False(t, open)
}
