package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const TopicPromptViewed = "PROMPT_VIEWED"

type PromptViewedMessage struct {
	PromptId uuid.UUID `json:"prompt_id"`
	ViewedAt time.Time `json:"viewed_at"`
}

// IPublisherService emits in-process events that must not slow the request
// path down.
type IPublisherService interface {
	PublishPromptViewed(ctx context.Context, promptId uuid.UUID) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (ps *publisherService) PublishPromptViewed(ctx context.Context, promptId uuid.UUID) error {
	payload, err := json.Marshal(PromptViewedMessage{PromptId: promptId, ViewedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return ps.pubSub.Publish(ps.topicName, msg)
}
