package service

import (
	"context"
	"encoding/json"

	"promptito-be/internal/pkg/logger"
	"promptito-be/internal/repository/cache"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService moves PROMPT_VIEWED messages into the view counter.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	counter   *cache.ViewCounter
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	counter *cache.ViewCounter,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		counter:   counter,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload PromptViewedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ViewConsumer", "Dropping undecodable message", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	if err := cs.counter.Add(ctx, payload.PromptId, 1); err != nil {
		cs.logger.Warn("ViewConsumer", "Failed to buffer view", map[string]interface{}{
			"prompt_id": payload.PromptId.String(),
			"error":     err.Error(),
		})
		msg.Nack()
		return
	}
	msg.Ack()
}
