package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"promptito-be/internal/model"
	"promptito-be/internal/pkg/logger"
	"promptito-be/internal/repository/unitofwork"
	"promptito-be/pkg/events"
	pktNats "promptito-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	notificationSubject = "events.>"
	notificationDurable = "promptito-notification-worker"
)

// NotificationDelivery pushes a stored notification to connected clients.
// The websocket hub implements it.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
}

// EventSubscriber is satisfied by the NATS subscriber.
type EventSubscriber interface {
	Subscribe(ctx context.Context, subject, durableName string, handler pktNats.EventHandler) error
}

type NotificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber EventSubscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
	now        func() time.Time
}

func NewNotificationService(uowFactory unitofwork.RepositoryFactory, sub EventSubscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		uowFactory: uowFactory,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
		now:        time.Now,
	}
}

// Start subscribes the durable worker to every domain event. It returns once
// the consumer is running.
func (s *NotificationService) Start(ctx context.Context) error {
	if s.subscriber == nil {
		return nil
	}
	if err := s.subscriber.Subscribe(ctx, notificationSubject, notificationDurable, s.handleEvent); err != nil {
		return err
	}
	s.logger.Info("NotificationService", "Listening for domain events", map[string]interface{}{"subject": notificationSubject})
	return nil
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), "events.")
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.NotificationRepository()

	config, err := repo.GetNotificationTypeByCode(ctx, typeCode)
	if err != nil {
		return err
	}
	if config == nil {
		s.logger.Debug("NotificationService", "No active notification type", map[string]interface{}{"type": typeCode})
		return nil
	}

	recipients, err := s.resolveRecipients(ctx, uow, config, event)
	if err != nil {
		// Returning the error makes JetStream redeliver.
		return err
	}

	delivered := 0
	for _, userID := range recipients {
		muted, err := repo.GetMutedTypes(ctx, userID)
		if err != nil {
			return err
		}
		if contains(muted, config.Code) {
			continue
		}

		notif := s.buildNotification(userID, config, event)
		if err := repo.CreateNotification(ctx, &notif); err != nil {
			s.logger.Error("NotificationService", "Failed to store notification", map[string]interface{}{
				"user_id": userID.String(),
				"type":    config.Code,
				"error":   err.Error(),
			})
			continue
		}
		if s.delivery != nil {
			s.delivery.Send(userID, notif)
		}
		delivered++
	}
	s.logger.Info("NotificationService", "Event processed", map[string]interface{}{"type": config.Code, "delivered": delivered})
	return nil
}

func payloadUUID(payload map[string]interface{}, key string) (uuid.UUID, bool) {
	raw, ok := payload[key].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	return id, err == nil
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// resolveRecipients never includes the actor of the event; nobody is told
// about their own action.
func (s *NotificationService) resolveRecipients(ctx context.Context, uow unitofwork.UnitOfWork, config *model.NotificationType, event events.Event) ([]uuid.UUID, error) {
	payload := event.Payload()
	actorID, _ := payloadUUID(payload, "actor_id")

	var candidates []uuid.UUID
	switch config.TargetType {
	case model.TargetOwner:
		if id, ok := payloadUUID(payload, "owner_id"); ok {
			candidates = append(candidates, id)
		}
	case model.TargetActor:
		if actorID != uuid.Nil {
			return []uuid.UUID{actorID}, nil
		}
	case model.TargetAdmin:
		admins, err := uow.UserProfileRepository().FindAdminIds(ctx)
		if err != nil {
			return nil, err
		}
		candidates = admins
	default:
		s.logger.Warn("NotificationService", "Unknown target type", map[string]interface{}{"type": config.Code, "target": config.TargetType})
	}

	out := make([]uuid.UUID, 0, len(candidates))
	for _, id := range candidates {
		if id != actorID {
			out = append(out, id)
		}
	}
	return out, nil
}

func (s *NotificationService) buildNotification(userID uuid.UUID, config *model.NotificationType, event events.Event) model.Notification {
	payload := event.Payload()
	msg := config.Template
	for k, v := range payload {
		msg = strings.ReplaceAll(msg, "{"+k+"}", fmt.Sprintf("%v", v))
	}

	var actorID *uuid.UUID
	if id, ok := payloadUUID(payload, "actor_id"); ok {
		actorID = &id
	}
	var promptID *uuid.UUID
	if id, ok := payloadUUID(payload, "prompt_id"); ok {
		promptID = &id
	}

	meta := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		meta[k] = v
	}
	if slug, ok := payload["slug"].(string); ok && slug != "" {
		meta["action_url"] = "/p/" + slug
	}
	metaJSON, _ := json.Marshal(meta)

	return model.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		ActorID:   actorID,
		TypeCode:  config.Code,
		PromptID:  promptID,
		Title:     config.DisplayName,
		Message:   msg,
		Metadata:  datatypes.JSON(metaJSON),
		CreatedAt: s.now().UTC(),
	}
}

func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return s.uowFactory.NewUnitOfWork(ctx).NotificationRepository().GetNotificationsByUserID(ctx, userID, limit, offset)
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.uowFactory.NewUnitOfWork(ctx).NotificationRepository().GetUnreadCount(ctx, userID)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	return s.uowFactory.NewUnitOfWork(ctx).NotificationRepository().MarkAsRead(ctx, userID, id)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.uowFactory.NewUnitOfWork(ctx).NotificationRepository().MarkAllAsRead(ctx, userID)
}

func (s *NotificationService) GetMutedTypes(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.uowFactory.NewUnitOfWork(ctx).NotificationRepository().GetMutedTypes(ctx, userID)
}

func (s *NotificationService) SetMutedTypes(ctx context.Context, userID uuid.UUID, codes []string) error {
	return s.uowFactory.NewUnitOfWork(ctx).NotificationRepository().SetMutedTypes(ctx, userID, codes)
}
