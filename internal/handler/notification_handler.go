package handler

import (
	"promptito-be/internal/pkg/apperror"
	"promptito-be/internal/pkg/logger"
	"promptito-be/internal/pkg/serverutils"
	"promptito-be/internal/service"
	internalWS "promptito-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	service *service.NotificationService
	hub     *internalWS.Hub
	logger  logger.ILogger
}

func NewNotificationHandler(service *service.NotificationService, hub *internalWS.Hub, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		hub:     hub,
		logger:  log,
	}
}

type mutedTypesRequest struct {
	MutedTypes []string `json:"muted_types" validate:"dive,required,max=50"`
}

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID, err := uuid.Parse(serverutils.CurrentUser(c))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}
	return userID, nil
}

// ServeWs upgrades an authenticated request. Browsers cannot set headers on
// a socket, so the token may also come in the "token" query parameter.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
	}

	claims, err := serverutils.ParseToken(tokenStr)
	if err != nil {
		h.logger.Warn("NotificationHandler", "Invalid token in websocket handshake", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid user id in token"))
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("NotificationHandler", "WebSocket session started", map[string]interface{}{"user_id": userID.String()})
		internalWS.ServeWs(h.hub, conn, userID)
		h.logger.Info("NotificationHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID.String()})
	})(c)
}

func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	notifications, total, err := h.service.GetNotifications(c.Context(), userID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("Success list notifications", fiber.Map{
		"items":  notifications,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	}))
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	count, err := h.service.GetUnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("Success count unread", fiber.Map{"count": count}))
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperror.BadRequest("invalid id")
	}
	if err := h.service.MarkAsRead(c.Context(), userID, id); err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse[any]("Success mark as read", nil))
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	if err := h.service.MarkAllAsRead(c.Context(), userID); err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse[any]("Success mark all as read", nil))
}

func (h *NotificationHandler) GetMutedTypes(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	muted, err := h.service.GetMutedTypes(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("Success show muted types", mutedTypesRequest{MutedTypes: muted}))
}

func (h *NotificationHandler) SetMutedTypes(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req mutedTypesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("invalid body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if req.MutedTypes == nil {
		req.MutedTypes = []string{}
	}
	if err := h.service.SetMutedTypes(c.Context(), userID, req.MutedTypes); err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("Success update muted types", req))
}

func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	// The socket authenticates itself during the handshake.
	router.Get("/notifications/v1/ws", h.ServeWs)

	notif := router.Group("/notifications/v1")
	notif.Use(serverutils.JwtMiddleware)
	notif.Get("", h.GetNotifications)
	notif.Get("unread-count", h.GetUnreadCount)
	notif.Patch("read-all", h.MarkAllAsRead)
	notif.Patch(":id/read", h.MarkAsRead)
	notif.Get("muted", h.GetMutedTypes)
	notif.Put("muted", h.SetMutedTypes)
}
