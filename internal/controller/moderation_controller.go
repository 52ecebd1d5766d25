package controller

import (
	"promptito-be/internal/dto"
	"promptito-be/internal/pkg/serverutils"
	"promptito-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IModerationController interface {
	RegisterRoutes(r fiber.Router)
	ListReports(ctx *fiber.Ctx) error
	Hide(ctx *fiber.Ctx) error
	Restore(ctx *fiber.Ctx) error
	Logs(ctx *fiber.Ctx) error
	Log(ctx *fiber.Ctx) error
}

type moderationController struct {
	moderationService service.IModerationService
	locales           Locales
}

func NewModerationController(moderationService service.IModerationService, locales Locales) IModerationController {
	return &moderationController{
		moderationService: moderationService,
		locales:           locales,
	}
}

func (c *moderationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/moderation/v1")
	h.Use(serverutils.JwtMiddleware, serverutils.AdminOnly)
	h.Get("reports", c.ListReports)
	h.Post("reports/:id/hide", c.Hide)
	h.Post("reports/:id/restore", c.Restore)
	h.Get("logs", c.Logs)
	h.Get("logs/:id", c.Log)
}

func (c *moderationController) ListReports(ctx *fiber.Ctx) error {
	var q dto.ReportsQuery
	if err := parseQuery(ctx, &q); err != nil {
		return err
	}
	res, err := c.moderationService.ListReports(ctx.Context(), &q)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list reports", res))
}

func (c *moderationController) Hide(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.ModerationActionRequest
	if len(ctx.Body()) > 0 {
		if err := parseBody(ctx, &req); err != nil {
			return err
		}
	}
	res, err := c.moderationService.Hide(ctx.Context(), actorFrom(ctx), c.locales.For(ctx), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success hide prompt", res))
}

func (c *moderationController) Restore(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.moderationService.Restore(ctx.Context(), actorFrom(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success restore prompt", res))
}

func (c *moderationController) Logs(ctx *fiber.Ctx) error {
	var q dto.LogsQuery
	if err := parseQuery(ctx, &q); err != nil {
		return err
	}
	res, err := c.moderationService.Logs(&q)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list logs", res))
}

func (c *moderationController) Log(ctx *fiber.Ctx) error {
	res, err := c.moderationService.Log(ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show log", res))
}
