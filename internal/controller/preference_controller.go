package controller

import (
	"promptito-be/internal/dto"
	"promptito-be/internal/pkg/serverutils"
	"promptito-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPreferenceController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
}

type preferenceController struct {
	preferenceService service.IPreferenceService
}

func NewPreferenceController(preferenceService service.IPreferenceService) IPreferenceController {
	return &preferenceController{preferenceService: preferenceService}
}

func (c *preferenceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/preferences/v1")
	h.Use(serverutils.OptionalJwt)
	h.Get("", c.Show)
	h.Put("", c.Update)
}

func (c *preferenceController) Show(ctx *fiber.Ctx) error {
	res, err := c.preferenceService.Get(ctx.Context(), actorFrom(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show preferences", res))
}

func (c *preferenceController) Update(ctx *fiber.Ctx) error {
	var req dto.PreferencesRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	email, _ := ctx.Locals(serverutils.LocalEmail).(string)
	res, err := c.preferenceService.Update(ctx.Context(), actorFrom(ctx), service.Profile{Email: email}, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update preferences", res))
}
