package controller

import (
	"promptito-be/internal/dto"
	"promptito-be/internal/pkg/serverutils"
	"promptito-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBuilderController interface {
	RegisterRoutes(r fiber.Router)
	Fresh(ctx *fiber.Ctx) error
	Compose(ctx *fiber.Ctx) error
	Reduce(ctx *fiber.Ctx) error
	LoadDraft(ctx *fiber.Ctx) error
	SaveDraft(ctx *fiber.Ctx) error
	DeleteDraft(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
	Publish(ctx *fiber.Ctx) error
}

type builderController struct {
	builderService service.IPromptBuilderService
	locales        Locales
}

func NewBuilderController(builderService service.IPromptBuilderService, locales Locales) IBuilderController {
	return &builderController{
		builderService: builderService,
		locales:        locales,
	}
}

func (c *builderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/builder/v1")
	h.Use(serverutils.OptionalJwt)
	h.Get("fresh", c.Fresh)
	h.Post("compose", c.Compose)
	h.Post("reduce", c.Reduce)
	h.Get("draft", c.LoadDraft)
	h.Put("draft", c.SaveDraft)
	h.Delete("draft", c.DeleteDraft)
	h.Post("export", c.Export)
	h.Post("publish", serverutils.JwtMiddleware, c.Publish)
}

func (c *builderController) Fresh(ctx *fiber.Ctx) error {
	res := c.builderService.Fresh(c.locales.For(ctx))
	return ctx.JSON(serverutils.SuccessResponse("Success create builder state", res))
}

func (c *builderController) Compose(ctx *fiber.Ctx) error {
	var req dto.BuilderRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	res := c.builderService.Compose(c.locales.For(ctx), &req)
	return ctx.JSON(serverutils.SuccessResponse("Success compose prompt", res))
}

func (c *builderController) Reduce(ctx *fiber.Ctx) error {
	var req dto.ReduceRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.builderService.Reduce(c.locales.For(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success apply actions", res))
}

func (c *builderController) LoadDraft(ctx *fiber.Ctx) error {
	res, err := c.builderService.LoadDraft(ctx.Context(), actorFrom(ctx), c.locales.For(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success load draft", res))
}

func (c *builderController) SaveDraft(ctx *fiber.Ctx) error {
	var req dto.BuilderRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.builderService.SaveDraft(ctx.Context(), actorFrom(ctx), c.locales.For(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success save draft", res))
}

func (c *builderController) DeleteDraft(ctx *fiber.Ctx) error {
	if err := c.builderService.DeleteDraft(ctx.Context(), actorFrom(ctx)); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete draft", nil))
}

func (c *builderController) Export(ctx *fiber.Ctx) error {
	var req dto.BuilderRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	archive, err := c.builderService.Export(c.locales.For(ctx), &req)
	if err != nil {
		return err
	}
	return sendArchive(ctx, archive)
}

func (c *builderController) Publish(ctx *fiber.Ctx) error {
	var req dto.PublishRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.builderService.Publish(ctx.Context(), actorFrom(ctx), c.locales.For(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success publish prompt", res))
}
