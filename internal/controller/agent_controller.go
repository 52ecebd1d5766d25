package controller

import (
	"promptito-be/internal/dto"
	"promptito-be/internal/pkg/serverutils"
	"promptito-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAgentController interface {
	RegisterRoutes(r fiber.Router)
	New(ctx *fiber.Ctx) error
	Preview(ctx *fiber.Ctx) error
	Validate(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
	Save(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type agentController struct {
	agentService service.IAgentService
	locales      Locales
}

func NewAgentController(agentService service.IAgentService, locales Locales) IAgentController {
	return &agentController{
		agentService: agentService,
		locales:      locales,
	}
}

func (c *agentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/agents/v1")
	h.Use(serverutils.OptionalJwt)
	h.Get("new", c.New)
	h.Post("preview", c.Preview)
	h.Post("validate", c.Validate)
	h.Post("export", c.Export)
	h.Get(":id", c.Show)

	h.Get("", serverutils.JwtMiddleware, c.List)
	h.Post("", serverutils.JwtMiddleware, c.Save)
	h.Delete(":id", serverutils.JwtMiddleware, c.Delete)
}

func (c *agentController) New(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success create agent", c.agentService.New(c.locales.For(ctx))))
}

func (c *agentController) Preview(ctx *fiber.Ctx) error {
	var req dto.SaveAgentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.agentService.Preview(c.locales.For(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success preview agent", res))
}

func (c *agentController) Validate(ctx *fiber.Ctx) error {
	var req dto.SaveAgentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := c.agentService.Validate(c.locales.For(ctx), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Agent is valid", nil))
}

func (c *agentController) Export(ctx *fiber.Ctx) error {
	var req dto.SaveAgentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	archive, err := c.agentService.Export(c.locales.For(ctx), &req)
	if err != nil {
		return err
	}
	return sendArchive(ctx, archive)
}

func (c *agentController) Save(ctx *fiber.Ctx) error {
	var req dto.SaveAgentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.agentService.Save(ctx.Context(), actorFrom(ctx), c.locales.For(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success save agent", res))
}

func (c *agentController) Show(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.agentService.Get(ctx.Context(), actorFrom(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show agent", res))
}

func (c *agentController) List(ctx *fiber.Ctx) error {
	res, err := c.agentService.List(ctx.Context(), actorFrom(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list agents", res))
}

func (c *agentController) Delete(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}
	if err := c.agentService.Delete(ctx.Context(), actorFrom(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete agent", nil))
}
