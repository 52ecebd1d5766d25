package controller

import (
	"promptito-be/internal/dto"
	"promptito-be/internal/pkg/serverutils"
	"promptito-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISkillPackController interface {
	RegisterRoutes(r fiber.Router)
	NewPack(ctx *fiber.Ctx) error
	NewSkill(ctx *fiber.Ctx) error
	Validate(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
	ParseSkill(ctx *fiber.Ctx) error
	Save(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type skillPackController struct {
	skillPackService service.ISkillPackService
	locales          Locales
}

func NewSkillPackController(skillPackService service.ISkillPackService, locales Locales) ISkillPackController {
	return &skillPackController{
		skillPackService: skillPackService,
		locales:          locales,
	}
}

func (c *skillPackController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/skills/v1")
	h.Use(serverutils.OptionalJwt)
	h.Get("new", c.NewPack)
	h.Get("new-skill", c.NewSkill)
	h.Post("validate", c.Validate)
	h.Post("export", c.Export)
	h.Post("parse", c.ParseSkill)
	h.Get(":id", c.Show)

	h.Get("", serverutils.JwtMiddleware, c.List)
	h.Post("", serverutils.JwtMiddleware, c.Save)
	h.Delete(":id", serverutils.JwtMiddleware, c.Delete)
}

func (c *skillPackController) NewPack(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success create pack", c.skillPackService.NewPack(c.locales.For(ctx))))
}

func (c *skillPackController) NewSkill(ctx *fiber.Ctx) error {
	res := c.skillPackService.NewSkill(c.locales.For(ctx), ctx.QueryBool("template", false))
	return ctx.JSON(serverutils.SuccessResponse("Success create skill", res))
}

func (c *skillPackController) Validate(ctx *fiber.Ctx) error {
	var req dto.SaveSkillPackRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := c.skillPackService.Validate(&req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Skill pack is valid", nil))
}

func (c *skillPackController) Export(ctx *fiber.Ctx) error {
	var req dto.SaveSkillPackRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	archive, err := c.skillPackService.Export(&req)
	if err != nil {
		return err
	}
	return sendArchive(ctx, archive)
}

func (c *skillPackController) ParseSkill(ctx *fiber.Ctx) error {
	var req dto.ParseSkillRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.skillPackService.ParseSkill(&req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success parse skill", res))
}

func (c *skillPackController) Save(ctx *fiber.Ctx) error {
	var req dto.SaveSkillPackRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.skillPackService.Save(ctx.Context(), actorFrom(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success save skill pack", res))
}

func (c *skillPackController) Show(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.skillPackService.Get(ctx.Context(), actorFrom(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show skill pack", res))
}

func (c *skillPackController) List(ctx *fiber.Ctx) error {
	res, err := c.skillPackService.List(ctx.Context(), actorFrom(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list skill packs", res))
}

func (c *skillPackController) Delete(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}
	if err := c.skillPackService.Delete(ctx.Context(), actorFrom(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete skill pack", nil))
}
