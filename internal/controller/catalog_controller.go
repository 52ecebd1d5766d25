package controller

import (
	"promptito-be/internal/dto"
	"promptito-be/internal/pkg/serverutils"
	"promptito-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	Blocks(ctx *fiber.Ctx) error
	Suggest(ctx *fiber.Ctx) error
	Niches(ctx *fiber.Ctx) error
	Tools(ctx *fiber.Ctx) error
	Structures(ctx *fiber.Ctx) error
}

type catalogController struct {
	catalogService service.ICatalogService
	locales        Locales
}

func NewCatalogController(catalogService service.ICatalogService, locales Locales) ICatalogController {
	return &catalogController{
		catalogService: catalogService,
		locales:        locales,
	}
}

func (c *catalogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/catalog/v1")
	h.Get("blocks", c.Blocks)
	h.Get("suggest", c.Suggest)
	h.Get("niches", c.Niches)
	h.Get("tools", c.Tools)
	h.Get("structures", c.Structures)
}

func (c *catalogController) Blocks(ctx *fiber.Ctx) error {
	var q dto.CatalogQuery
	if err := parseQuery(ctx, &q); err != nil {
		return err
	}
	res := c.catalogService.Blocks(c.locales.For(ctx), &q)
	return ctx.JSON(serverutils.SuccessResponse("Success list blocks", res))
}

func (c *catalogController) Suggest(ctx *fiber.Ctx) error {
	var q dto.SuggestQuery
	if err := parseQuery(ctx, &q); err != nil {
		return err
	}
	res := c.catalogService.Suggest(c.locales.For(ctx), &q)
	return ctx.JSON(serverutils.SuccessResponse("Success suggest blocks", res))
}

func (c *catalogController) Niches(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success list niches", c.catalogService.Niches()))
}

func (c *catalogController) Tools(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success list tools", c.catalogService.Tools(c.locales.For(ctx))))
}

func (c *catalogController) Structures(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success list structures", c.catalogService.Structures(c.locales.For(ctx))))
}
