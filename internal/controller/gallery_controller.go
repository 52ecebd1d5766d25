package controller

import (
	"promptito-be/internal/dto"
	"promptito-be/internal/pkg/serverutils"
	"promptito-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGalleryController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Facets(ctx *fiber.Ctx) error
	Detail(ctx *fiber.Ctx) error
	Favorite(ctx *fiber.Ctx) error
	Unfavorite(ctx *fiber.Ctx) error
	Favorites(ctx *fiber.Ctx) error
	Report(ctx *fiber.Ctx) error
	Fork(ctx *fiber.Ctx) error
	Mine(ctx *fiber.Ctx) error
	UpdateVisibility(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type galleryController struct {
	galleryService service.IGalleryService
	locales        Locales
}

func NewGalleryController(galleryService service.IGalleryService, locales Locales) IGalleryController {
	return &galleryController{
		galleryService: galleryService,
		locales:        locales,
	}
}

func (c *galleryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/gallery/v1")
	h.Use(serverutils.OptionalJwt)
	h.Get("", c.List)
	h.Get("facets", c.Facets)
	h.Get("p/:slug", c.Detail)
	h.Post(":id/report", c.Report)
	h.Post(":id/fork", c.Fork)

	h.Get("favorites", serverutils.JwtMiddleware, c.Favorites)
	h.Get("mine", serverutils.JwtMiddleware, c.Mine)
	h.Put(":id/favorite", serverutils.JwtMiddleware, c.Favorite)
	h.Delete(":id/favorite", serverutils.JwtMiddleware, c.Unfavorite)
	h.Patch(":id/visibility", serverutils.JwtMiddleware, c.UpdateVisibility)
	h.Delete(":id", serverutils.JwtMiddleware, c.Delete)
}

func (c *galleryController) List(ctx *fiber.Ctx) error {
	var q dto.GalleryQuery
	if err := parseQuery(ctx, &q); err != nil {
		return err
	}
	res, err := c.galleryService.List(ctx.Context(), actorFrom(ctx), &q)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list gallery", res))
}

func (c *galleryController) Facets(ctx *fiber.Ctx) error {
	res, err := c.galleryService.Facets(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list facets", res))
}

func (c *galleryController) Detail(ctx *fiber.Ctx) error {
	res, err := c.galleryService.Detail(ctx.Context(), actorFrom(ctx), c.locales.For(ctx), ctx.Params("slug"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show prompt", res))
}

func (c *galleryController) setFavorite(ctx *fiber.Ctx, favorite bool) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.galleryService.SetFavorite(ctx.Context(), actorFrom(ctx), id, favorite)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update favorite", res))
}

func (c *galleryController) Favorite(ctx *fiber.Ctx) error {
	return c.setFavorite(ctx, true)
}

func (c *galleryController) Unfavorite(ctx *fiber.Ctx) error {
	return c.setFavorite(ctx, false)
}

func (c *galleryController) Favorites(ctx *fiber.Ctx) error {
	res, err := c.galleryService.Favorites(ctx.Context(), actorFrom(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list favorites", res))
}

func (c *galleryController) Report(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.ReportRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.galleryService.Report(ctx.Context(), actorFrom(ctx), id, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success report prompt", res))
}

func (c *galleryController) Fork(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.galleryService.Fork(ctx.Context(), actorFrom(ctx), c.locales.For(ctx), id)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success fork prompt", res))
}

func (c *galleryController) Mine(ctx *fiber.Ctx) error {
	res, err := c.galleryService.Mine(ctx.Context(), actorFrom(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list prompts", res))
}

func (c *galleryController) UpdateVisibility(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateVisibilityRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.galleryService.UpdateVisibility(ctx.Context(), actorFrom(ctx), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update visibility", res))
}

func (c *galleryController) Delete(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}
	if err := c.galleryService.Delete(ctx.Context(), actorFrom(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete prompt", nil))
}
