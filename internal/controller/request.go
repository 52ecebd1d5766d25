package controller

import (
	"net/http"
	"strings"

	"promptito-be/internal/pkg/apperror"
	"promptito-be/internal/pkg/serverutils"
	"promptito-be/internal/service"
	"promptito-be/pkg/bundle"
	"promptito-be/pkg/i18n"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderClientID identifies anonymous sessions for the local draft store.
const HeaderClientID = "X-Client-Id"

// Locales picks the translator of a request from its Accept-Language header.
type Locales struct {
	Bundle  *i18n.Bundle
	Default string
}

func (l Locales) For(ctx *fiber.Ctx) i18n.Translator {
	header := strings.TrimSpace(ctx.Get(fiber.HeaderAcceptLanguage))
	if header == "" {
		return l.Bundle.For(l.Default)
	}
	return l.Bundle.For(l.Bundle.Match(header))
}

// actorFrom reads the caller set by the JWT middlewares. A token subject
// that is not a UUID is treated as anonymous.
func actorFrom(ctx *fiber.Ctx) service.Actor {
	actor := service.Actor{ClientID: strings.TrimSpace(ctx.Get(HeaderClientID))}
	if id, err := uuid.Parse(serverutils.CurrentUser(ctx)); err == nil {
		actor.UserID = id
		actor.IsAdmin = serverutils.IsAdmin(ctx)
	}
	return actor
}

func paramUUID(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.BadRequest("invalid " + name)
	}
	return id, nil
}

// parseBody decodes and validates the JSON body into req.
func parseBody(ctx *fiber.Ctx, req any) error {
	if err := ctx.BodyParser(req); err != nil {
		return apperror.WithCode(err, http.StatusBadRequest)
	}
	return serverutils.ValidateRequest(req)
}

func parseQuery(ctx *fiber.Ctx, req any) error {
	if err := ctx.QueryParser(req); err != nil {
		return apperror.WithCode(err, http.StatusBadRequest)
	}
	return serverutils.ValidateRequest(req)
}

func sendArchive(ctx *fiber.Ctx, archive *bundle.Archive) error {
	ctx.Set(fiber.HeaderContentType, "application/zip")
	ctx.Attachment(archive.Filename)
	return ctx.Send(archive.Data)
}
