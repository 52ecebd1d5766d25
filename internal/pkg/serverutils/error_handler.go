package serverutils

import (
	"errors"
	"net/http"

	"promptito-be/internal/pkg/apperror"
	"promptito-be/internal/pkg/logger"
	"promptito-be/pkg/schema"

	"github.com/gofiber/fiber/v2"
)

type blockedErrors struct {
	MissingSegments []string `json:"missing_segments"`
}

// ErrorHandlerMiddleware turns errors returned by later handlers into JSON
// error envelopes. Unexpected errors are logged and answered as 500 without
// details.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		code, body := errorBody(err)
		if code >= http.StatusInternalServerError && log != nil {
			log.Error("HTTP", "unhandled error", map[string]interface{}{
				"error":  err.Error(),
				"method": ctx.Method(),
				"path":   ctx.Path(),
			})
		}
		return ctx.Status(code).JSON(body)
	}
}

func errorBody(err error) (int, Response[any]) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, ErrorResponse(fe.Code, fe.Message)
	}

	var ve *RequestValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ErrorResponseWithErrors(http.StatusBadRequest, "Validation failed", ve.Fields)
	}

	if blocked, ok := apperror.Blocked(err); ok {
		missing := make([]string, len(blocked.Missing))
		for i, id := range blocked.Missing {
			missing[i] = string(id)
		}
		return http.StatusUnprocessableEntity, ErrorResponseWithErrors(http.StatusUnprocessableEntity, blocked.Error(), blockedErrors{MissingSegments: missing})
	}

	if se, ok := schema.AsValidationError(err); ok {
		return http.StatusBadRequest, ErrorResponseWithErrors(http.StatusBadRequest, se.Prefix, se.Issues)
	}

	code := apperror.Code(err)
	if code >= http.StatusInternalServerError && code != http.StatusServiceUnavailable {
		return code, ErrorResponse(code, "Internal server error")
	}
	return code, ErrorResponse(code, err.Error())
}
