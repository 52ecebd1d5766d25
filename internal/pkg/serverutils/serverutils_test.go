package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"promptito-be/internal/pkg/apperror"
	"promptito-be/internal/pkg/logger"
	"promptito-be/pkg/builder/compose"
	"promptito-be/pkg/builder/segment"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func newApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNop()))
	app.Get("/", handler)
	return app
}

func TestErrorHandlerMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"not found", fmt.Errorf("prompt: %w", apperror.ErrNotFound), http.StatusNotFound, "resource not found"},
		{"fiber error", fiber.NewError(http.StatusTeapot, "short and stout"), http.StatusTeapot, "short and stout"},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, "Internal server error"},
		{"disabled", apperror.ErrFeatureDisabled, http.StatusServiceUnavailable, "feature is disabled on this server"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(func(c *fiber.Ctx) error { return tt.err })
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.code, resp.StatusCode)
			body := decode(t, resp)
			assert.Equal(t, tt.message, body["message"])
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestErrorHandlerBlocked(t *testing.T) {
	app := newApp(func(c *fiber.Ctx) error {
		return &compose.BlockedError{Missing: []segment.ID{segment.Goal, segment.OutputFormat}}
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decode(t, resp)
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"goal", "output-format"}, errs["missing_segments"])
}

func TestValidateRequest(t *testing.T) {
	type req struct {
		Reason string `json:"reason" validate:"required,min=3"`
		Sort   string `json:"sort" validate:"omitempty,oneof=recent views favorites"`
	}
	require.NoError(t, ValidateRequest(req{Reason: "spam"}))

	err := ValidateRequest(req{Sort: "random"})
	var ve *RequestValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "is required", ve.Fields["reason"])
	assert.Equal(t, "must be one of: recent views favorites", ve.Fields["sort"])

	app := newApp(func(c *fiber.Ctx) error { return ValidateRequest(req{}) })
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestJwtMiddlewares(t *testing.T) {
	SetJwtSecret(testSecret)
	t.Cleanup(func() { SetJwtSecret("") })

	app := fiber.New()
	app.Get("/me", JwtMiddleware, func(c *fiber.Ctx) error { return c.SendString(CurrentUser(c)) })
	app.Get("/admin", JwtMiddleware, AdminOnly, func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/maybe", OptionalJwt, func(c *fiber.Ctx) error { return c.SendString("user=" + CurrentUser(c)) })

	exp := time.Now().Add(time.Hour).Unix()
	user := sign(t, jwt.MapClaims{"sub": "u-1", "exp": exp})
	admin := sign(t, jwt.MapClaims{"user_id": "u-2", "role": "admin", "exp": exp})

	call := func(path, token string) (int, string) {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		raw, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(raw)
	}

	code, body := call("/me", user)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "u-1", body)

	code, _ = call("/me", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = call("/me", "garbage")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = call("/admin", user)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = call("/admin", admin)
	assert.Equal(t, http.StatusOK, code)

	_, body = call("/maybe", "")
	assert.Equal(t, "user=", body)
	_, body = call("/maybe", "garbage")
	assert.Equal(t, "user=", body)
	_, body = call("/maybe", admin)
	assert.Equal(t, "user=u-2", body)
}
