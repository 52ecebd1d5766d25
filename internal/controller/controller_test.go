package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"promptito-be/internal/config"
	"promptito-be/internal/pkg/logger"
	"promptito-be/internal/pkg/mailer"
	"promptito-be/internal/pkg/serverutils"
	"promptito-be/internal/repository/memory"
	"promptito-be/internal/service"
	"promptito-be/pkg/builder/catalog"
	"promptito-be/pkg/builder/segment"
	"promptito-be/pkg/builder/state"
	"promptito-be/pkg/i18n"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "controller-secret"

// newLocalApp mounts the public controllers over services that run without
// a database.
func newLocalApp(t *testing.T) *fiber.App {
	t.Helper()
	serverutils.SetJwtSecret(testSecret)

	log := logger.NewNop()
	bundle := i18n.MustDefault()
	locales := Locales{Bundle: bundle, Default: i18n.DefaultLocale}
	store := catalog.MustDefault()
	drafts := memory.NewLocalDraftRepository(time.Hour)
	features := config.FeatureFlags{Publishing: true, Moderation: true}

	builder := service.NewPromptBuilderService(nil, drafts, store, nil, nil, features, log)
	gallery := service.NewGalleryService(nil, drafts, nil, nil, nil, mailer.NewNoopEmailService(log), features, "", "", log)
	moderation := service.NewModerationService(nil, nil, nil, mailer.NewNoopEmailService(log), log, features.Moderation, log)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(log))
	api := app.Group("/api")
	NewBuilderController(builder, locales).RegisterRoutes(api)
	NewCatalogController(service.NewCatalogService(store), locales).RegisterRoutes(api)
	NewGalleryController(gallery, locales).RegisterRoutes(api)
	NewModerationController(moderation, locales).RegisterRoutes(api)
	return app
}

func token(t *testing.T, role string) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": uuid.NewString(), "exp": time.Now().Add(time.Hour).Unix()}
	if role != "" {
		claims["role"] = role
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

type call struct {
	method, path, body string
	headers            map[string]string
}

func do(t *testing.T, app *fiber.App, c call) (*http.Response, map[string]any) {
	t.Helper()
	var body io.Reader
	if c.body != "" {
		body = strings.NewReader(c.body)
	}
	req := httptest.NewRequest(c.method, c.path, body)
	if c.body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func bearer(tok string) map[string]string {
	return map[string]string{fiber.HeaderAuthorization: "Bearer " + tok}
}

func TestFreshState(t *testing.T) {
	app := newLocalApp(t)

	resp, body := do(t, app, call{method: http.MethodGet, path: "/api/builder/v1/fresh"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	st := data["state"].(map[string]any)
	assert.Equal(t, float64(2), st["version"])
	assert.Equal(t, "RTF", st["structure"])
	assert.Equal(t, false, data["ready"])
}

func TestReduceValidatesActions(t *testing.T) {
	app := newLocalApp(t)

	resp, _ := do(t, app, call{method: http.MethodPost, path: "/api/builder/v1/reduce", body: `{"actions":[]}`})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := do(t, app, call{
		method: http.MethodPost, path: "/api/builder/v1/reduce",
		body: `{"actions":[{"kind":"setTitle","title":"Weekly digest"}]}`,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st := body["data"].(map[string]any)["state"].(map[string]any)
	assert.Equal(t, "Weekly digest", st["title"])
}

func TestLocalDraftNeedsClientHeader(t *testing.T) {
	app := newLocalApp(t)

	resp, _ := do(t, app, call{method: http.MethodPut, path: "/api/builder/v1/draft", body: `{"state":null}`})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	headers := map[string]string{HeaderClientID: "browser-1"}
	resp, body := do(t, app, call{method: http.MethodPut, path: "/api/builder/v1/draft", body: `{"state":null}`, headers: headers})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, service.StoredLocal, body["data"].(map[string]any)["stored"])

	resp, body = do(t, app, call{method: http.MethodGet, path: "/api/builder/v1/draft", headers: headers})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, body["data"].(map[string]any)["updatedAt"])
}

func readyBody(t *testing.T, title string) string {
	t.Helper()
	tr := i18n.MustDefault().For(i18n.DefaultLocale)
	st := state.New(tr)
	st.Title = title
	st.Structure = "TAO"
	st.Columns = state.UpsertManualItem(st.Columns, segment.Goal, "Review the diff", tr)
	st.Columns = state.UpsertManualItem(st.Columns, segment.OutputFormat, "A checklist", tr)
	raw, err := json.Marshal(map[string]any{"state": st})
	require.NoError(t, err)
	return string(raw)
}

func TestExportSendsArchive(t *testing.T) {
	app := newLocalApp(t)

	resp, _ := do(t, app, call{method: http.MethodPost, path: "/api/builder/v1/export", body: readyBody(t, "Code Review")})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/zip", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "code-review.zip")
}

func TestExportBlockedWhenSegmentsAreEmpty(t *testing.T) {
	app := newLocalApp(t)

	resp, body := do(t, app, call{method: http.MethodPost, path: "/api/builder/v1/export", body: `{"state":{"title":"Code Review"}}`})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestPublishNeedsTokenAndDatabase(t *testing.T) {
	app := newLocalApp(t)
	publish := call{method: http.MethodPost, path: "/api/builder/v1/publish", body: `{"state":{}}`}

	resp, _ := do(t, app, publish)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	publish.headers = bearer(token(t, ""))
	resp, _ = do(t, app, publish)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestGalleryWithoutDatabase(t *testing.T) {
	app := newLocalApp(t)

	resp, _ := do(t, app, call{method: http.MethodGet, path: "/api/gallery/v1"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, _ = do(t, app, call{method: http.MethodGet, path: "/api/gallery/v1/favorites"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestModerationIsAdminOnly(t *testing.T) {
	app := newLocalApp(t)
	reports := call{method: http.MethodGet, path: "/api/moderation/v1/reports"}

	resp, _ := do(t, app, reports)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	reports.headers = bearer(token(t, ""))
	resp, _ = do(t, app, reports)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	reports.headers = bearer(token(t, serverutils.RoleAdmin))
	resp, _ = do(t, app, reports)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestCatalogNiches(t *testing.T) {
	app := newLocalApp(t)

	resp, body := do(t, app, call{method: http.MethodGet, path: "/api/catalog/v1/niches"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["data"])
}
