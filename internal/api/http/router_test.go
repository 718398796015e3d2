package http

import (
	"bytes"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/painting-service/internal/api/dto"
	"github.com/spec-kit/painting-service/internal/api/http/handlers"
	"github.com/spec-kit/painting-service/internal/auth"
	"github.com/spec-kit/painting-service/internal/config"
	"github.com/spec-kit/painting-service/internal/limiter"
	"github.com/spec-kit/painting-service/internal/observability"
	"github.com/spec-kit/painting-service/internal/repository"
	"github.com/spec-kit/painting-service/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	userRepo := repository.NewMemoryUserRepository()
	tokenMgr := auth.NewTokenManager("test-secret", 60)
	authService := service.NewAuthService(config.AuthConfig{BcryptCost: bcrypt.MinCost}, userRepo, limiter.NewNoop())
	paintingService := service.NewPaintingService(userRepo)

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("painting-service", "test", nil, nil),
		Auth:           handlers.NewAuthHandler(authService, tokenMgr),
		Painting:       handlers.NewPaintingHandler(paintingService),
		AuthMiddleware: auth.NewMiddleware(tokenMgr, userRepo),
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *nethttp.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(nethttp.MethodPost, path, bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeAuth(t *testing.T, resp *nethttp.Response) dto.AuthResponse {
	t.Helper()

	var out dto.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	require.Equal(t, int64(3600), out.ExpiresInSeconds)
	return out
}

func TestEndToEnd_PaintingLifecycle(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	// Signup issues a token right away.
	resp := postJSON(t, app, "/auth/signup", dto.CredentialsRequest{Username: "alice", Password: "secret"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	decodeAuth(t, resp)

	// Login issues a fresh token.
	resp = postJSON(t, app, "/auth/login", dto.CredentialsRequest{Username: "alice", Password: "secret"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	token := decodeAuth(t, resp).Token

	// No painting saved yet.
	req := httptest.NewRequest(nethttp.MethodGet, "/painting", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusNotFound, resp.StatusCode)

	// Save and read back.
	req = httptest.NewRequest(nethttp.MethodPost, "/painting", bytes.NewReader([]byte{1, 2, 3}))
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(nethttp.MethodGet, "/painting", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, body)
}

func TestEndToEnd_SignupConflict(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	resp := postJSON(t, app, "/auth/signup", dto.CredentialsRequest{Username: "alice", Password: "secret"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	// Duplicate signup is rejected regardless of password.
	resp = postJSON(t, app, "/auth/signup", dto.CredentialsRequest{Username: "alice", Password: "other"})
	require.Equal(t, nethttp.StatusConflict, resp.StatusCode)

	// Original credential still works.
	resp = postJSON(t, app, "/auth/login", dto.CredentialsRequest{Username: "alice", Password: "secret"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
}

func TestEndToEnd_InvalidCredentials(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	resp := postJSON(t, app, "/auth/signup", dto.CredentialsRequest{Username: "alice", Password: "secret"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp = postJSON(t, app, "/auth/login", dto.CredentialsRequest{Username: "alice", Password: "wrong"})
	require.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, app, "/auth/login", dto.CredentialsRequest{Username: "nobody", Password: "secret"})
	require.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, app, "/auth/signup", dto.CredentialsRequest{Username: "", Password: "secret"})
	require.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

func TestEndToEnd_Unauthorized(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	resp := postJSON(t, app, "/auth/signup", dto.CredentialsRequest{Username: "alice", Password: "secret"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	token := decodeAuth(t, resp).Token

	cases := map[string]string{
		"missing header":     "",
		"not bearer":         "Basic " + token,
		"tampered token":     "Bearer " + token + "x",
		"garbage token":      "Bearer garbage",
		"wrong secret token": "Bearer " + foreignToken(t),
	}
	for name, header := range cases {
		req := httptest.NewRequest(nethttp.MethodGet, "/painting", nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAuthorization, header)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode, name)
	}
}

func foreignToken(t *testing.T) string {
	t.Helper()
	token, _, err := auth.NewTokenManager("other-secret", 60).GenerateToken("user-1")
	require.NoError(t, err)
	return token
}

func TestEndToEnd_EmptyPaintingBody(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	resp := postJSON(t, app, "/auth/signup", dto.CredentialsRequest{Username: "alice", Password: "secret"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	token := decodeAuth(t, resp).Token

	req := httptest.NewRequest(nethttp.MethodPost, "/painting", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

func TestEndToEnd_HealthLive(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	req := httptest.NewRequest(nethttp.MethodGet, "/health/live", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
}
