package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apihttp "github.com/iemarche/inquiry-service/internal/api/http"
	"github.com/iemarche/inquiry-service/internal/api/http/handlers"
	"github.com/iemarche/inquiry-service/internal/config"
	"github.com/iemarche/inquiry-service/internal/service"
)

// Malformed bodies must come back as a structured validation error, not a
// fiber default 500.
func TestRegisterCustomerRejectsMalformedBody(t *testing.T) {
	cfg := config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 60, BcryptCost: 4}}
	authService := service.NewAuthService(cfg, service.AuthDependencies{})
	handler := handlers.NewAuthHandler(authService)

	app := fiber.New()
	apihttp.RegisterMiddlewares(app, zap.NewNop(), nil, 0)
	app.Post("/auth/customers/register", handler.RegisterCustomer)

	req := httptest.NewRequest("POST", "/auth/customers/register", strings.NewReader(`{"name": `))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	require.Contains(t, body.Error.Details, "body")
}
