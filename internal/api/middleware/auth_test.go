package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(token string) *fiber.App {
	app := fiber.New()
	app.Use(AuthMiddleware(AuthConfig{Token: token, SkipPaths: []string{"/health"}}))
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/api/dashboard", func(c *fiber.Ctx) error { return c.SendString("dashboard") })
	return app
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		token          string
		path           string
		authorization  string
		expectedStatus int
	}{
		{name: "disabled without token", token: "", path: "/api/dashboard", expectedStatus: fiber.StatusOK},
		{name: "missing header", token: "secret", path: "/api/dashboard", expectedStatus: fiber.StatusUnauthorized},
		{name: "wrong scheme", token: "secret", path: "/api/dashboard", authorization: "Basic secret", expectedStatus: fiber.StatusUnauthorized},
		{name: "wrong token", token: "secret", path: "/api/dashboard", authorization: "Bearer nope", expectedStatus: fiber.StatusUnauthorized},
		{name: "valid token", token: "secret", path: "/api/dashboard", authorization: "Bearer secret", expectedStatus: fiber.StatusOK},
		{name: "skipped path", token: "secret", path: "/health", expectedStatus: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(tt.token)
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedStatus == fiber.StatusUnauthorized {
				assert.NotEmpty(t, resp.Header.Get("WWW-Authenticate"))
			}
		})
	}
}
