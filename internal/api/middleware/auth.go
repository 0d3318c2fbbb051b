package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AuthConfig holds configuration for the auth middleware
type AuthConfig struct {
	// Token is the expected bearer token. An empty token disables the check.
	Token string
	// SkipPaths bypass the check, e.g. /health
	SkipPaths []string
}

// AuthMiddleware returns a Fiber middleware for Bearer token authentication
func AuthMiddleware(config AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if config.Token == "" {
			return c.Next()
		}
		for _, path := range config.SkipPaths {
			if c.Path() == path {
				return c.Next()
			}
		}

		// Extract Bearer token from Authorization header
		authHeader := c.Get("Authorization")
		var token string
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		}

		if token == "" {
			c.Set("WWW-Authenticate", `Bearer realm="secure-syndicate"`)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing or invalid Bearer token",
			})
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(config.Token)) != 1 {
			c.Set("WWW-Authenticate", `Bearer realm="secure-syndicate"`)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		return c.Next()
	}
}
