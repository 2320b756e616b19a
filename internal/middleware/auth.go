// Package middleware provides authentication and authorization middleware for the application.
package middleware

import (
	"context"
	"strings"

	"warbler/internal/models"
	"warbler/internal/session"

	"github.com/gofiber/fiber/v2"
)

var sessions *session.Store

// InitAuth wires the session store into the authentication middleware.
func InitAuth(s *session.Store) {
	sessions = s
}

// TokenFromRequest extracts the session token from the session cookie or,
// failing that, from an Authorization bearer header.
func TokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies(session.CookieName); token != "" {
		return token
	}

	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// SessionRequired enforces an authenticated session for protected routes.
// Requests without a resolvable session are rejected before any mutation runs,
// with the uniform "Access unauthorized." response.
func SessionRequired(c *fiber.Ctx) error {
	token := TokenFromRequest(c)
	if token == "" {
		AuthFailures.WithLabelValues("missing_token").Inc()
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewAccessUnauthorizedError())
	}

	userID, ok, err := sessions.Resolve(c.Context(), token)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	if !ok {
		AuthFailures.WithLabelValues("invalid_token").Inc()
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewAccessUnauthorizedError())
	}

	// Store user ID in context
	c.Locals("userID", userID)
	// Sync to UserContext for logging and downstream services
	ctx := context.WithValue(c.UserContext(), UserIDKey, userID)
	c.SetUserContext(ctx)

	return c.Next()
}
