package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const userIDKey = "userID"

// requireAuth rejects requests without a valid bearer token.
func (r *routes) requireAuth(c *fiber.Ctx) error {
	userID, err := r.authenticate(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Message: err.Error()})
	}

	c.Locals(userIDKey, userID)
	return c.Next()
}

// optionalAuth authenticates when a token is present but lets anonymous
// requests through. An invalid token is still rejected.
func (r *routes) optionalAuth(c *fiber.Ctx) error {
	if c.Get(fiber.HeaderAuthorization) == "" {
		return c.Next()
	}
	return r.requireAuth(c)
}

func (r *routes) authenticate(c *fiber.Ctx) (int, error) {
	header := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
	}

	claims, err := r.tokens.Verify(token)
	if err != nil {
		return 0, err
	}

	return claims.UserID()
}

// currentUserID returns the authenticated user id, or false for anonymous
// requests on optionalAuth routes.
func currentUserID(c *fiber.Ctx) (int, bool) {
	userID, ok := c.Locals(userIDKey).(int)
	return userID, ok
}
