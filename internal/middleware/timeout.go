package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestDeadline bounds the request context so store calls give up once
// the deadline passes. Handlers observe it through c.UserContext().
func RequestDeadline(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if timeout <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()

		c.SetUserContext(ctx)
		return c.Next()
	}
}
