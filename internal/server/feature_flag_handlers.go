package server

import (
	"github.com/Zarsham27/social-networking-web-app/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFeatureFlags returns the evaluated feature flags for the current user.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(s.featureFlags.Snapshot(currentUsername(c)))
}

// FeatureRequired rejects the request with 404 unless the flag is on for the
// current user. Must be placed after AuthRequired.
func (s *Server) FeatureRequired(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !s.featureFlags.Enabled(name, currentUsername(c)) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundMessage("Feature not available"))
		}
		return c.Next()
	}
}
