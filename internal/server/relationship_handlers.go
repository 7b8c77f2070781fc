package server

import (
	"github.com/gofiber/fiber/v2"

	"parley/internal/models"
)

// GetRelationshipStatus handles GET /api/relationships/status/:userId
func (s *Server) GetRelationshipStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	targetUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	rel, resolveErr := s.relationshipService.Resolve(ctx, userID, targetUserID)
	if resolveErr != nil {
		return models.RespondWithError(c, models.HTTPStatus(resolveErr), resolveErr)
	}

	return c.JSON(rel)
}
