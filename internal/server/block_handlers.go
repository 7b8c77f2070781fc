package server

import (
	"parley/internal/models"

	"github.com/gofiber/fiber/v2"
)

// BlockUser handles POST /api/blocks/:userId
func (s *Server) BlockUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	targetUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if blockErr := s.blockService.Block(ctx, userID, targetUserID); blockErr != nil {
		return models.RespondWithError(c, models.HTTPStatus(blockErr), blockErr)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UnblockUser handles DELETE /api/blocks/:userId
func (s *Server) UnblockUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	targetUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if unblockErr := s.blockService.Unblock(ctx, userID, targetUserID); unblockErr != nil {
		return models.RespondWithError(c, models.HTTPStatus(unblockErr), unblockErr)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetBlockedUsers handles GET /api/blocks
func (s *Server) GetBlockedUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	blocks, err := s.blockService.ListBlocked(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(blocks)
}
