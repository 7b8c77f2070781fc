package server

import (
	"strings"
	"time"

	"parley/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SendMessageBody is the request body for POST /api/conversations/:id/messages
type SendMessageBody struct {
	Content string `json:"content"`
}

// GetConversations handles GET /api/conversations
func (s *Server) GetConversations(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	summaries, err := s.messageService.ListConversations(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(summaries)
}

// GetMessages handles GET /api/conversations/:id/messages
// Pagination is by a "before" RFC3339 timestamp cursor; the page is returned
// oldest to newest.
func (s *Server) GetMessages(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	convID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	before := time.Now().UTC()
	if raw := strings.TrimSpace(c.Query("before")); raw != "" {
		parsed, parseErr := time.Parse(time.RFC3339Nano, raw)
		if parseErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("before must be an RFC3339 timestamp"))
		}
		before = parsed
	}
	limit := parseLimit(c, defaultMessagePageSize)

	messages, listErr := s.messageService.ListMessages(ctx, convID, userID, before, limit)
	if listErr != nil {
		return models.RespondWithError(c, models.HTTPStatus(listErr), listErr)
	}

	return c.JSON(messages)
}

// SendMessage handles POST /api/conversations/:id/messages
func (s *Server) SendMessage(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	convID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var body SendMessageBody
	if parseErr := c.BodyParser(&body); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, sendErr := s.messageService.SendMessage(ctx, convID, userID, body.Content)
	if sendErr != nil {
		return models.RespondWithError(c, models.HTTPStatus(sendErr), sendErr)
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// MarkConversationRead handles POST /api/conversations/:id/read
func (s *Server) MarkConversationRead(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	convID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if markErr := s.messageService.MarkRead(ctx, convID, userID); markErr != nil {
		return models.RespondWithError(c, models.HTTPStatus(markErr), markErr)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
