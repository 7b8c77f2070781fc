package server

import (
	"strings"

	"parley/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateRequestBody is the request body for POST /api/requests. The receiver
// may be referenced by ID or by username.
type CreateRequestBody struct {
	ReceiverID       uint   `json:"receiver_id"`
	ReceiverUsername string `json:"receiver_username"`
}

// RespondBody is the request body for POST /api/requests/:requestId/respond
type RespondBody struct {
	Action string `json:"action"`
}

// CreateRequest handles POST /api/requests
func (s *Server) CreateRequest(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var body CreateRequestBody
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	receiverID := body.ReceiverID
	if receiverID == 0 {
		username := strings.TrimSpace(body.ReceiverUsername)
		if username == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("receiver_id or receiver_username is required"))
		}
		receiver, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			return models.RespondWithError(c, models.HTTPStatus(err), err)
		}
		receiverID = receiver.ID
	}

	request, err := s.requestService.CreateRequest(ctx, userID, receiverID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// GetPendingRequests handles GET /api/requests
func (s *Server) GetPendingRequests(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	requests, err := s.requestService.PendingReceived(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(requests)
}

// GetSentRequests handles GET /api/requests/sent
func (s *Server) GetSentRequests(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	requests, err := s.requestService.PendingSent(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, models.HTTPStatus(err), err)
	}

	return c.JSON(requests)
}

// RespondToRequest handles POST /api/requests/:requestId/respond
func (s *Server) RespondToRequest(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	var body RespondBody
	if parseErr := c.BodyParser(&body); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	action, ok := models.ParseRequestAction(body.Action)
	if !ok {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Action must be accept, decline, or block"))
	}

	request, conversation, respondErr := s.requestService.Respond(ctx, requestID, userID, action)
	if respondErr != nil {
		return models.RespondWithError(c, models.HTTPStatus(respondErr), respondErr)
	}

	resp := fiber.Map{"request": request}
	if conversation != nil {
		resp["conversation_id"] = conversation.ID
	}
	return c.JSON(resp)
}
