package service

import (
	"context"
	"errors"

	"parley/internal/models"
	"parley/internal/observability"
	"parley/internal/repository"
)

// RequestService mediates the request/accept/decline/block handshake that
// gates conversation creation.
type RequestService struct {
	requestRepo repository.RequestRepository
	blockRepo   repository.BlockRepository
	convRepo    repository.ConversationRepository
	userRepo    repository.UserRepository
}

// NewRequestService returns a new RequestService.
func NewRequestService(
	requestRepo repository.RequestRepository,
	blockRepo repository.BlockRepository,
	convRepo repository.ConversationRepository,
	userRepo repository.UserRepository,
) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		blockRepo:   blockRepo,
		convRepo:    convRepo,
		userRepo:    userRepo,
	}
}

// CreateRequest creates a pending connection request from sender to receiver,
// or reopens the sender's previously declined request to the same receiver.
func (s *RequestService) CreateRequest(ctx context.Context, senderID, receiverID uint) (*models.ConnectionRequest, error) {
	if senderID == receiverID {
		return nil, models.NewValidationError("Cannot send a message request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	// One Forbidden message for both directions: the error must not confirm
	// to the sender whether the receiver has blocked them.
	blockedByReceiver, err := s.blockRepo.Exists(ctx, receiverID, senderID)
	if err != nil {
		return nil, err
	}
	blockedSender, err := s.blockRepo.Exists(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if blockedByReceiver || blockedSender {
		return nil, models.NewForbiddenError("You cannot send a request to this user")
	}

	existing, err := s.requestRepo.GetBySenderReceiver(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.reuseExisting(ctx, existing)
	}

	req := &models.ConnectionRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.RequestStatusPending,
	}
	created, err := s.requestRepo.Insert(ctx, req)
	if err != nil {
		return nil, err
	}
	if !created {
		// Lost an insert race against a concurrent identical request; the
		// pair's row exists now, so resolve against it.
		existing, err = s.requestRepo.GetBySenderReceiver(ctx, senderID, receiverID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, models.NewInternalError(errors.New("request row missing after insert conflict"))
		}
		return s.reuseExisting(ctx, existing)
	}

	return s.requestRepo.GetByID(ctx, req.ID)
}

// reuseExisting applies the re-send rules to the pair's existing request row.
func (s *RequestService) reuseExisting(ctx context.Context, existing *models.ConnectionRequest) (*models.ConnectionRequest, error) {
	switch existing.Status {
	case models.RequestStatusPending:
		return nil, models.NewConflictError("A request to this user is already pending")
	case models.RequestStatusAccepted:
		return nil, models.NewConflictError("You already have a conversation with this user")
	case models.RequestStatusDeclined:
		reopened, err := s.requestRepo.Reopen(ctx, existing.ID)
		if err != nil {
			return nil, err
		}
		if !reopened {
			// Status changed under us between read and update.
			return nil, models.NewConflictError("A request to this user is already pending")
		}
		return s.requestRepo.GetByID(ctx, existing.ID)
	}
	return nil, models.NewInternalError(errors.New("unexpected request status " + string(existing.Status)))
}

// Respond applies the receiver's accept, decline, or block action to a
// pending request. Accepting returns the pair's conversation.
func (s *RequestService) Respond(ctx context.Context, requestID, responderID uint, action models.RequestAction) (*models.ConnectionRequest, *models.Conversation, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}

	if req.ReceiverID != responderID {
		return nil, nil, models.NewForbiddenError("You can only respond to requests sent to you")
	}
	if req.Status != models.RequestStatusPending {
		return nil, nil, models.NewConflictError("Request has already been responded to")
	}

	observability.RequestsRespondedTotal.WithLabelValues(string(action)).Inc()

	switch action {
	case models.RequestActionAccept:
		return s.accept(ctx, req)
	case models.RequestActionDecline:
		return s.decline(ctx, req)
	case models.RequestActionBlock:
		// Block always implies decline.
		if err := s.blockRepo.Create(ctx, responderID, req.SenderID); err != nil {
			return nil, nil, err
		}
		return s.decline(ctx, req)
	}
	return nil, nil, models.NewValidationError("Invalid action")
}

func (s *RequestService) accept(ctx context.Context, req *models.ConnectionRequest) (*models.ConnectionRequest, *models.Conversation, error) {
	ok, err := s.requestRepo.MarkResponded(ctx, req.ID, models.RequestStatusAccepted)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, models.NewConflictError("Request has already been responded to")
	}

	// A mutual pending pair is tolerated; the first acceptance wins and
	// closes the reverse request so no dangling pending row survives.
	reverse, err := s.requestRepo.GetBySenderReceiver(ctx, req.ReceiverID, req.SenderID)
	if err != nil {
		return nil, nil, err
	}
	if reverse != nil && reverse.Status == models.RequestStatusPending {
		if _, err := s.requestRepo.MarkResponded(ctx, reverse.ID, models.RequestStatusAccepted); err != nil {
			return nil, nil, err
		}
	}

	conv, err := s.convRepo.GetOrCreate(ctx, req.SenderID, req.ReceiverID)
	if err != nil {
		return nil, nil, err
	}

	updated, err := s.requestRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, nil, err
	}
	return updated, conv, nil
}

func (s *RequestService) decline(ctx context.Context, req *models.ConnectionRequest) (*models.ConnectionRequest, *models.Conversation, error) {
	ok, err := s.requestRepo.MarkResponded(ctx, req.ID, models.RequestStatusDeclined)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, models.NewConflictError("Request has already been responded to")
	}

	updated, err := s.requestRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, nil, err
	}
	return updated, nil, nil
}

// PendingReceived returns pending requests addressed to the user.
func (s *RequestService) PendingReceived(ctx context.Context, userID uint) ([]models.ConnectionRequest, error) {
	return s.requestRepo.ListPendingReceived(ctx, userID)
}

// PendingSent returns pending requests the user has sent.
func (s *RequestService) PendingSent(ctx context.Context, userID uint) ([]models.ConnectionRequest, error) {
	return s.requestRepo.ListPendingSent(ctx, userID)
}
