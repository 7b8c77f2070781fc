package service

import (
	"context"

	"parley/internal/models"
	"parley/internal/repository"
)

// RelationshipService resolves the caller-relative relationship between two
// users. Pure read, no side effects.
type RelationshipService struct {
	blockRepo   repository.BlockRepository
	requestRepo repository.RequestRepository
	convRepo    repository.ConversationRepository
	userRepo    repository.UserRepository
}

// NewRelationshipService returns a new RelationshipService.
func NewRelationshipService(
	blockRepo repository.BlockRepository,
	requestRepo repository.RequestRepository,
	convRepo repository.ConversationRepository,
	userRepo repository.UserRepository,
) *RelationshipService {
	return &RelationshipService{
		blockRepo:   blockRepo,
		requestRepo: requestRepo,
		convRepo:    convRepo,
		userRepo:    userRepo,
	}
}

// Resolve computes the relationship status of target from the viewer's
// perspective. Block state is checked before request state so a block
// immediately neutralizes any visible pending or accepted status.
func (s *RelationshipService) Resolve(ctx context.Context, viewerID, targetID uint) (*models.Relationship, error) {
	if viewerID == targetID {
		return &models.Relationship{Status: models.RelationshipSelf}, nil
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	blockedByThem, err := s.blockRepo.Exists(ctx, targetID, viewerID)
	if err != nil {
		return nil, err
	}
	if blockedByThem {
		return &models.Relationship{Status: models.RelationshipBlockedByThem}, nil
	}

	blockedThem, err := s.blockRepo.Exists(ctx, viewerID, targetID)
	if err != nil {
		return nil, err
	}
	if blockedThem {
		return &models.Relationship{Status: models.RelationshipBlockedThem}, nil
	}

	sent, err := s.requestRepo.GetBySenderReceiver(ctx, viewerID, targetID)
	if err != nil {
		return nil, err
	}
	if sent != nil && sent.Status == models.RequestStatusPending {
		return &models.Relationship{
			Status:    models.RelationshipPendingSent,
			RequestID: sent.ID,
		}, nil
	}

	received, err := s.requestRepo.GetBySenderReceiver(ctx, targetID, viewerID)
	if err != nil {
		return nil, err
	}
	if received != nil && received.Status == models.RequestStatusPending {
		return &models.Relationship{
			Status:    models.RelationshipPendingReceived,
			RequestID: received.ID,
		}, nil
	}

	accepted, err := s.requestRepo.GetAcceptedBetween(ctx, viewerID, targetID)
	if err != nil {
		return nil, err
	}
	if accepted != nil {
		rel := &models.Relationship{Status: models.RelationshipAccepted}
		conv, err := s.convRepo.GetByPair(ctx, viewerID, targetID)
		if err != nil {
			return nil, err
		}
		if conv != nil {
			rel.ConversationID = conv.ID
		}
		return rel, nil
	}

	return &models.Relationship{Status: models.RelationshipNone}, nil
}
