// Package service provides application business logic for the messaging
// handshake: blocks, relationship resolution, connection requests, and the
// guarded message channel.
package service

import (
	"context"

	"parley/internal/models"
	"parley/internal/repository"
)

// BlockService provides block and unblock business logic. It is the only
// writer of block edges; every other component consults it read-only.
type BlockService struct {
	blockRepo repository.BlockRepository
	userRepo  repository.UserRepository
}

// NewBlockService returns a new BlockService.
func NewBlockService(blockRepo repository.BlockRepository, userRepo repository.UserRepository) *BlockService {
	return &BlockService{
		blockRepo: blockRepo,
		userRepo:  userRepo,
	}
}

// Block records that blocker blocks target. Idempotent: blocking an already
// blocked user succeeds without creating a duplicate edge.
func (s *BlockService) Block(ctx context.Context, blockerID, targetID uint) error {
	if blockerID == targetID {
		return models.NewValidationError("Cannot block yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	return s.blockRepo.Create(ctx, blockerID, targetID)
}

// Unblock removes the block edge if present. Removing an absent edge is a no-op.
func (s *BlockService) Unblock(ctx context.Context, blockerID, targetID uint) error {
	return s.blockRepo.Delete(ctx, blockerID, targetID)
}

// IsBlocked reports whether blocker currently blocks target.
func (s *BlockService) IsBlocked(ctx context.Context, blockerID, targetID uint) (bool, error) {
	return s.blockRepo.Exists(ctx, blockerID, targetID)
}

// ListBlocked returns the users the given user has blocked.
func (s *BlockService) ListBlocked(ctx context.Context, userID uint) ([]models.UserBlock, error) {
	return s.blockRepo.ListByBlocker(ctx, userID)
}
