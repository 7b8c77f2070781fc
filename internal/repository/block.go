package repository

import (
	"context"

	"parley/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlockRepository defines the interface for block edge data operations.
// Block edges are written only through this interface so the uniqueness
// invariant stays centrally enforced.
type BlockRepository interface {
	Create(ctx context.Context, blockerID, blockedID uint) error
	Delete(ctx context.Context, blockerID, blockedID uint) error
	Exists(ctx context.Context, blockerID, blockedID uint) (bool, error)
	ListByBlocker(ctx context.Context, blockerID uint) ([]models.UserBlock, error)
}

// blockRepository implements BlockRepository
type blockRepository struct {
	db *gorm.DB
}

// NewBlockRepository creates a new block repository
func NewBlockRepository(db *gorm.DB) BlockRepository {
	return &blockRepository{db: db}
}

func (r *blockRepository) Create(ctx context.Context, blockerID, blockedID uint) error {
	block := models.UserBlock{
		BlockerID: blockerID,
		BlockedID: blockedID,
	}
	// OnConflict makes a repeated block an already-satisfied no-op instead of
	// a duplicate key error.
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&block).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blockRepository) Delete(ctx context.Context, blockerID, blockedID uint) error {
	if err := r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.UserBlock{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blockRepository) Exists(ctx context.Context, blockerID, blockedID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserBlock{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *blockRepository) ListByBlocker(ctx context.Context, blockerID uint) ([]models.UserBlock, error) {
	var blocks []models.UserBlock
	if err := r.db.WithContext(ctx).
		Where("blocker_id = ?", blockerID).
		Preload("Blocked").
		Order("created_at DESC").
		Find(&blocks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return blocks, nil
}
