package repository

import (
	"context"
	"errors"
	"time"

	"parley/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConversationRepository defines the interface for conversation and
// read-state data operations.
type ConversationRepository interface {
	// GetOrCreate returns the single conversation for the unordered pair,
	// creating it if needed. Safe under concurrent callers: a lost insert
	// race resolves to the winner's row.
	GetOrCreate(ctx context.Context, userX, userY uint) (*models.Conversation, error)
	GetByID(ctx context.Context, id uint) (*models.Conversation, error)
	// GetByPair returns the conversation for the pair or (nil, nil) when absent.
	GetByPair(ctx context.Context, userX, userY uint) (*models.Conversation, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Conversation, error)
	UpsertLastRead(ctx context.Context, convID, userID uint, at time.Time) error
	// GetLastRead returns nil when the user has never opened the conversation.
	GetLastRead(ctx context.Context, convID, userID uint) (*time.Time, error)
}

// conversationRepository implements ConversationRepository
type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) GetOrCreate(ctx context.Context, userX, userY uint) (*models.Conversation, error) {
	userA, userB := models.CanonicalPair(userX, userY)

	conv := models.Conversation{UserAID: userA, UserBID: userB}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_a_id"}, {Name: "user_b_id"}},
			DoNothing: true,
		}).
		Create(&conv).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	// Re-fetch so a lost race still returns the winning row with preloads.
	var existing models.Conversation
	if err := r.db.WithContext(ctx).
		Where("user_a_id = ? AND user_b_id = ?", userA, userB).
		Preload("UserA").Preload("UserB").
		First(&existing).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &existing, nil
}

func (r *conversationRepository) GetByID(ctx context.Context, id uint) (*models.Conversation, error) {
	var conv models.Conversation
	if err := r.db.WithContext(ctx).
		Preload("UserA").Preload("UserB").
		First(&conv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Conversation", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &conv, nil
}

func (r *conversationRepository) GetByPair(ctx context.Context, userX, userY uint) (*models.Conversation, error) {
	userA, userB := models.CanonicalPair(userX, userY)

	var conv models.Conversation
	if err := r.db.WithContext(ctx).
		Where("user_a_id = ? AND user_b_id = ?", userA, userB).
		First(&conv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &conv, nil
}

func (r *conversationRepository) ListForUser(ctx context.Context, userID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	if err := r.db.WithContext(ctx).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Preload("UserA").Preload("UserB").
		Order("updated_at DESC").
		Find(&conversations).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return conversations, nil
}

func (r *conversationRepository) UpsertLastRead(ctx context.Context, convID, userID uint, at time.Time) error {
	state := models.ReadState{
		UserID:         userID,
		ConversationID: convID,
		LastReadAt:     at,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "conversation_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_read_at"}),
		}).
		Create(&state).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *conversationRepository) GetLastRead(ctx context.Context, convID, userID uint) (*time.Time, error) {
	var state models.ReadState
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND user_id = ?", convID, userID).
		First(&state).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &state.LastReadAt, nil
}
