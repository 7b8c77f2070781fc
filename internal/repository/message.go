package repository

import (
	"context"
	"errors"
	"time"

	"parley/internal/models"
	"parley/internal/observability"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for message data operations.
// Messages are append-only; there is no update or delete.
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	// ListBefore returns up to limit messages older than the cursor, in
	// chronological (oldest -> newest) order.
	ListBefore(ctx context.Context, convID uint, before time.Time, limit int) ([]*models.Message, error)
	GetLatest(ctx context.Context, convID uint) (*models.Message, error)
	// CountUnread counts messages from the other participant newer than
	// lastRead. A nil lastRead counts all such messages.
	CountUnread(ctx context.Context, convID, userID uint, lastRead *time.Time) (int64, error)
}

// messageRepository implements MessageRepository
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	defer observability.TrackQuery("create", "messages")()
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) ListBefore(ctx context.Context, convID uint, before time.Time, limit int) ([]*models.Message, error) {
	defer observability.TrackQuery("list_before", "messages")()
	var messages []*models.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND created_at < ?", convID, before).
		Preload("Sender").
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	// Fetched DESC to get the latest page before the cursor; client expects ASC.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

func (r *messageRepository) GetLatest(ctx context.Context, convID uint) (*models.Message, error) {
	defer observability.TrackQuery("get_latest", "messages")()
	var msg models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", convID).
		Preload("Sender").
		Order("created_at DESC").
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &msg, nil
}

func (r *messageRepository) CountUnread(ctx context.Context, convID, userID uint, lastRead *time.Time) (int64, error) {
	defer observability.TrackQuery("count_unread", "messages")()
	query := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id != ?", convID, userID)
	if lastRead != nil {
		query = query.Where("created_at > ?", *lastRead)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
