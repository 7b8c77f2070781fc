package repository

import (
	"context"
	"errors"
	"time"

	"parley/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RequestRepository defines the interface for connection request data
// operations. Status transitions are guarded updates keyed on the current
// status so that concurrent responders cannot act on the same request twice.
type RequestRepository interface {
	// Insert creates the row unless one already exists for the ordered
	// (sender, receiver) pair. It reports whether a row was created; on a
	// conflict the caller fetches the existing row instead of failing.
	Insert(ctx context.Context, req *models.ConnectionRequest) (bool, error)
	GetByID(ctx context.Context, id uint) (*models.ConnectionRequest, error)
	// GetBySenderReceiver returns the directed request or (nil, nil) when absent.
	GetBySenderReceiver(ctx context.Context, senderID, receiverID uint) (*models.ConnectionRequest, error)
	// GetAcceptedBetween returns an accepted request in either direction, or (nil, nil).
	GetAcceptedBetween(ctx context.Context, userID1, userID2 uint) (*models.ConnectionRequest, error)
	// MarkResponded transitions pending -> status and stamps responded_at.
	// Returns false if the request was not pending.
	MarkResponded(ctx context.Context, requestID uint, status models.RequestStatus) (bool, error)
	// Reopen transitions declined -> pending and clears responded_at.
	// Returns false if the request was not declined.
	Reopen(ctx context.Context, requestID uint) (bool, error)
	ListPendingReceived(ctx context.Context, userID uint) ([]models.ConnectionRequest, error)
	ListPendingSent(ctx context.Context, userID uint) ([]models.ConnectionRequest, error)
}

// requestRepository implements RequestRepository
type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new connection request repository
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Insert(ctx context.Context, req *models.ConnectionRequest) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sender_id"}, {Name: "receiver_id"}},
			DoNothing: true,
		}).
		Create(req)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *requestRepository) GetByID(ctx context.Context, id uint) (*models.ConnectionRequest, error) {
	var req models.ConnectionRequest
	if err := r.db.WithContext(ctx).
		Preload("Sender").Preload("Receiver").
		First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

func (r *requestRepository) GetBySenderReceiver(ctx context.Context, senderID, receiverID uint) (*models.ConnectionRequest, error) {
	var req models.ConnectionRequest
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

func (r *requestRepository) GetAcceptedBetween(ctx context.Context, userID1, userID2 uint) (*models.ConnectionRequest, error) {
	var req models.ConnectionRequest
	if err := r.db.WithContext(ctx).
		Where("((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status = ?",
			userID1, userID2, userID2, userID1, models.RequestStatusAccepted).
		First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

func (r *requestRepository) MarkResponded(ctx context.Context, requestID uint, status models.RequestStatus) (bool, error) {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&models.ConnectionRequest{}).
		Where("id = ? AND status = ?", requestID, models.RequestStatusPending).
		Updates(map[string]interface{}{
			"status":       status,
			"responded_at": now,
		})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *requestRepository) Reopen(ctx context.Context, requestID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ConnectionRequest{}).
		Where("id = ? AND status = ?", requestID, models.RequestStatusDeclined).
		Updates(map[string]interface{}{
			"status":       models.RequestStatusPending,
			"responded_at": nil,
		})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *requestRepository) ListPendingReceived(ctx context.Context, userID uint) ([]models.ConnectionRequest, error) {
	var requests []models.ConnectionRequest
	if err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND status = ?", userID, models.RequestStatusPending).
		Preload("Sender").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

func (r *requestRepository) ListPendingSent(ctx context.Context, userID uint) ([]models.ConnectionRequest, error) {
	var requests []models.ConnectionRequest
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? AND status = ?", userID, models.RequestStatusPending).
		Preload("Receiver").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}
