package service

import (
	"context"
	"time"

	"parley/internal/models"
)

type blockRepoStub struct {
	createFn        func(context.Context, uint, uint) error
	deleteFn        func(context.Context, uint, uint) error
	existsFn        func(context.Context, uint, uint) (bool, error)
	listByBlockerFn func(context.Context, uint) ([]models.UserBlock, error)
}

func (s *blockRepoStub) Create(ctx context.Context, blockerID, blockedID uint) error {
	return s.createFn(ctx, blockerID, blockedID)
}
func (s *blockRepoStub) Delete(ctx context.Context, blockerID, blockedID uint) error {
	return s.deleteFn(ctx, blockerID, blockedID)
}
func (s *blockRepoStub) Exists(ctx context.Context, blockerID, blockedID uint) (bool, error) {
	return s.existsFn(ctx, blockerID, blockedID)
}
func (s *blockRepoStub) ListByBlocker(ctx context.Context, blockerID uint) ([]models.UserBlock, error) {
	return s.listByBlockerFn(ctx, blockerID)
}

func noopBlockRepo() *blockRepoStub {
	return &blockRepoStub{
		createFn:        func(context.Context, uint, uint) error { return nil },
		deleteFn:        func(context.Context, uint, uint) error { return nil },
		existsFn:        func(context.Context, uint, uint) (bool, error) { return false, nil },
		listByBlockerFn: func(context.Context, uint) ([]models.UserBlock, error) { return nil, nil },
	}
}

type requestRepoStub struct {
	insertFn              func(context.Context, *models.ConnectionRequest) (bool, error)
	getByIDFn             func(context.Context, uint) (*models.ConnectionRequest, error)
	getBySenderReceiverFn func(context.Context, uint, uint) (*models.ConnectionRequest, error)
	getAcceptedBetweenFn  func(context.Context, uint, uint) (*models.ConnectionRequest, error)
	markRespondedFn       func(context.Context, uint, models.RequestStatus) (bool, error)
	reopenFn              func(context.Context, uint) (bool, error)
	listPendingReceivedFn func(context.Context, uint) ([]models.ConnectionRequest, error)
	listPendingSentFn     func(context.Context, uint) ([]models.ConnectionRequest, error)
}

func (s *requestRepoStub) Insert(ctx context.Context, req *models.ConnectionRequest) (bool, error) {
	return s.insertFn(ctx, req)
}
func (s *requestRepoStub) GetByID(ctx context.Context, id uint) (*models.ConnectionRequest, error) {
	return s.getByIDFn(ctx, id)
}
func (s *requestRepoStub) GetBySenderReceiver(ctx context.Context, senderID, receiverID uint) (*models.ConnectionRequest, error) {
	return s.getBySenderReceiverFn(ctx, senderID, receiverID)
}
func (s *requestRepoStub) GetAcceptedBetween(ctx context.Context, userID1, userID2 uint) (*models.ConnectionRequest, error) {
	return s.getAcceptedBetweenFn(ctx, userID1, userID2)
}
func (s *requestRepoStub) MarkResponded(ctx context.Context, requestID uint, status models.RequestStatus) (bool, error) {
	return s.markRespondedFn(ctx, requestID, status)
}
func (s *requestRepoStub) Reopen(ctx context.Context, requestID uint) (bool, error) {
	return s.reopenFn(ctx, requestID)
}
func (s *requestRepoStub) ListPendingReceived(ctx context.Context, userID uint) ([]models.ConnectionRequest, error) {
	return s.listPendingReceivedFn(ctx, userID)
}
func (s *requestRepoStub) ListPendingSent(ctx context.Context, userID uint) ([]models.ConnectionRequest, error) {
	return s.listPendingSentFn(ctx, userID)
}

func noopRequestRepo() *requestRepoStub {
	return &requestRepoStub{
		insertFn: func(context.Context, *models.ConnectionRequest) (bool, error) { return true, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.ConnectionRequest, error) {
			return &models.ConnectionRequest{ID: id}, nil
		},
		getBySenderReceiverFn: func(context.Context, uint, uint) (*models.ConnectionRequest, error) { return nil, nil },
		getAcceptedBetweenFn:  func(context.Context, uint, uint) (*models.ConnectionRequest, error) { return nil, nil },
		markRespondedFn:       func(context.Context, uint, models.RequestStatus) (bool, error) { return true, nil },
		reopenFn:              func(context.Context, uint) (bool, error) { return true, nil },
		listPendingReceivedFn: func(context.Context, uint) ([]models.ConnectionRequest, error) { return nil, nil },
		listPendingSentFn:     func(context.Context, uint) ([]models.ConnectionRequest, error) { return nil, nil },
	}
}

type convRepoStub struct {
	getOrCreateFn    func(context.Context, uint, uint) (*models.Conversation, error)
	getByIDFn        func(context.Context, uint) (*models.Conversation, error)
	getByPairFn      func(context.Context, uint, uint) (*models.Conversation, error)
	listForUserFn    func(context.Context, uint) ([]models.Conversation, error)
	upsertLastReadFn func(context.Context, uint, uint, time.Time) error
	getLastReadFn    func(context.Context, uint, uint) (*time.Time, error)
}

func (s *convRepoStub) GetOrCreate(ctx context.Context, userX, userY uint) (*models.Conversation, error) {
	return s.getOrCreateFn(ctx, userX, userY)
}
func (s *convRepoStub) GetByID(ctx context.Context, id uint) (*models.Conversation, error) {
	return s.getByIDFn(ctx, id)
}
func (s *convRepoStub) GetByPair(ctx context.Context, userX, userY uint) (*models.Conversation, error) {
	return s.getByPairFn(ctx, userX, userY)
}
func (s *convRepoStub) ListForUser(ctx context.Context, userID uint) ([]models.Conversation, error) {
	return s.listForUserFn(ctx, userID)
}
func (s *convRepoStub) UpsertLastRead(ctx context.Context, convID, userID uint, at time.Time) error {
	return s.upsertLastReadFn(ctx, convID, userID, at)
}
func (s *convRepoStub) GetLastRead(ctx context.Context, convID, userID uint) (*time.Time, error) {
	return s.getLastReadFn(ctx, convID, userID)
}

func noopConvRepo() *convRepoStub {
	return &convRepoStub{
		getOrCreateFn: func(_ context.Context, x, y uint) (*models.Conversation, error) {
			a, b := models.CanonicalPair(x, y)
			return &models.Conversation{ID: 1, UserAID: a, UserBID: b}, nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Conversation, error) {
			return &models.Conversation{ID: id}, nil
		},
		getByPairFn:      func(context.Context, uint, uint) (*models.Conversation, error) { return nil, nil },
		listForUserFn:    func(context.Context, uint) ([]models.Conversation, error) { return nil, nil },
		upsertLastReadFn: func(context.Context, uint, uint, time.Time) error { return nil },
		getLastReadFn:    func(context.Context, uint, uint) (*time.Time, error) { return nil, nil },
	}
}

type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(context.Context, *models.User) error { return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
	}
}

type msgRepoStub struct {
	createFn      func(context.Context, *models.Message) error
	listBeforeFn  func(context.Context, uint, time.Time, int) ([]*models.Message, error)
	getLatestFn   func(context.Context, uint) (*models.Message, error)
	countUnreadFn func(context.Context, uint, uint, *time.Time) (int64, error)
}

func (s *msgRepoStub) Create(ctx context.Context, msg *models.Message) error {
	return s.createFn(ctx, msg)
}
func (s *msgRepoStub) ListBefore(ctx context.Context, convID uint, before time.Time, limit int) ([]*models.Message, error) {
	return s.listBeforeFn(ctx, convID, before, limit)
}
func (s *msgRepoStub) GetLatest(ctx context.Context, convID uint) (*models.Message, error) {
	return s.getLatestFn(ctx, convID)
}
func (s *msgRepoStub) CountUnread(ctx context.Context, convID, userID uint, lastRead *time.Time) (int64, error) {
	return s.countUnreadFn(ctx, convID, userID, lastRead)
}

func noopMsgRepo() *msgRepoStub {
	return &msgRepoStub{
		createFn:      func(context.Context, *models.Message) error { return nil },
		listBeforeFn:  func(context.Context, uint, time.Time, int) ([]*models.Message, error) { return nil, nil },
		getLatestFn:   func(context.Context, uint) (*models.Message, error) { return nil, nil },
		countUnreadFn: func(context.Context, uint, uint, *time.Time) (int64, error) { return 0, nil },
	}
}
