package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"parley/internal/cache"
	"parley/internal/models"
	"parley/internal/observability"
	"parley/internal/repository"
)

const maxMessageContentLen = 10000 // 10K characters

// MessageService guards read and write access to conversation messages.
// Block state is re-checked on every call, not just at conversation creation,
// so a block cuts off an active conversation immediately.
type MessageService struct {
	convRepo  repository.ConversationRepository
	msgRepo   repository.MessageRepository
	blockRepo repository.BlockRepository
}

// ConversationSummary is a conversation enriched with the other participant,
// the latest message, and the viewer's unread count.
type ConversationSummary struct {
	Conversation *models.Conversation `json:"conversation"`
	Peer         models.User          `json:"peer"`
	LastMessage  *models.Message      `json:"last_message,omitempty"`
	UnreadCount  int64                `json:"unread_count"`
}

// NewMessageService returns a new MessageService.
func NewMessageService(
	convRepo repository.ConversationRepository,
	msgRepo repository.MessageRepository,
	blockRepo repository.BlockRepository,
) *MessageService {
	return &MessageService{
		convRepo:  convRepo,
		msgRepo:   msgRepo,
		blockRepo: blockRepo,
	}
}

// ListMessages returns a page of messages ending before the cursor, oldest
// first. The viewer must be a participant and must not be blocked by the
// other participant; the blocker side keeps read access.
func (s *MessageService) ListMessages(ctx context.Context, convID, viewerID uint, before time.Time, limit int) ([]*models.Message, error) {
	conv, err := s.convRepo.GetByID(ctx, convID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(viewerID) {
		return nil, models.NewForbiddenError("You are not a participant in this conversation")
	}

	blocked, err := s.blockRepo.Exists(ctx, conv.OtherParticipant(viewerID), viewerID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, models.NewForbiddenError("You cannot view this conversation")
	}

	return s.msgRepo.ListBefore(ctx, convID, before, limit)
}

// SendMessage appends a message to the conversation. Sending fails when a
// block exists in either direction: the blocked party cannot reach the
// blocker, and the blocker must unblock before writing.
func (s *MessageService) SendMessage(ctx context.Context, convID, senderID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Message content is required")
	}
	if utf8.RuneCountInString(content) > maxMessageContentLen {
		return nil, models.NewValidationError("Message content too long (max 10000 characters)")
	}

	conv, err := s.convRepo.GetByID(ctx, convID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(senderID) {
		return nil, models.NewForbiddenError("You are not a participant in this conversation")
	}

	otherID := conv.OtherParticipant(senderID)
	blocked, err := s.eitherBlocked(ctx, senderID, otherID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, models.NewForbiddenError("Messaging is blocked between these users")
	}

	msg := &models.Message{
		ConversationID: convID,
		SenderID:       senderID,
		Content:        content,
	}
	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	observability.MessagesSentTotal.Inc()

	cache.IncrUnread(ctx, otherID, convID)

	return msg, nil
}

// MarkRead stamps the viewer's last-read time for the conversation.
func (s *MessageService) MarkRead(ctx context.Context, convID, userID uint) error {
	conv, err := s.convRepo.GetByID(ctx, convID)
	if err != nil {
		return err
	}
	if !conv.HasParticipant(userID) {
		return models.NewForbiddenError("You are not a participant in this conversation")
	}

	if err := s.convRepo.UpsertLastRead(ctx, convID, userID, time.Now().UTC()); err != nil {
		return err
	}

	cache.ResetUnread(ctx, userID, convID)
	return nil
}

// UnreadCount returns the number of messages from the other participant the
// user has not read yet, preferring the cached count.
func (s *MessageService) UnreadCount(ctx context.Context, convID, userID uint) (int64, error) {
	if count, ok := cache.GetUnread(ctx, userID, convID); ok {
		return count, nil
	}

	lastRead, err := s.convRepo.GetLastRead(ctx, convID, userID)
	if err != nil {
		return 0, err
	}
	count, err := s.msgRepo.CountUnread(ctx, convID, userID, lastRead)
	if err != nil {
		return 0, err
	}

	cache.SetUnread(ctx, userID, convID, count)
	return count, nil
}

// ListConversations returns the user's conversations with peer profile, last
// message preview, and unread count.
func (s *MessageService) ListConversations(ctx context.Context, userID uint) ([]ConversationSummary, error) {
	conversations, err := s.convRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ConversationSummary, 0, len(conversations))
	for i := range conversations {
		conv := conversations[i]

		peer := conv.UserA
		if conv.UserAID == userID {
			peer = conv.UserB
		}

		last, err := s.msgRepo.GetLatest(ctx, conv.ID)
		if err != nil {
			return nil, err
		}

		unread, err := s.UnreadCount(ctx, conv.ID, userID)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, ConversationSummary{
			Conversation: &conversations[i],
			Peer:         peer,
			LastMessage:  last,
			UnreadCount:  unread,
		})
	}

	return summaries, nil
}

func (s *MessageService) eitherBlocked(ctx context.Context, userID, otherID uint) (bool, error) {
	blocked, err := s.blockRepo.Exists(ctx, userID, otherID)
	if err != nil {
		return false, err
	}
	if blocked {
		return true, nil
	}
	return s.blockRepo.Exists(ctx, otherID, userID)
}
