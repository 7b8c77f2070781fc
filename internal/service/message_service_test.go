package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"parley/internal/models"
)

func pairConvRepo(convID, userA, userB uint) *convRepoStub {
	convs := noopConvRepo()
	convs.getByIDFn = func(_ context.Context, id uint) (*models.Conversation, error) {
		if id != convID {
			return nil, models.NewNotFoundError("Conversation", id)
		}
		return &models.Conversation{ID: convID, UserAID: userA, UserBID: userB}, nil
	}
	return convs
}

func TestMessageServiceSendEmptyContent(t *testing.T) {
	svc := NewMessageService(pairConvRepo(1, 1, 2), noopMsgRepo(), noopBlockRepo())
	_, err := svc.SendMessage(context.Background(), 1, 1, "   \n ")
	if code := appErrCode(t, err); code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation error, got %s", code)
	}
}

func TestMessageServiceSendContentTooLong(t *testing.T) {
	svc := NewMessageService(pairConvRepo(1, 1, 2), noopMsgRepo(), noopBlockRepo())
	_, err := svc.SendMessage(context.Background(), 1, 1, strings.Repeat("a", maxMessageContentLen+1))
	if code := appErrCode(t, err); code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation error, got %s", code)
	}
}

// The limit counts characters, not bytes: multibyte content at the limit
// must pass even though its byte length is far larger.
func TestMessageServiceSendContentLimitIsRunes(t *testing.T) {
	svc := NewMessageService(pairConvRepo(1, 1, 2), noopMsgRepo(), noopBlockRepo())

	msg, err := svc.SendMessage(context.Background(), 1, 1, strings.Repeat("é", maxMessageContentLen))
	if err != nil {
		t.Fatalf("expected max-length multibyte content to be accepted, got %v", err)
	}
	if msg == nil {
		t.Fatal("expected a message back")
	}

	_, err = svc.SendMessage(context.Background(), 1, 1, strings.Repeat("é", maxMessageContentLen+1))
	if code := appErrCode(t, err); code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation error over the rune limit, got %s", code)
	}
}

func TestMessageServiceSendNonParticipant(t *testing.T) {
	svc := NewMessageService(pairConvRepo(1, 1, 2), noopMsgRepo(), noopBlockRepo())
	_, err := svc.SendMessage(context.Background(), 1, 3, "hello")
	if code := appErrCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("expected forbidden error, got %s", code)
	}
}

func TestMessageServiceSendBlockedEitherDirection(t *testing.T) {
	for name, edge := range map[string][2]uint{
		"blocked by peer": {2, 1},
		"blocking peer":   {1, 2},
	} {
		blocks := noopBlockRepo()
		blocks.existsFn = func(_ context.Context, blockerID, blockedID uint) (bool, error) {
			return blockerID == edge[0] && blockedID == edge[1], nil
		}

		svc := NewMessageService(pairConvRepo(1, 1, 2), noopMsgRepo(), blocks)
		_, err := svc.SendMessage(context.Background(), 1, 1, "hello")
		if code := appErrCode(t, err); code != "FORBIDDEN" {
			t.Fatalf("%s: expected forbidden error, got %s", name, code)
		}
	}
}

func TestMessageServiceSendTrimsContent(t *testing.T) {
	var created *models.Message
	msgs := noopMsgRepo()
	msgs.createFn = func(_ context.Context, msg *models.Message) error {
		created = msg
		return nil
	}

	svc := NewMessageService(pairConvRepo(1, 1, 2), msgs, noopBlockRepo())
	msg, err := svc.SendMessage(context.Background(), 1, 1, "  hello there  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || created.Content != "hello there" {
		t.Fatalf("expected trimmed content, got %#v", created)
	}
	if msg.ConversationID != 1 || msg.SenderID != 1 {
		t.Fatalf("unexpected message: %#v", msg)
	}
}

func TestMessageServiceListBlockerKeepsReadAccess(t *testing.T) {
	// User 1 blocks user 2. The blocker may still read; the blocked
	// party may not.
	blocks := noopBlockRepo()
	blocks.existsFn = func(_ context.Context, blockerID, blockedID uint) (bool, error) {
		return blockerID == 1 && blockedID == 2, nil
	}

	svc := NewMessageService(pairConvRepo(1, 1, 2), noopMsgRepo(), blocks)

	if _, err := svc.ListMessages(context.Background(), 1, 1, time.Now(), 50); err != nil {
		t.Fatalf("expected blocker to retain read access, got %v", err)
	}

	_, err := svc.ListMessages(context.Background(), 1, 2, time.Now(), 50)
	if code := appErrCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("expected forbidden error for blocked viewer, got %s", code)
	}
}

func TestMessageServiceListNonParticipant(t *testing.T) {
	svc := NewMessageService(pairConvRepo(1, 1, 2), noopMsgRepo(), noopBlockRepo())
	_, err := svc.ListMessages(context.Background(), 1, 3, time.Now(), 50)
	if code := appErrCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("expected forbidden error, got %s", code)
	}
}

func TestMessageServiceMarkRead(t *testing.T) {
	var stamped bool
	convs := pairConvRepo(1, 1, 2)
	convs.upsertLastReadFn = func(_ context.Context, convID, userID uint, at time.Time) error {
		if convID != 1 || userID != 2 {
			t.Fatalf("unexpected upsert for conv %d user %d", convID, userID)
		}
		if at.IsZero() {
			t.Fatal("expected a read timestamp")
		}
		stamped = true
		return nil
	}

	svc := NewMessageService(convs, noopMsgRepo(), noopBlockRepo())
	if err := svc.MarkRead(context.Background(), 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stamped {
		t.Fatal("expected last-read upsert")
	}
}

func TestMessageServiceUnreadCountFallsBackToStore(t *testing.T) {
	lastRead := time.Now().Add(-time.Hour)
	convs := pairConvRepo(1, 1, 2)
	convs.getLastReadFn = func(context.Context, uint, uint) (*time.Time, error) {
		return &lastRead, nil
	}
	msgs := noopMsgRepo()
	msgs.countUnreadFn = func(_ context.Context, convID, userID uint, since *time.Time) (int64, error) {
		if since == nil || !since.Equal(lastRead) {
			t.Fatalf("expected count from last-read time, got %v", since)
		}
		return 3, nil
	}

	svc := NewMessageService(convs, msgs, noopBlockRepo())
	count, err := svc.UnreadCount(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 unread, got %d", count)
	}
}

func TestMessageServiceListConversations(t *testing.T) {
	convs := noopConvRepo()
	convs.listForUserFn = func(context.Context, uint) ([]models.Conversation, error) {
		return []models.Conversation{
			{ID: 1, UserAID: 1, UserBID: 2, UserB: models.User{ID: 2, Username: "beth"}},
			{ID: 2, UserAID: 3, UserBID: 1, UserA: models.User{ID: 3, Username: "cass"}},
		}, nil
	}
	msgs := noopMsgRepo()
	msgs.getLatestFn = func(_ context.Context, convID uint) (*models.Message, error) {
		if convID == 1 {
			return &models.Message{ID: 10, ConversationID: 1, SenderID: 2, Content: "hey"}, nil
		}
		return nil, nil
	}
	msgs.countUnreadFn = func(_ context.Context, convID, _ uint, _ *time.Time) (int64, error) {
		if convID == 1 {
			return 2, nil
		}
		return 0, nil
	}

	svc := NewMessageService(convs, msgs, noopBlockRepo())
	summaries, err := svc.ListConversations(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].Peer.Username != "beth" || summaries[1].Peer.Username != "cass" {
		t.Fatalf("expected peers beth and cass, got %s and %s", summaries[0].Peer.Username, summaries[1].Peer.Username)
	}
	if summaries[0].LastMessage == nil || summaries[0].LastMessage.Content != "hey" {
		t.Fatalf("expected last message preview, got %#v", summaries[0].LastMessage)
	}
	if summaries[0].UnreadCount != 2 || summaries[1].UnreadCount != 0 {
		t.Fatalf("unexpected unread counts: %d %d", summaries[0].UnreadCount, summaries[1].UnreadCount)
	}
	if summaries[1].LastMessage != nil {
		t.Fatal("expected no last message for empty conversation")
	}
}
