package service

import (
	"context"
	"testing"

	"parley/internal/models"
)

func TestBlockServiceBlockSelf(t *testing.T) {
	svc := NewBlockService(noopBlockRepo(), noopUserRepo())
	err := svc.Block(context.Background(), 5, 5)
	if code := appErrCode(t, err); code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation error, got %s", code)
	}
}

func TestBlockServiceBlockUnknownTarget(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewBlockService(noopBlockRepo(), users)
	err := svc.Block(context.Background(), 1, 99)
	if code := appErrCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("expected not found error, got %s", code)
	}
}

func TestBlockServiceBlockCreatesEdge(t *testing.T) {
	var pair [2]uint
	blocks := noopBlockRepo()
	blocks.createFn = func(_ context.Context, blockerID, blockedID uint) error {
		pair = [2]uint{blockerID, blockedID}
		return nil
	}

	svc := NewBlockService(blocks, noopUserRepo())
	if err := svc.Block(context.Background(), 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair != [2]uint{1, 2} {
		t.Fatalf("expected edge 1->2, got %v", pair)
	}
}

func TestBlockServiceUnblockAbsentEdge(t *testing.T) {
	svc := NewBlockService(noopBlockRepo(), noopUserRepo())
	if err := svc.Unblock(context.Background(), 1, 2); err != nil {
		t.Fatalf("expected unblock of absent edge to be a no-op, got %v", err)
	}
}

func TestBlockServiceIsBlockedIsDirectional(t *testing.T) {
	blocks := noopBlockRepo()
	blocks.existsFn = func(_ context.Context, blockerID, blockedID uint) (bool, error) {
		return blockerID == 1 && blockedID == 2, nil
	}

	svc := NewBlockService(blocks, noopUserRepo())

	blocked, err := svc.IsBlocked(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !blocked {
		t.Fatal("expected 1->2 to be blocked")
	}

	blocked, err = svc.IsBlocked(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blocked {
		t.Fatal("expected 2->1 to be unblocked")
	}
}
