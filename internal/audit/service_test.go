package audit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-chatkit/audit"
	"github.com/goliatone/go-chatkit/conform"
	internalaudit "github.com/goliatone/go-chatkit/internal/audit"
	"github.com/google/uuid"
)

func newTestService(t *testing.T, now *time.Time) audit.Service {
	t.Helper()
	svc, err := internalaudit.NewService(
		internalaudit.NewMemoryRepository(),
		internalaudit.WithClock(func() time.Time { return *now }),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestServiceRecordAndList(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, &now)

	first, err := svc.Record(ctx, audit.RecordInput{
		Kind:       audit.KindSend,
		ChannelID:  "chan-1",
		MessageID:  "1",
		Category:   "success",
		Conformant: true,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if first.ID == uuid.Nil {
		t.Fatal("expected a generated record id")
	}
	if !first.CreatedAt.Equal(now) {
		t.Fatalf("expected clock timestamp, got %v", first.CreatedAt)
	}

	now = now.Add(time.Minute)
	if _, err := svc.Record(ctx, audit.RecordInput{
		Kind:       audit.KindReply,
		Category:   "error",
		Conformant: false,
		Violations: []conform.Violation{{Rule: "structured-flag", Message: "missing flag"}},
	}); err != nil {
		t.Fatalf("record reply: %v", err)
	}

	all, err := svc.List(ctx, audit.ListInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 records, got %d", len(all))
	}
	if all[0].Kind != audit.KindReply {
		t.Fatalf("expected newest record first, got %q", all[0].Kind)
	}

	replies, err := svc.List(ctx, audit.ListInput{Kind: audit.KindReply})
	if err != nil {
		t.Fatalf("list by kind: %v", err)
	}
	if len(replies) != 1 || replies[0].Conformant {
		t.Fatalf("unexpected reply records %#v", replies)
	}
	if len(replies[0].Violations) != 1 {
		t.Fatal("expected violations to survive the round trip")
	}
}

func TestServiceRecordRejectsUnknownKind(t *testing.T) {
	now := time.Now()
	svc := newTestService(t, &now)

	if _, err := svc.Record(context.Background(), audit.RecordInput{Kind: "broadcast"}); !errors.Is(err, audit.ErrKindInvalid) {
		t.Fatalf("expected ErrKindInvalid, got %v", err)
	}
	if _, err := svc.List(context.Background(), audit.ListInput{Kind: "broadcast"}); !errors.Is(err, audit.ErrKindInvalid) {
		t.Fatalf("expected ErrKindInvalid on list, got %v", err)
	}
}

func TestServiceRequiresRepository(t *testing.T) {
	if _, err := internalaudit.NewService(nil); !errors.Is(err, audit.ErrRepositoryRequired) {
		t.Fatalf("expected ErrRepositoryRequired, got %v", err)
	}
}

func TestServiceCleanup(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, &now)

	if _, err := svc.Record(ctx, audit.RecordInput{Kind: audit.KindSend, Conformant: true}); err != nil {
		t.Fatalf("record: %v", err)
	}
	now = now.Add(48 * time.Hour)
	if _, err := svc.Record(ctx, audit.RecordInput{Kind: audit.KindSend, Conformant: true}); err != nil {
		t.Fatalf("record: %v", err)
	}

	if _, err := svc.Cleanup(ctx, 0); !errors.Is(err, audit.ErrRetentionInvalid) {
		t.Fatalf("expected ErrRetentionInvalid, got %v", err)
	}

	removed, err := svc.Cleanup(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed record, got %d", removed)
	}

	remaining, err := svc.List(ctx, audit.ListInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("expected 1 remaining record, got %d", len(remaining))
	}
}
