package repository

import (
	"context"
	"testing"

	"podcast-hub/internal/domain"
)

func TestMemoryInteractionStore_LikeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryInteractionStore()

	outcome, err := store.Record(ctx, "u1", 7, 42, domain.ActionLike, "")
	if err != nil || outcome != OutcomeRecorded {
		t.Fatalf("expected recorded, got %q,%v", outcome, err)
	}
	outcome, err = store.Record(ctx, "u1", 7, 42, domain.ActionLike, "")
	if err != nil || outcome != OutcomeAlreadyExists {
		t.Fatalf("expected already_exists, got %q,%v", outcome, err)
	}

	doc, ok, err := store.Get(ctx, 7)
	if err != nil || !ok {
		t.Fatalf("expected doc, got %v,%v", ok, err)
	}
	if likes := doc["42"].Like; len(likes) != 1 || likes[0].UserID != "u1" {
		t.Fatalf("expected exactly one like entry for u1, got %+v", likes)
	}
}

func TestMemoryInteractionStore_DocumentCreatedLazily(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryInteractionStore()

	if _, ok, err := store.Get(ctx, 7); err != nil || ok {
		t.Fatalf("expected no doc before first interaction, got %v,%v", ok, err)
	}
	if _, err := store.Record(ctx, "u1", 7, 42, domain.ActionBookMark, ""); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, ok, err := store.Get(ctx, 7); err != nil || !ok {
		t.Fatalf("expected doc after first interaction, got %v,%v", ok, err)
	}
}

func TestMemoryInteractionStore_CommentsAppendInOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryInteractionStore()

	for _, content := range []string{"primero", "primero", "segundo"} {
		outcome, err := store.Record(ctx, "u1", 7, 42, domain.ActionComment, content)
		if err != nil || outcome != OutcomeRecorded {
			t.Fatalf("expected recorded for comment %q, got %q,%v", content, outcome, err)
		}
	}

	doc, _, err := store.Get(ctx, 7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	comments := doc["42"].Comment
	if len(comments) != 3 {
		t.Fatalf("expected 3 comments (duplicates kept), got %d", len(comments))
	}
	if comments[0].Content != "primero" || comments[1].Content != "primero" || comments[2].Content != "segundo" {
		t.Fatalf("expected insertion order preserved, got %+v", comments)
	}
}

func TestMemoryInteractionStore_RemoveMissingIsNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryInteractionStore()

	outcome, err := store.Remove(ctx, "u1", 7, 42, domain.ActionLike)
	if err != nil || outcome != OutcomeNotFound {
		t.Fatalf("expected not_found on empty store, got %q,%v", outcome, err)
	}

	if _, err := store.Record(ctx, "u1", 7, 42, domain.ActionLike, ""); err != nil {
		t.Fatalf("record: %v", err)
	}
	outcome, err = store.Remove(ctx, "u2", 7, 42, domain.ActionLike)
	if err != nil || outcome != OutcomeNotFound {
		t.Fatalf("expected not_found for other user, got %q,%v", outcome, err)
	}

	// El store queda sin cambios.
	doc, _, err := store.Get(ctx, 7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if likes := doc["42"].Like; len(likes) != 1 || likes[0].UserID != "u1" {
		t.Fatalf("expected u1 like untouched, got %+v", likes)
	}
}

func TestMemoryInteractionStore_RemoveBookmark(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryInteractionStore()

	if _, err := store.Record(ctx, "u1", 7, 42, domain.ActionBookMark, ""); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := store.Record(ctx, "u2", 7, 42, domain.ActionBookMark, ""); err != nil {
		t.Fatalf("record: %v", err)
	}

	outcome, err := store.Remove(ctx, "u1", 7, 42, domain.ActionBookMark)
	if err != nil || outcome != OutcomeRemoved {
		t.Fatalf("expected removed, got %q,%v", outcome, err)
	}

	doc, _, err := store.Get(ctx, 7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if marks := doc["42"].BookMark; len(marks) != 1 || marks[0].UserID != "u2" {
		t.Fatalf("expected only u2 bookmark left, got %+v", marks)
	}
}

func TestMemoryInteractionStore_RemoveCommentClearsAllByUser(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryInteractionStore()

	if _, err := store.Record(ctx, "u1", 7, 42, domain.ActionComment, "uno"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := store.Record(ctx, "u1", 7, 42, domain.ActionComment, "dos"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := store.Record(ctx, "u2", 7, 42, domain.ActionComment, "tres"); err != nil {
		t.Fatalf("record: %v", err)
	}

	outcome, err := store.Remove(ctx, "u1", 7, 42, domain.ActionComment)
	if err != nil || outcome != OutcomeRemoved {
		t.Fatalf("expected removed, got %q,%v", outcome, err)
	}

	doc, _, err := store.Get(ctx, 7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	comments := doc["42"].Comment
	if len(comments) != 1 || comments[0].UserID != "u2" {
		t.Fatalf("expected only u2 comment left, got %+v", comments)
	}
}

func TestMemoryInteractionStore_GetReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryInteractionStore()

	if _, err := store.Record(ctx, "u1", 7, 42, domain.ActionLike, ""); err != nil {
		t.Fatalf("record: %v", err)
	}
	doc, _, err := store.Get(ctx, 7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if _, err := store.Record(ctx, "u2", 7, 42, domain.ActionLike, ""); err != nil {
		t.Fatalf("record: %v", err)
	}
	if likes := doc["42"].Like; len(likes) != 1 {
		t.Fatalf("expected snapshot unaffected by later writes, got %+v", likes)
	}
}
