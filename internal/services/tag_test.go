package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/recipebox/recipebox-backend/internal/repos/testutil"
)

func TestTagServiceListAndFilter(t *testing.T) {
	env := newServiceEnv(t)
	svc := NewTagService(env.db, testutil.Logger(t), env.tagRepo)
	recipeSvc := env.recipeService(t)
	_, ctx := env.seedUser(t, "tagsvc1@example.com")
	_, otherCtx := env.seedUser(t, "tagsvc2@example.com")

	if _, err := recipeSvc.Create(ctx, CreateRecipeInput{
		Title:       "smoothie",
		TimeMinutes: 5,
		Price:       "2.50",
		Tags:        []NameInput{{Name: "vegan"}},
	}); err != nil {
		t.Fatalf("Create recipe: %v", err)
	}
	if _, err := svc.List(ctx, false); err != nil {
		t.Fatalf("List: %v", err)
	}

	// An unassigned tag appears in the plain listing only.
	if _, err := env.tagRepo.GetOrCreate(ctx, nil, mustUserID(t, ctx), "someday"); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	all, err := svc.List(ctx, false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0].Name != "vegan" || all[1].Name != "someday" {
		t.Fatalf("List: unexpected result: %+v", all)
	}
	assigned, err := svc.List(ctx, true)
	if err != nil {
		t.Fatalf("List (assigned): %v", err)
	}
	if len(assigned) != 1 || assigned[0].Name != "vegan" {
		t.Fatalf("List (assigned): unexpected result: %+v", assigned)
	}

	if otherTags, err := svc.List(otherCtx, false); err != nil || len(otherTags) != 0 {
		t.Fatalf("List (other user): err=%v len=%d", err, len(otherTags))
	}
}

func TestTagServiceUpdateAndDelete(t *testing.T) {
	env := newServiceEnv(t)
	svc := NewTagService(env.db, testutil.Logger(t), env.tagRepo)
	_, ctx := env.seedUser(t, "tagsvc3@example.com")
	_, otherCtx := env.seedUser(t, "tagsvc4@example.com")

	tag, err := env.tagRepo.GetOrCreate(ctx, nil, mustUserID(t, ctx), "dinner")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	renamed, err := svc.UpdateName(ctx, tag.ID, " supper ")
	if err != nil {
		t.Fatalf("UpdateName: %v", err)
	}
	if renamed.Name != "supper" {
		t.Fatalf("UpdateName: expected trimmed name, got %q", renamed.Name)
	}

	var vErr *ValidationError
	if _, err := svc.UpdateName(ctx, tag.ID, "   "); !errors.As(err, &vErr) {
		t.Fatalf("UpdateName (blank): expected ValidationError, got %v", err)
	}
	if _, err := svc.UpdateName(otherCtx, tag.ID, "stolen"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateName (other user): expected ErrNotFound, got %v", err)
	}
	if _, err := svc.UpdateName(ctx, uuid.New(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateName (missing): expected ErrNotFound, got %v", err)
	}

	if err := svc.Delete(otherCtx, tag.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete (other user): expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, tag.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, tag.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete (repeat): expected ErrNotFound, got %v", err)
	}
}

func mustUserID(t *testing.T, ctx context.Context) uuid.UUID {
	t.Helper()
	userID, err := userIDFromContext(ctx)
	if err != nil {
		t.Fatalf("userIDFromContext: %v", err)
	}
	return userID
}
