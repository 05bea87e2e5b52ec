package services

import (
	"errors"
	"testing"

	"github.com/recipebox/recipebox-backend/internal/repos/testutil"
)

func TestIngredientServiceLifecycle(t *testing.T) {
	env := newServiceEnv(t)
	svc := NewIngredientService(env.db, testutil.Logger(t), env.ingredientRepo)
	recipeSvc := env.recipeService(t)
	_, ctx := env.seedUser(t, "ingsvc1@example.com")

	if _, err := recipeSvc.Create(ctx, CreateRecipeInput{
		Title:       "omelette",
		TimeMinutes: 10,
		Price:       "3.00",
		Ingredients: []NameInput{{Name: "egg"}, {Name: "butter"}},
	}); err != nil {
		t.Fatalf("Create recipe: %v", err)
	}
	if _, err := env.ingredientRepo.GetOrCreate(ctx, nil, mustUserID(t, ctx), "truffle"); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	all, err := svc.List(ctx, false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List: expected 3 ingredients, got %d", len(all))
	}
	assigned, err := svc.List(ctx, true)
	if err != nil {
		t.Fatalf("List (assigned): %v", err)
	}
	if len(assigned) != 2 {
		t.Fatalf("List (assigned): expected 2 ingredients, got %d", len(assigned))
	}

	target := assigned[0]
	renamed, err := svc.UpdateName(ctx, target.ID, "organic "+target.Name)
	if err != nil {
		t.Fatalf("UpdateName: %v", err)
	}
	if renamed.Name != "organic "+target.Name {
		t.Fatalf("UpdateName: unexpected name %q", renamed.Name)
	}

	if err := svc.Delete(ctx, target.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, target.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete (repeat): expected ErrNotFound, got %v", err)
	}
}
