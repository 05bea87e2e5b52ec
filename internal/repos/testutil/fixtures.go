package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipebox/recipebox-backend/internal/types"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	now := time.Now().UTC()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		Name:      "Test User",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedRecipe(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, title string, createdAt time.Time) *types.Recipe {
	tb.Helper()
	r := &types.Recipe{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		TimeMinutes: 10,
		Price:       "5.00",
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	if err := tx.WithContext(ctx).Omit("Tags", "Ingredients").Create(r).Error; err != nil {
		tb.Fatalf("seed recipe: %v", err)
	}
	return r
}

func SeedTag(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string) *types.Tag {
	tb.Helper()
	now := time.Now().UTC()
	tag := &types.Tag{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(tag).Error; err != nil {
		tb.Fatalf("seed tag: %v", err)
	}
	return tag
}

func SeedIngredient(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string) *types.Ingredient {
	tb.Helper()
	now := time.Now().UTC()
	ing := &types.Ingredient{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(ing).Error; err != nil {
		tb.Fatalf("seed ingredient: %v", err)
	}
	return ing
}
