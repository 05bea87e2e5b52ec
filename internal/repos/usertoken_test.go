package repos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipebox/recipebox-backend/internal/repos/testutil"
	"github.com/recipebox/recipebox-backend/internal/types"
)

func TestUserTokenRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewUserTokenRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "usertokenrepo@example.com")

	now := time.Now().UTC()
	row := &types.UserToken{
		ID:           uuid.New(),
		UserID:       u.ID,
		RefreshToken: uuid.NewString(),
		ExpiresAt:    now.Add(time.Hour),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := repo.Create(ctx, tx, []*types.UserToken{row}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByRefreshToken(ctx, tx, row.RefreshToken)
	if err != nil {
		t.Fatalf("GetByRefreshToken: %v", err)
	}
	if got.UserID != u.ID {
		t.Fatalf("GetByRefreshToken: unexpected row: %+v", got)
	}

	byUser, err := repo.GetByUserIDs(ctx, tx, []uuid.UUID{u.ID})
	if err != nil || len(byUser) != 1 {
		t.Fatalf("GetByUserIDs: err=%v len=%d", err, len(byUser))
	}

	if err := repo.DeleteByRefreshToken(ctx, tx, row.RefreshToken); err != nil {
		t.Fatalf("DeleteByRefreshToken: %v", err)
	}
	if _, err := repo.GetByRefreshToken(ctx, tx, row.RefreshToken); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetByRefreshToken after delete: expected ErrRecordNotFound, got %v", err)
	}

	row2 := &types.UserToken{
		ID:           uuid.New(),
		UserID:       u.ID,
		RefreshToken: uuid.NewString(),
		ExpiresAt:    now.Add(time.Hour),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := repo.Create(ctx, tx, []*types.UserToken{row2}); err != nil {
		t.Fatalf("Create (second): %v", err)
	}
	if err := repo.DeleteByUserIDs(ctx, tx, []uuid.UUID{u.ID}); err != nil {
		t.Fatalf("DeleteByUserIDs: %v", err)
	}
	if rows, err := repo.GetByUserIDs(ctx, tx, []uuid.UUID{u.ID}); err != nil || len(rows) != 0 {
		t.Fatalf("GetByUserIDs after delete: err=%v len=%d", err, len(rows))
	}
}
