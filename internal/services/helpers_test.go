package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipebox/recipebox-backend/internal/repos"
	"github.com/recipebox/recipebox-backend/internal/repos/testutil"
	"github.com/recipebox/recipebox-backend/internal/requestdata"
	"github.com/recipebox/recipebox-backend/internal/types"
)

type serviceEnv struct {
	db             *gorm.DB
	userRepo       repos.UserRepo
	userTokenRepo  repos.UserTokenRepo
	tagRepo        repos.TagRepo
	ingredientRepo repos.IngredientRepo
	recipeRepo     repos.RecipeRepo
}

func newServiceEnv(t *testing.T) *serviceEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return &serviceEnv{
		db:             db,
		userRepo:       repos.NewUserRepo(db, log),
		userTokenRepo:  repos.NewUserTokenRepo(db, log),
		tagRepo:        repos.NewTagRepo(db, log),
		ingredientRepo: repos.NewIngredientRepo(db, log),
		recipeRepo:     repos.NewRecipeRepo(db, log),
	}
}

func (env *serviceEnv) recipeService(t *testing.T) RecipeService {
	t.Helper()
	return NewRecipeService(env.db, testutil.Logger(t), env.recipeRepo, env.tagRepo, env.ingredientRepo, nil)
}

func (env *serviceEnv) seedUser(t *testing.T, email string) (*types.User, context.Context) {
	t.Helper()
	u := testutil.SeedUser(t, context.Background(), env.db, email)
	return u, authedContext(u.ID)
}

func authedContext(userID uuid.UUID) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: userID})
}
