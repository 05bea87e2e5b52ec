package services

import (
  "context"
  "encoding/json"
  "fmt"
  "time"
  "golang.org/x/sync/singleflight"
  "gorm.io/gorm"
  "github.com/recipebox/recipebox-backend/internal/clients/redis"
  "github.com/recipebox/recipebox-backend/internal/logger"
  "github.com/recipebox/recipebox-backend/internal/repos"
  "github.com/recipebox/recipebox-backend/internal/types"
)

const publicRecipesCacheKey = "public:recipes"

// PublicRecipeService is the one read path that deliberately skips user
// scoping: an unauthenticated listing of every recipe. Scoped reads never go
// through here and never touch the cache.
type PublicRecipeService interface {
  List(ctx context.Context) ([]*types.Recipe, error)
}

type publicRecipeService struct {
  db         *gorm.DB
  log        *logger.Logger
  recipeRepo repos.RecipeRepo
  cache      redis.Cache
  cacheTTL   time.Duration
  group      singleflight.Group
}

func NewPublicRecipeService(
  db *gorm.DB,
  baseLog *logger.Logger,
  recipeRepo repos.RecipeRepo,
  cache redis.Cache,
  cacheTTL time.Duration,
) PublicRecipeService {
  serviceLog := baseLog.With("service", "PublicRecipeService")
  if cacheTTL <= 0 {
    cacheTTL = 30 * time.Second
  }
  return &publicRecipeService{
    db:         db,
    log:        serviceLog,
    recipeRepo: recipeRepo,
    cache:      cache,
    cacheTTL:   cacheTTL,
  }
}

func (ps *publicRecipeService) List(ctx context.Context) ([]*types.Recipe, error) {
  if ps.cache != nil {
    if raw, ok := ps.cache.Get(ctx, publicRecipesCacheKey); ok {
      var cached []*types.Recipe
      if err := json.Unmarshal(raw, &cached); err == nil {
        return cached, nil
      }
      ps.log.Warn("Discarding undecodable public listing cache entry")
    }
  }

  // Concurrent misses collapse onto a single query. The query runs on a
  // detached context: the result is shared by every collapsed caller, so one
  // canceled request must not fail the whole group.
  result, err, _ := ps.group.Do(publicRecipesCacheKey, func() (interface{}, error) {
    qctx := context.WithoutCancel(ctx)
    recipes, err := ps.recipeRepo.ListAll(qctx, nil)
    if err != nil {
      return nil, fmt.Errorf("list public recipes: %w", err)
    }
    if ps.cache != nil {
      if raw, err := json.Marshal(recipes); err == nil {
        ps.cache.Set(qctx, publicRecipesCacheKey, raw, ps.cacheTTL)
      }
    }
    return recipes, nil
  })
  if err != nil {
    return nil, err
  }
  return result.([]*types.Recipe), nil
}
