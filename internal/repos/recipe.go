package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/recipebox/recipebox-backend/internal/logger"
  "github.com/recipebox/recipebox-backend/internal/types"
)

type RecipeRepo interface {
  Create(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) (*types.Recipe, error)
  GetByID(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (*types.Recipe, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Recipe, error)
  ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Recipe, error)
  Update(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) error
  UpdateImage(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID, bucketKey, imageURL string) error
  ReplaceTags(ctx context.Context, tx *gorm.DB, recipe *types.Recipe, tags []*types.Tag) error
  ReplaceIngredients(ctx context.Context, tx *gorm.DB, recipe *types.Recipe, ingredients []*types.Ingredient) error
  Delete(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) error
}

type recipeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
  repoLog := baseLog.With("repo", "RecipeRepo")
  return &recipeRepo{db: db, log: repoLog}
}

func (rr *recipeRepo) Create(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) (*types.Recipe, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  if err := transaction.WithContext(ctx).
    Omit("Tags", "Ingredients").
    Create(recipe).Error; err != nil {
    return nil, err
  }
  return recipe, nil
}

func (rr *recipeRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (*types.Recipe, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  var result types.Recipe
  if err := transaction.WithContext(ctx).
    Preload("Tags").
    Preload("Ingredients").
    Where("id = ? AND user_id = ?", recipeID, userID).
    Take(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (rr *recipeRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Recipe, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  var results []*types.Recipe
  if err := transaction.WithContext(ctx).
    Preload("Tags").
    Preload("Ingredients").
    Where("user_id = ?", userID).
    Order("created_at DESC, id DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// ListAll backs the unauthenticated public listing. It is the one read path
// deliberately not filtered by user_id.
func (rr *recipeRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Recipe, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  var results []*types.Recipe
  if err := transaction.WithContext(ctx).
    Preload("Tags").
    Preload("Ingredients").
    Order("created_at DESC, id DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (rr *recipeRepo) Update(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) error {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  return transaction.WithContext(ctx).
    Omit("Tags", "Ingredients").
    Save(recipe).Error
}

func (rr *recipeRepo) UpdateImage(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID, bucketKey, imageURL string) error {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  res := transaction.WithContext(ctx).
    Model(&types.Recipe{}).
    Where("id = ? AND user_id = ?", recipeID, userID).
    Updates(map[string]interface{}{"image_bucket_key": bucketKey, "image_url": imageURL})
  if res.Error != nil {
    return res.Error
  }
  if res.RowsAffected == 0 {
    return gorm.ErrRecordNotFound
  }
  return nil
}

func (rr *recipeRepo) ReplaceTags(ctx context.Context, tx *gorm.DB, recipe *types.Recipe, tags []*types.Tag) error {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  // Never attach another user's vocabulary to this recipe, whatever the
  // caller resolved.
  owned := make([]*types.Tag, 0, len(tags))
  for _, tag := range tags {
    if tag != nil && tag.UserID == recipe.UserID {
      owned = append(owned, tag)
    }
  }
  if err := transaction.WithContext(ctx).
    Model(recipe).
    Association("Tags").
    Replace(owned); err != nil {
    return err
  }
  recipe.Tags = owned
  return nil
}

func (rr *recipeRepo) ReplaceIngredients(ctx context.Context, tx *gorm.DB, recipe *types.Recipe, ingredients []*types.Ingredient) error {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  owned := make([]*types.Ingredient, 0, len(ingredients))
  for _, ingredient := range ingredients {
    if ingredient != nil && ingredient.UserID == recipe.UserID {
      owned = append(owned, ingredient)
    }
  }
  if err := transaction.WithContext(ctx).
    Model(recipe).
    Association("Ingredients").
    Replace(owned); err != nil {
    return err
  }
  recipe.Ingredients = owned
  return nil
}

// Delete removes the recipe and its association rows. Tag and ingredient rows
// stay behind as reusable vocabulary.
func (rr *recipeRepo) Delete(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  res := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", recipeID, userID).
    Delete(&types.Recipe{})
  if res.Error != nil {
    return res.Error
  }
  if res.RowsAffected == 0 {
    return gorm.ErrRecordNotFound
  }
  if err := transaction.WithContext(ctx).
    Exec("DELETE FROM recipe_tag WHERE recipe_id = ?", recipeID).Error; err != nil {
    return err
  }
  return transaction.WithContext(ctx).
    Exec("DELETE FROM recipe_ingredient WHERE recipe_id = ?", recipeID).Error
}
