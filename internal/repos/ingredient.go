package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/recipebox/recipebox-backend/internal/logger"
  "github.com/recipebox/recipebox-backend/internal/types"
)

type IngredientRepo interface {
  GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string) (*types.Ingredient, error)
  GetByID(ctx context.Context, tx *gorm.DB, userID, ingredientID uuid.UUID) (*types.Ingredient, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, assignedOnly bool) ([]*types.Ingredient, error)
  UpdateName(ctx context.Context, tx *gorm.DB, userID, ingredientID uuid.UUID, name string) error
  Delete(ctx context.Context, tx *gorm.DB, userID, ingredientID uuid.UUID) error
}

type ingredientRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewIngredientRepo(db *gorm.DB, baseLog *logger.Logger) IngredientRepo {
  repoLog := baseLog.With("repo", "IngredientRepo")
  return &ingredientRepo{db: db, log: repoLog}
}

// Same upsert-then-fetch shape as TagRepo.GetOrCreate, keyed on
// idx_ingredient_user_name.
func (ir *ingredientRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string) (*types.Ingredient, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  now := time.Now().UTC()
  row := &types.Ingredient{
    ID:        uuid.New(),
    UserID:    userID,
    Name:      name,
    CreatedAt: now,
    UpdatedAt: now,
  }
  res := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
      DoNothing: true,
    }).
    Create(row)
  if res.Error != nil && !IsUniqueViolation(res.Error) {
    return nil, res.Error
  }
  if res.Error == nil && res.RowsAffected > 0 {
    return row, nil
  }

  var existing types.Ingredient
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND name = ?", userID, name).
    Take(&existing).Error; err != nil {
    return nil, err
  }
  return &existing, nil
}

func (ir *ingredientRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, ingredientID uuid.UUID) (*types.Ingredient, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  var result types.Ingredient
  if err := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", ingredientID, userID).
    Take(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (ir *ingredientRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, assignedOnly bool) ([]*types.Ingredient, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  var results []*types.Ingredient
  query := transaction.WithContext(ctx).
    Model(&types.Ingredient{}).
    Where("ingredient.user_id = ?", userID)
  if assignedOnly {
    query = query.
      Joins("JOIN recipe_ingredient ON recipe_ingredient.ingredient_id = ingredient.id").
      Joins("JOIN recipe ON recipe.id = recipe_ingredient.recipe_id AND recipe.user_id = ?", userID).
      Distinct("ingredient.*")
  }
  if err := query.Order("ingredient.name DESC").Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ir *ingredientRepo) UpdateName(ctx context.Context, tx *gorm.DB, userID, ingredientID uuid.UUID, name string) error {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  res := transaction.WithContext(ctx).
    Model(&types.Ingredient{}).
    Where("id = ? AND user_id = ?", ingredientID, userID).
    Updates(map[string]interface{}{"name": name, "updated_at": time.Now().UTC()})
  if res.Error != nil {
    return res.Error
  }
  if res.RowsAffected == 0 {
    return gorm.ErrRecordNotFound
  }
  return nil
}

func (ir *ingredientRepo) Delete(ctx context.Context, tx *gorm.DB, userID, ingredientID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }
  res := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", ingredientID, userID).
    Delete(&types.Ingredient{})
  if res.Error != nil {
    return res.Error
  }
  if res.RowsAffected == 0 {
    return gorm.ErrRecordNotFound
  }
  return transaction.WithContext(ctx).
    Exec("DELETE FROM recipe_ingredient WHERE ingredient_id = ?", ingredientID).Error
}
