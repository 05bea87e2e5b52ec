package services

import (
  "context"
  "errors"
  "fmt"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/recipebox/recipebox-backend/internal/logger"
  "github.com/recipebox/recipebox-backend/internal/normalization"
  "github.com/recipebox/recipebox-backend/internal/repos"
  "github.com/recipebox/recipebox-backend/internal/types"
)

type IngredientService interface {
  List(ctx context.Context, assignedOnly bool) ([]*types.Ingredient, error)
  UpdateName(ctx context.Context, ingredientID uuid.UUID, name string) (*types.Ingredient, error)
  Delete(ctx context.Context, ingredientID uuid.UUID) error
}

type ingredientService struct {
  db             *gorm.DB
  log            *logger.Logger
  ingredientRepo repos.IngredientRepo
}

func NewIngredientService(db *gorm.DB, baseLog *logger.Logger, ingredientRepo repos.IngredientRepo) IngredientService {
  serviceLog := baseLog.With("service", "IngredientService")
  return &ingredientService{db: db, log: serviceLog, ingredientRepo: ingredientRepo}
}

func (is *ingredientService) List(ctx context.Context, assignedOnly bool) ([]*types.Ingredient, error) {
  userID, err := userIDFromContext(ctx)
  if err != nil {
    return nil, err
  }
  ingredients, err := is.ingredientRepo.ListByUser(ctx, nil, userID, assignedOnly)
  if err != nil {
    return nil, fmt.Errorf("list ingredients: %w", err)
  }
  return ingredients, nil
}

func (is *ingredientService) UpdateName(ctx context.Context, ingredientID uuid.UUID, name string) (*types.Ingredient, error) {
  userID, err := userIDFromContext(ctx)
  if err != nil {
    return nil, err
  }
  name = normalization.ParseName(name)
  if name == "" {
    return nil, NewValidationError("name", "must not be blank")
  }

  if err := is.ingredientRepo.UpdateName(ctx, nil, userID, ingredientID, name); err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, ErrNotFound
    }
    if repos.IsUniqueViolation(err) {
      return nil, NewValidationError("name", "already exists")
    }
    return nil, fmt.Errorf("update ingredient: %w", err)
  }
  ingredient, err := is.ingredientRepo.GetByID(ctx, nil, userID, ingredientID)
  if err != nil {
    return nil, fmt.Errorf("reload ingredient: %w", err)
  }
  return ingredient, nil
}

func (is *ingredientService) Delete(ctx context.Context, ingredientID uuid.UUID) error {
  userID, err := userIDFromContext(ctx)
  if err != nil {
    return err
  }
  if err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return is.ingredientRepo.Delete(ctx, tx, userID, ingredientID)
  }); err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return ErrNotFound
    }
    return fmt.Errorf("delete ingredient: %w", err)
  }
  return nil
}
