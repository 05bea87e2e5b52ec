package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "io"
  "path"
  "strconv"
  "strings"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/recipebox/recipebox-backend/internal/logger"
  "github.com/recipebox/recipebox-backend/internal/normalization"
  "github.com/recipebox/recipebox-backend/internal/repos"
  "github.com/recipebox/recipebox-backend/internal/types"
)

type NameInput struct {
  Name      string  `json:"name"`
}

type CreateRecipeInput struct {
  Title         string            `json:"title"`
  TimeMinutes   int               `json:"time_minutes"`
  Price         string            `json:"price"`
  Link          string            `json:"link"`
  Description   string            `json:"description"`
  Metadata      json.RawMessage   `json:"metadata"`
  Tags          []NameInput       `json:"tags"`
  Ingredients   []NameInput       `json:"ingredients"`
}

// UpdateRecipeInput uses pointer fields for presence: a nil field is left
// untouched, a present Tags/Ingredients list (even empty) replaces the
// associations wholesale.
type UpdateRecipeInput struct {
  Title         *string           `json:"title"`
  TimeMinutes   *int              `json:"time_minutes"`
  Price         *string           `json:"price"`
  Link          *string           `json:"link"`
  Description   *string           `json:"description"`
  Metadata      json.RawMessage   `json:"metadata"`
  Tags          *[]NameInput      `json:"tags"`
  Ingredients   *[]NameInput      `json:"ingredients"`
}

type RecipeService interface {
  Create(ctx context.Context, input CreateRecipeInput) (*types.Recipe, error)
  Update(ctx context.Context, recipeID uuid.UUID, input UpdateRecipeInput) (*types.Recipe, error)
  Get(ctx context.Context, recipeID uuid.UUID) (*types.Recipe, error)
  List(ctx context.Context) ([]*types.Recipe, error)
  Delete(ctx context.Context, recipeID uuid.UUID) error
  SaveImage(ctx context.Context, recipeID uuid.UUID, filename string, file io.Reader) (*types.Recipe, error)
}

type recipeService struct {
  db             *gorm.DB
  log            *logger.Logger
  recipeRepo     repos.RecipeRepo
  tagRepo        repos.TagRepo
  ingredientRepo repos.IngredientRepo
  bucketService  BucketService
}

func NewRecipeService(
  db *gorm.DB,
  baseLog *logger.Logger,
  recipeRepo repos.RecipeRepo,
  tagRepo repos.TagRepo,
  ingredientRepo repos.IngredientRepo,
  bucketService BucketService,
) RecipeService {
  serviceLog := baseLog.With("service", "RecipeService")
  return &recipeService{
    db:             db,
    log:            serviceLog,
    recipeRepo:     recipeRepo,
    tagRepo:        tagRepo,
    ingredientRepo: ingredientRepo,
    bucketService:  bucketService,
  }
}

// parsePrice accepts a non-negative decimal string with at most two decimal
// places and returns it unchanged, so "3.00" round-trips exactly.
func parsePrice(raw string) (string, error) {
  price := strings.TrimSpace(raw)
  if price == "" {
    return "", fmt.Errorf("required")
  }
  if strings.HasPrefix(price, "-") {
    return "", fmt.Errorf("must not be negative")
  }
  whole, frac, hasFrac := strings.Cut(price, ".")
  if whole == "" {
    return "", fmt.Errorf("must be a decimal number")
  }
  if _, err := strconv.ParseUint(whole, 10, 32); err != nil {
    return "", fmt.Errorf("must be a decimal number")
  }
  if hasFrac {
    if len(frac) == 0 || len(frac) > 2 {
      return "", fmt.Errorf("must have at most two decimal places")
    }
    if _, err := strconv.ParseUint(frac, 10, 8); err != nil {
      return "", fmt.Errorf("must be a decimal number")
    }
  }
  return price, nil
}

func validateCreateRecipeInput(input *CreateRecipeInput) error {
  vErr := &ValidationError{}
  input.Title = strings.TrimSpace(input.Title)
  if input.Title == "" {
    vErr.Add("title", "must not be blank")
  }
  if input.TimeMinutes < 0 {
    vErr.Add("time_minutes", "must not be negative")
  }
  if price, err := parsePrice(input.Price); err != nil {
    vErr.Add("price", err.Error())
  } else {
    input.Price = price
  }
  if len(vErr.Fields) > 0 {
    return vErr
  }
  return nil
}

func validateUpdateRecipeInput(input *UpdateRecipeInput) error {
  vErr := &ValidationError{}
  if input.Title != nil {
    trimmed := strings.TrimSpace(*input.Title)
    if trimmed == "" {
      vErr.Add("title", "must not be blank")
    }
    *input.Title = trimmed
  }
  if input.TimeMinutes != nil && *input.TimeMinutes < 0 {
    vErr.Add("time_minutes", "must not be negative")
  }
  if input.Price != nil {
    if price, err := parsePrice(*input.Price); err != nil {
      vErr.Add("price", err.Error())
    } else {
      *input.Price = price
    }
  }
  if len(vErr.Fields) > 0 {
    return vErr
  }
  return nil
}

func (rs *recipeService) Create(ctx context.Context, input CreateRecipeInput) (*types.Recipe, error) {
  userID, err := userIDFromContext(ctx)
  if err != nil {
    return nil, err
  }
  if vErr := validateCreateRecipeInput(&input); vErr != nil {
    return nil, vErr
  }

  var out *types.Recipe
  if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    now := txNow()
    recipe := &types.Recipe{
      ID:          uuid.New(),
      UserID:      userID,
      Title:       input.Title,
      TimeMinutes: input.TimeMinutes,
      Price:       input.Price,
      Link:        input.Link,
      Description: input.Description,
      Metadata:    metadataColumn(input.Metadata),
      CreatedAt:   now,
      UpdatedAt:   now,
    }
    if _, err := rs.recipeRepo.Create(ctx, tx, recipe); err != nil {
      return fmt.Errorf("create recipe: %w", err)
    }
    if err := rs.attachTags(ctx, tx, recipe, input.Tags); err != nil {
      return err
    }
    if err := rs.attachIngredients(ctx, tx, recipe, input.Ingredients); err != nil {
      return err
    }
    loaded, err := rs.recipeRepo.GetByID(ctx, tx, userID, recipe.ID)
    if err != nil {
      return fmt.Errorf("reload recipe: %w", err)
    }
    out = loaded
    return nil
  }); err != nil {
    rs.log.Error("Create recipe failed", "error", err, "user_id", userID)
    return nil, err
  }
  return out, nil
}

func (rs *recipeService) Update(ctx context.Context, recipeID uuid.UUID, input UpdateRecipeInput) (*types.Recipe, error) {
  userID, err := userIDFromContext(ctx)
  if err != nil {
    return nil, err
  }
  if vErr := validateUpdateRecipeInput(&input); vErr != nil {
    return nil, vErr
  }

  var out *types.Recipe
  if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    recipe, err := rs.recipeRepo.GetByID(ctx, tx, userID, recipeID)
    if err != nil {
      if errors.Is(err, gorm.ErrRecordNotFound) {
        return ErrNotFound
      }
      return fmt.Errorf("load recipe: %w", err)
    }

    if input.Title != nil {
      recipe.Title = *input.Title
    }
    if input.TimeMinutes != nil {
      recipe.TimeMinutes = *input.TimeMinutes
    }
    if input.Price != nil {
      recipe.Price = *input.Price
    }
    if input.Link != nil {
      recipe.Link = *input.Link
    }
    if input.Description != nil {
      recipe.Description = *input.Description
    }
    if input.Metadata != nil {
      recipe.Metadata = metadataColumn(input.Metadata)
    }
    recipe.UpdatedAt = txNow()
    if err := rs.recipeRepo.Update(ctx, tx, recipe); err != nil {
      return fmt.Errorf("update recipe: %w", err)
    }

    if input.Tags != nil {
      if err := rs.attachTags(ctx, tx, recipe, *input.Tags); err != nil {
        return err
      }
    }
    if input.Ingredients != nil {
      if err := rs.attachIngredients(ctx, tx, recipe, *input.Ingredients); err != nil {
        return err
      }
    }

    loaded, err := rs.recipeRepo.GetByID(ctx, tx, userID, recipeID)
    if err != nil {
      return fmt.Errorf("reload recipe: %w", err)
    }
    out = loaded
    return nil
  }); err != nil {
    if !errors.Is(err, ErrNotFound) {
      rs.log.Error("Update recipe failed", "error", err, "user_id", userID, "recipe_id", recipeID)
    }
    return nil, err
  }
  return out, nil
}

func (rs *recipeService) Get(ctx context.Context, recipeID uuid.UUID) (*types.Recipe, error) {
  userID, err := userIDFromContext(ctx)
  if err != nil {
    return nil, err
  }
  recipe, err := rs.recipeRepo.GetByID(ctx, nil, userID, recipeID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, ErrNotFound
    }
    return nil, fmt.Errorf("get recipe: %w", err)
  }
  return recipe, nil
}

func (rs *recipeService) List(ctx context.Context) ([]*types.Recipe, error) {
  userID, err := userIDFromContext(ctx)
  if err != nil {
    return nil, err
  }
  recipes, err := rs.recipeRepo.ListByUser(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("list recipes: %w", err)
  }
  return recipes, nil
}

func (rs *recipeService) Delete(ctx context.Context, recipeID uuid.UUID) error {
  userID, err := userIDFromContext(ctx)
  if err != nil {
    return err
  }

  var staleImageKey string
  if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    recipe, err := rs.recipeRepo.GetByID(ctx, tx, userID, recipeID)
    if err != nil {
      if errors.Is(err, gorm.ErrRecordNotFound) {
        return ErrNotFound
      }
      return fmt.Errorf("load recipe: %w", err)
    }
    staleImageKey = recipe.ImageBucketKey
    if err := rs.recipeRepo.Delete(ctx, tx, userID, recipeID); err != nil {
      if errors.Is(err, gorm.ErrRecordNotFound) {
        return ErrNotFound
      }
      return fmt.Errorf("delete recipe: %w", err)
    }
    return nil
  }); err != nil {
    return err
  }

  if staleImageKey != "" && rs.bucketService != nil {
    if err := rs.bucketService.DeleteFile(ctx, staleImageKey); err != nil {
      rs.log.Warn("Stale recipe image not deleted", "error", err, "key", staleImageKey)
    }
  }
  return nil
}

func (rs *recipeService) SaveImage(ctx context.Context, recipeID uuid.UUID, filename string, file io.Reader) (*types.Recipe, error) {
  userID, err := userIDFromContext(ctx)
  if err != nil {
    return nil, err
  }
  if rs.bucketService == nil {
    return nil, fmt.Errorf("image storage not configured")
  }

  recipe, err := rs.recipeRepo.GetByID(ctx, nil, userID, recipeID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, ErrNotFound
    }
    return nil, fmt.Errorf("load recipe: %w", err)
  }

  ext := strings.ToLower(path.Ext(filename))
  if ext == "" {
    ext = ".jpg"
  }
  key := fmt.Sprintf("recipes/%s/%s%s", recipeID, uuid.NewString(), ext)
  if err := rs.bucketService.UploadFile(ctx, key, file); err != nil {
    return nil, fmt.Errorf("upload image: %w", err)
  }
  imageURL := rs.bucketService.GetPublicURL(key)
  if err := rs.recipeRepo.UpdateImage(ctx, nil, userID, recipeID, key, imageURL); err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, ErrNotFound
    }
    return nil, fmt.Errorf("persist image reference: %w", err)
  }

  if recipe.ImageBucketKey != "" && recipe.ImageBucketKey != key {
    if err := rs.bucketService.DeleteFile(ctx, recipe.ImageBucketKey); err != nil {
      rs.log.Warn("Previous recipe image not deleted", "error", err, "key", recipe.ImageBucketKey)
    }
  }

  loaded, err := rs.recipeRepo.GetByID(ctx, nil, userID, recipeID)
  if err != nil {
    return nil, fmt.Errorf("reload recipe: %w", err)
  }
  return loaded, nil
}

// attachTags resolves each name through get-or-create in the requester's
// scope and replaces the recipe's tag set.
func (rs *recipeService) attachTags(ctx context.Context, tx *gorm.DB, recipe *types.Recipe, inputs []NameInput) error {
  resolved := make([]*types.Tag, 0, len(inputs))
  seen := map[string]struct{}{}
  for _, in := range inputs {
    name := normalization.ParseName(in.Name)
    if name == "" {
      continue
    }
    if _, dup := seen[name]; dup {
      continue
    }
    seen[name] = struct{}{}
    tag, err := rs.tagRepo.GetOrCreate(ctx, tx, recipe.UserID, name)
    if err != nil {
      return fmt.Errorf("resolve tag %q: %w", name, err)
    }
    resolved = append(resolved, tag)
  }
  if err := rs.recipeRepo.ReplaceTags(ctx, tx, recipe, resolved); err != nil {
    return fmt.Errorf("replace tags: %w", err)
  }
  return nil
}

func (rs *recipeService) attachIngredients(ctx context.Context, tx *gorm.DB, recipe *types.Recipe, inputs []NameInput) error {
  resolved := make([]*types.Ingredient, 0, len(inputs))
  seen := map[string]struct{}{}
  for _, in := range inputs {
    name := normalization.ParseName(in.Name)
    if name == "" {
      continue
    }
    if _, dup := seen[name]; dup {
      continue
    }
    seen[name] = struct{}{}
    ingredient, err := rs.ingredientRepo.GetOrCreate(ctx, tx, recipe.UserID, name)
    if err != nil {
      return fmt.Errorf("resolve ingredient %q: %w", name, err)
    }
    resolved = append(resolved, ingredient)
  }
  if err := rs.recipeRepo.ReplaceIngredients(ctx, tx, recipe, resolved); err != nil {
    return fmt.Errorf("replace ingredients: %w", err)
  }
  return nil
}
