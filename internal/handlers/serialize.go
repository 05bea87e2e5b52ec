package handlers

import (
  "encoding/json"
  "github.com/google/uuid"
  "github.com/recipebox/recipebox-backend/internal/types"
)

type TagView struct {
  ID    uuid.UUID `json:"id"`
  Name  string    `json:"name"`
}

type IngredientView struct {
  ID    uuid.UUID `json:"id"`
  Name  string    `json:"name"`
}

// RecipeSummary is the base field projection shared by the list and public
// endpoints. RecipeDetail layers the detail-only fields on top of it rather
// than re-declaring the set.
type RecipeSummary struct {
  ID          uuid.UUID         `json:"id"`
  Title       string            `json:"title"`
  TimeMinutes int               `json:"time_minutes"`
  Price       string            `json:"price"`
  Link        string            `json:"link,omitempty"`
  Image       string            `json:"image,omitempty"`
  Tags        []TagView         `json:"tags"`
  Ingredients []IngredientView  `json:"ingredients"`
}

type RecipeDetail struct {
  RecipeSummary
  Description string            `json:"description"`
  Metadata    json.RawMessage   `json:"metadata,omitempty"`
}

func NewTagView(tag *types.Tag) TagView {
  return TagView{ID: tag.ID, Name: tag.Name}
}

func NewIngredientView(ingredient *types.Ingredient) IngredientView {
  return IngredientView{ID: ingredient.ID, Name: ingredient.Name}
}

func NewRecipeSummary(recipe *types.Recipe) RecipeSummary {
  tags := make([]TagView, 0, len(recipe.Tags))
  for _, tag := range recipe.Tags {
    tags = append(tags, NewTagView(tag))
  }
  ingredients := make([]IngredientView, 0, len(recipe.Ingredients))
  for _, ingredient := range recipe.Ingredients {
    ingredients = append(ingredients, NewIngredientView(ingredient))
  }
  return RecipeSummary{
    ID:          recipe.ID,
    Title:       recipe.Title,
    TimeMinutes: recipe.TimeMinutes,
    Price:       recipe.Price,
    Link:        recipe.Link,
    Image:       recipe.ImageURL,
    Tags:        tags,
    Ingredients: ingredients,
  }
}

func NewRecipeDetail(recipe *types.Recipe) RecipeDetail {
  return RecipeDetail{
    RecipeSummary: NewRecipeSummary(recipe),
    Description:   recipe.Description,
    Metadata:      json.RawMessage(recipe.Metadata),
  }
}

func NewRecipeSummaryList(recipes []*types.Recipe) []RecipeSummary {
  out := make([]RecipeSummary, 0, len(recipes))
  for _, recipe := range recipes {
    out = append(out, NewRecipeSummary(recipe))
  }
  return out
}
