package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/recipebox/recipebox-backend/internal/services"
)

type IngredientHandler struct {
  ingredientService   services.IngredientService
}

func NewIngredientHandler(ingredientService services.IngredientService) *IngredientHandler {
  return &IngredientHandler{ingredientService: ingredientService}
}

func (ih *IngredientHandler) List(c *gin.Context) {
  assignedOnly := c.Query("assigned_only") == "1"
  ingredients, err := ih.ingredientService.List(c.Request.Context(), assignedOnly)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  views := make([]IngredientView, 0, len(ingredients))
  for _, ingredient := range ingredients {
    views = append(views, NewIngredientView(ingredient))
  }
  RespondOK(c, views)
}

func (ih *IngredientHandler) Update(c *gin.Context) {
  ingredientID, ok := idParam(c)
  if !ok {
    return
  }
  var input struct {
    Name    string  `json:"name"`
  }
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_payload", errors.New("invalid request body"))
    return
  }
  ingredient, err := ih.ingredientService.UpdateName(c.Request.Context(), ingredientID, input.Name)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, NewIngredientView(ingredient))
}

func (ih *IngredientHandler) Delete(c *gin.Context) {
  ingredientID, ok := idParam(c)
  if !ok {
    return
  }
  if err := ih.ingredientService.Delete(c.Request.Context(), ingredientID); err != nil {
    RespondServiceError(c, err)
    return
  }
  c.Status(http.StatusNoContent)
}
