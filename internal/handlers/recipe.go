package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/recipebox/recipebox-backend/internal/logger"
  "github.com/recipebox/recipebox-backend/internal/services"
)

type RecipeHandler struct {
  log           *logger.Logger
  recipeService services.RecipeService
  publicService services.PublicRecipeService
}

func NewRecipeHandler(log *logger.Logger, recipeService services.RecipeService, publicService services.PublicRecipeService) *RecipeHandler {
  handlerLog := log.With("handler", "RecipeHandler")
  return &RecipeHandler{log: handlerLog, recipeService: recipeService, publicService: publicService}
}

func (rh *RecipeHandler) Create(c *gin.Context) {
  var input services.CreateRecipeInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_payload", errors.New("invalid request body"))
    return
  }
  recipe, err := rh.recipeService.Create(c.Request.Context(), input)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondCreated(c, NewRecipeDetail(recipe))
}

func (rh *RecipeHandler) List(c *gin.Context) {
  recipes, err := rh.recipeService.List(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, NewRecipeSummaryList(recipes))
}

func (rh *RecipeHandler) Get(c *gin.Context) {
  recipeID, ok := idParam(c)
  if !ok {
    return
  }
  recipe, err := rh.recipeService.Get(c.Request.Context(), recipeID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, NewRecipeDetail(recipe))
}

func (rh *RecipeHandler) Update(c *gin.Context) {
  recipeID, ok := idParam(c)
  if !ok {
    return
  }
  var input services.UpdateRecipeInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_payload", errors.New("invalid request body"))
    return
  }
  recipe, err := rh.recipeService.Update(c.Request.Context(), recipeID, input)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, NewRecipeDetail(recipe))
}

func (rh *RecipeHandler) Delete(c *gin.Context) {
  recipeID, ok := idParam(c)
  if !ok {
    return
  }
  if err := rh.recipeService.Delete(c.Request.Context(), recipeID); err != nil {
    RespondServiceError(c, err)
    return
  }
  c.Status(http.StatusNoContent)
}

func (rh *RecipeHandler) UploadImage(c *gin.Context) {
  recipeID, ok := idParam(c)
  if !ok {
    return
  }
  fileHeader, err := c.FormFile("image")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "image_required", errors.New("image file is required"))
    return
  }
  file, err := fileHeader.Open()
  if err != nil {
    RespondError(c, http.StatusBadRequest, "image_unreadable", errors.New("image file could not be read"))
    return
  }
  defer file.Close()

  recipe, err := rh.recipeService.SaveImage(c.Request.Context(), recipeID, fileHeader.Filename, file)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"id": recipe.ID, "image": recipe.ImageURL})
}

func (rh *RecipeHandler) PublicList(c *gin.Context) {
  recipes, err := rh.publicService.List(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, NewRecipeSummaryList(recipes))
}
