package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/recipebox/recipebox-backend/internal/services"
)

type TagHandler struct {
  tagService    services.TagService
}

func NewTagHandler(tagService services.TagService) *TagHandler {
  return &TagHandler{tagService: tagService}
}

func (th *TagHandler) List(c *gin.Context) {
  assignedOnly := c.Query("assigned_only") == "1"
  tags, err := th.tagService.List(c.Request.Context(), assignedOnly)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  views := make([]TagView, 0, len(tags))
  for _, tag := range tags {
    views = append(views, NewTagView(tag))
  }
  RespondOK(c, views)
}

func (th *TagHandler) Update(c *gin.Context) {
  tagID, ok := idParam(c)
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
  tag, err := th.tagService.UpdateName(c.Request.Context(), tagID, input.Name)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, NewTagView(tag))
}

func (th *TagHandler) Delete(c *gin.Context) {
  tagID, ok := idParam(c)
  if !ok {
    return
  }
  if err := th.tagService.Delete(c.Request.Context(), tagID); err != nil {
    RespondServiceError(c, err)
    return
  }
  c.Status(http.StatusNoContent)
}
