package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/recipebox/recipebox-backend/internal/services"
)

type AuthHandler struct {
  authService   services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
  return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
  var input services.RegisterInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_payload", errors.New("invalid request body"))
    return
  }
  user, err := ah.authService.RegisterUser(c.Request.Context(), input)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondCreated(c, gin.H{"user": user})
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var input struct {
    Email     string  `json:"email"`
    Password  string  `json:"password"`
  }
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_payload", errors.New("invalid request body"))
    return
  }
  pair, err := ah.authService.LoginUser(c.Request.Context(), input.Email, input.Password)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, pair)
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
  var input struct {
    RefreshToken  string  `json:"refresh_token"`
  }
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_payload", errors.New("invalid request body"))
    return
  }
  pair, err := ah.authService.RefreshUser(c.Request.Context(), input.RefreshToken)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, pair)
}

func (ah *AuthHandler) Logout(c *gin.Context) {
  if err := ah.authService.LogoutUser(c.Request.Context()); err != nil {
    RespondServiceError(c, err)
    return
  }
  c.Status(http.StatusNoContent)
}
