package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/recipebox/recipebox-backend/internal/services"
)

// idParam treats a malformed id like a missing one: 404 either way, so
// nothing is leaked about what ids look like.
func idParam(c *gin.Context) (uuid.UUID, bool) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusNotFound, "not_found", errors.New("not found"))
    return uuid.Nil, false
  }
  return id, true
}

type APIError struct {
  Message     string            `json:"message"`
  Code        string            `json:"code,omitempty"`
  Fields      map[string]string `json:"fields,omitempty"`
}

type ErrorEnvelope struct {
  Error       APIError          `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, ErrorEnvelope{
    Error: APIError{
      Message: msg,
      Code:    code,
    },
  })
}

// RespondServiceError maps the services error taxonomy onto transport status
// codes. Anything unrecognized stays an opaque 500.
func RespondServiceError(c *gin.Context, err error) {
  var vErr *services.ValidationError
  switch {
  case errors.As(err, &vErr):
    c.JSON(http.StatusBadRequest, ErrorEnvelope{
      Error: APIError{
        Message: "validation failed",
        Code:    "validation_error",
        Fields:  vErr.Fields,
      },
    })
  case errors.Is(err, services.ErrNotFound):
    RespondError(c, http.StatusNotFound, "not_found", errors.New("not found"))
  case errors.Is(err, services.ErrUnauthorized):
    RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("unauthorized"))
  default:
    RespondError(c, http.StatusInternalServerError, "internal_error", errors.New("internal error"))
  }
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
  c.JSON(http.StatusCreated, payload)
}
