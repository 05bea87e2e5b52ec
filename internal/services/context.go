package services

import (
  "context"
  "github.com/google/uuid"
  "github.com/recipebox/recipebox-backend/internal/requestdata"
)

// userIDFromContext pulls the authenticated identity set by the auth
// middleware. Every scoped operation starts here; there is no way to pass a
// user id in from the outside.
func userIDFromContext(ctx context.Context) (uuid.UUID, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return uuid.Nil, ErrUnauthorized
  }
  return rd.UserID, nil
}
