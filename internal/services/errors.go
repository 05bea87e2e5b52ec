package services

import (
  "errors"
  "fmt"
  "sort"
  "strings"
)

// ErrNotFound covers both "id does not exist" and "id belongs to another
// user". Callers must not be able to tell the two apart.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized covers missing/invalid credentials and tokens.
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError carries field-level messages and is raised before any
// persistence mutation begins.
type ValidationError struct {
  Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
  return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Add(field, message string) *ValidationError {
  if e.Fields == nil {
    e.Fields = map[string]string{}
  }
  e.Fields[field] = message
  return e
}

func (e *ValidationError) Error() string {
  if e == nil || len(e.Fields) == 0 {
    return "validation failed"
  }
  keys := make([]string, 0, len(e.Fields))
  for k := range e.Fields {
    keys = append(keys, k)
  }
  sort.Strings(keys)
  parts := make([]string, 0, len(keys))
  for _, k := range keys {
    parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
  }
  return "validation failed: " + strings.Join(parts, "; ")
}
