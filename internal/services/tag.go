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

type TagService interface {
  List(ctx context.Context, assignedOnly bool) ([]*types.Tag, error)
  UpdateName(ctx context.Context, tagID uuid.UUID, name string) (*types.Tag, error)
  Delete(ctx context.Context, tagID uuid.UUID) error
}

type tagService struct {
  db      *gorm.DB
  log     *logger.Logger
  tagRepo repos.TagRepo
}

func NewTagService(db *gorm.DB, baseLog *logger.Logger, tagRepo repos.TagRepo) TagService {
  serviceLog := baseLog.With("service", "TagService")
  return &tagService{db: db, log: serviceLog, tagRepo: tagRepo}
}

func (ts *tagService) List(ctx context.Context, assignedOnly bool) ([]*types.Tag, error) {
  userID, err := userIDFromContext(ctx)
  if err != nil {
    return nil, err
  }
  tags, err := ts.tagRepo.ListByUser(ctx, nil, userID, assignedOnly)
  if err != nil {
    return nil, fmt.Errorf("list tags: %w", err)
  }
  return tags, nil
}

func (ts *tagService) UpdateName(ctx context.Context, tagID uuid.UUID, name string) (*types.Tag, error) {
  userID, err := userIDFromContext(ctx)
  if err != nil {
    return nil, err
  }
  name = normalization.ParseName(name)
  if name == "" {
    return nil, NewValidationError("name", "must not be blank")
  }

  if err := ts.tagRepo.UpdateName(ctx, nil, userID, tagID, name); err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, ErrNotFound
    }
    if repos.IsUniqueViolation(err) {
      return nil, NewValidationError("name", "already exists")
    }
    return nil, fmt.Errorf("update tag: %w", err)
  }
  tag, err := ts.tagRepo.GetByID(ctx, nil, userID, tagID)
  if err != nil {
    return nil, fmt.Errorf("reload tag: %w", err)
  }
  return tag, nil
}

func (ts *tagService) Delete(ctx context.Context, tagID uuid.UUID) error {
  userID, err := userIDFromContext(ctx)
  if err != nil {
    return err
  }
  if err := ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return ts.tagRepo.Delete(ctx, tx, userID, tagID)
  }); err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return ErrNotFound
    }
    return fmt.Errorf("delete tag: %w", err)
  }
  return nil
}
