package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/recipebox/recipebox-backend/internal/logger"
  "github.com/recipebox/recipebox-backend/internal/types"
)

type TagRepo interface {
  GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string) (*types.Tag, error)
  GetByID(ctx context.Context, tx *gorm.DB, userID, tagID uuid.UUID) (*types.Tag, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, assignedOnly bool) ([]*types.Tag, error)
  UpdateName(ctx context.Context, tx *gorm.DB, userID, tagID uuid.UUID, name string) error
  Delete(ctx context.Context, tx *gorm.DB, userID, tagID uuid.UUID) error
}

type tagRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
  repoLog := baseLog.With("repo", "TagRepo")
  return &tagRepo{db: db, log: repoLog}
}

// GetOrCreate resolves (userID, name) to exactly one row. The insert rides on
// the idx_tag_user_name unique index: ON CONFLICT DO NOTHING, then fetch.
// Two racing callers both end up reading the single surviving row.
func (tr *tagRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string) (*types.Tag, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  now := time.Now().UTC()
  row := &types.Tag{
    ID:        uuid.New(),
    UserID:    userID,
    Name:      name,
    CreatedAt: now,
    UpdatedAt: now,
  }
  res := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
      DoNothing: true,
    }).
    Create(row)
  if res.Error != nil && !IsUniqueViolation(res.Error) {
    return nil, res.Error
  }
  if res.Error == nil && res.RowsAffected > 0 {
    return row, nil
  }

  var existing types.Tag
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND name = ?", userID, name).
    Take(&existing).Error; err != nil {
    return nil, err
  }
  return &existing, nil
}

func (tr *tagRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, tagID uuid.UUID) (*types.Tag, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  var result types.Tag
  if err := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", tagID, userID).
    Take(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (tr *tagRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, assignedOnly bool) ([]*types.Tag, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var results []*types.Tag
  query := transaction.WithContext(ctx).
    Model(&types.Tag{}).
    Where("tag.user_id = ?", userID)
  if assignedOnly {
    // Join fan-out would duplicate a tag used by several recipes; DISTINCT
    // restores set semantics.
    query = query.
      Joins("JOIN recipe_tag ON recipe_tag.tag_id = tag.id").
      Joins("JOIN recipe ON recipe.id = recipe_tag.recipe_id AND recipe.user_id = ?", userID).
      Distinct("tag.*")
  }
  if err := query.Order("tag.name DESC").Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (tr *tagRepo) UpdateName(ctx context.Context, tx *gorm.DB, userID, tagID uuid.UUID, name string) error {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  res := transaction.WithContext(ctx).
    Model(&types.Tag{}).
    Where("id = ? AND user_id = ?", tagID, userID).
    Updates(map[string]interface{}{"name": name, "updated_at": time.Now().UTC()})
  if res.Error != nil {
    return res.Error
  }
  if res.RowsAffected == 0 {
    return gorm.ErrRecordNotFound
  }
  return nil
}

func (tr *tagRepo) Delete(ctx context.Context, tx *gorm.DB, userID, tagID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  res := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", tagID, userID).
    Delete(&types.Tag{})
  if res.Error != nil {
    return res.Error
  }
  if res.RowsAffected == 0 {
    return gorm.ErrRecordNotFound
  }
  return transaction.WithContext(ctx).
    Exec("DELETE FROM recipe_tag WHERE tag_id = ?", tagID).Error
}
