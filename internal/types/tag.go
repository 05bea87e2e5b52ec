package types

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a per-user label for recipes. (user_id, name) is the natural key:
// the unique index backs the atomic get-or-create in repos.
type Tag struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_tag_user_name,unique,priority:1" json:"user_id"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Name   string    `gorm:"column:name;not null;index:idx_tag_user_name,unique,priority:2" json:"name"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Tag) TableName() string { return "tag" }
