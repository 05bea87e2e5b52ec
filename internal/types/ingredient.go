package types

import (
	"time"

	"github.com/google/uuid"
)

// Ingredient mirrors Tag: user-scoped reusable vocabulary, deduplicated on
// (user_id, name).
type Ingredient struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_ingredient_user_name,unique,priority:1" json:"user_id"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Name   string    `gorm:"column:name;not null;index:idx_ingredient_user_name,unique,priority:2" json:"name"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Ingredient) TableName() string { return "ingredient" }
