package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Recipe struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	TimeMinutes int            `gorm:"column:time_minutes;not null" json:"time_minutes"`
	// Price is a canonical decimal string ("3.00"); validated before any
	// write so the column never holds a malformed or negative value.
	Price          string         `gorm:"column:price;type:varchar(16);not null" json:"price"`
	Link           string         `gorm:"column:link" json:"link"`
	Description    string         `gorm:"column:description" json:"description"`
	ImageBucketKey string         `gorm:"column:image_bucket_key" json:"-"`
	ImageURL       string         `gorm:"column:image_url" json:"image"`
	Metadata       datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	Tags           []*Tag         `gorm:"many2many:recipe_tag;constraint:OnDelete:CASCADE" json:"tags"`
	Ingredients    []*Ingredient  `gorm:"many2many:recipe_ingredient;constraint:OnDelete:CASCADE" json:"ingredients"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Recipe) TableName() string { return "recipe" }
