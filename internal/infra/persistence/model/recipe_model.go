package model

import (
	"time"

	"gorm.io/datatypes"
)

// RecipeModel mirrors the 'recipes' table. Ingredients and steps are stored
// as JSONB arrays; they are ordered lists, not relational data.
type RecipeModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	UserID      int64  `gorm:"not null;index"`
	Title       string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text"`
	Category    string `gorm:"type:varchar(50);index"`
	ImageURL    string `gorm:"type:varchar(512)"`
	Ingredients datatypes.JSONSlice[string]
	Steps       datatypes.JSONSlice[string]
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Comments []CommentModel `gorm:"foreignKey:RecipeID"`
}

// TableName explicitly sets the table name for GORM.
func (RecipeModel) TableName() string {
	return "recipes"
}
