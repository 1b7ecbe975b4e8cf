package model

import (
	"time"
)

// CommentModel mirrors the 'comments' table.
type CommentModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	RecipeID  int64  `gorm:"not null;index"`
	UserID    int64  `gorm:"not null;index"`
	Body      string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CommentModel) TableName() string {
	return "comments"
}
