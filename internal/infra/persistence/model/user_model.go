package model

import (
	"time"
)

// UserModel mirrors the 'users' table. PostgreSQL generates IDs via bigserial.
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type UserModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(255);unique;not null"`
	AvatarURL    string `gorm:"type:varchar(512)"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Recipes  []RecipeModel  `gorm:"foreignKey:UserID"`
	Comments []CommentModel `gorm:"foreignKey:UserID"`
	Sessions []SessionModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
