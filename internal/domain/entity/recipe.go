// Package entity contains the core business objects of the project.
package entity

import "time"

// Recipe represents a published recipe owned by a single user.
type Recipe struct {
	ID          int64
	UserID      int64 // The owning user. Only the owner may modify or delete the recipe.
	Title       string
	Description string
	Category    string
	ImageURL    string
	Ingredients []string
	Steps       []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
