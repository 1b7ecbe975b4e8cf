// Package entity contains the core business objects of the project.
package entity

import "time"

// Comment represents a user's comment on a recipe. The comment author is its
// owner; only the author may delete it.
type Comment struct {
	ID        int64
	RecipeID  int64
	UserID    int64
	Body      string
	CreatedAt time.Time
}
