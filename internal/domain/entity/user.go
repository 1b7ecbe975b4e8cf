// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"
)

// User is the core entity in the system, representing a unique "person" or "account".
type User struct {
	ID           int64     // The unique numeric identifier for the user.
	Username     string    // The user's public display name.
	Email        string    // The user's login identifier, stored in normalized form.
	AvatarURL    string    // Optional URL of the user's avatar image.
	PasswordHash string    // The bcrypt-hashed password. Never serialized to clients.
	CreatedAt    time.Time // Timestamp of when this user account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this user's data.
}

// Sanitized returns a copy of the user with credential material stripped,
// safe to hand to the delivery layer.
func (u *User) Sanitized() *User {
	clone := *u
	clone.PasswordHash = ""

	return &clone
}

// NormalizeEmail canonicalizes an email address for storage and lookup.
// "  Alice@Example.COM " and "alice@example.com" identify the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
