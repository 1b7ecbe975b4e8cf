// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/service"
)

// defaultForbiddenWords are substrings a password may never contain,
// matched case-insensitively.
var defaultForbiddenWords = []string{"password", "admin", "qwerty", "123456"}

// StrengthPolicy holds the password strength rules the hasher enforces.
type StrengthPolicy struct {
	MinLength        int
	MaxLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireNumbers   bool
	RequireSpecial   bool
}

// DefaultStrengthPolicy returns the rules applied when none are configured.
func DefaultStrengthPolicy() StrengthPolicy {
	return StrengthPolicy{
		MinLength:        8,
		MaxLength:        64,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumbers:   true,
		RequireSpecial:   true,
	}
}

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	policy StrengthPolicy
}

// NewBcryptHasher is the constructor for bcryptHasher using the default bcrypt cost.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher() service.PasswordHasher {
	return NewBcryptHasherWithCost(bcrypt.DefaultCost)
}

// NewBcryptHasherWithCost creates a hasher with an explicit cost factor.
// Costs outside bcrypt's supported range fall back to the default.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return NewBcryptHasherWithPolicy(cost, DefaultStrengthPolicy())
}

// NewBcryptHasherWithPolicy creates a hasher with an explicit cost factor and
// strength policy. Zero-valued length bounds fall back to the defaults;
// bcrypt silently truncates inputs beyond 72 bytes, so the maximum length is
// always capped below that and the whole input stays significant.
func NewBcryptHasherWithPolicy(cost int, policy StrengthPolicy) service.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	defaults := DefaultStrengthPolicy()
	if policy.MinLength <= 0 {
		policy.MinLength = defaults.MinLength
	}
	if policy.MaxLength <= 0 || policy.MaxLength > defaults.MaxLength {
		policy.MaxLength = defaults.MaxLength
	}

	return &bcryptHasher{cost: cost, policy: policy}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation, so hashing the same
// password twice yields different digests.
// The plaintext is strength-validated before any hashing takes place;
// an empty password never reaches bcrypt.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if err := h.ValidatePasswordStrength(password); err != nil {
		return "", err
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength verifies the plaintext against the strength rules.
// Login never calls this; existing hashes stay verifiable if rules tighten.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	if len(password) < h.policy.MinLength {
		return domainerrors.ErrPasswordStrength.WrapMessage("must be at least " + strconv.Itoa(h.policy.MinLength) + " characters long")
	}
	if len(password) > h.policy.MaxLength {
		return domainerrors.ErrPasswordStrength.WrapMessage("must be at most " + strconv.Itoa(h.policy.MaxLength) + " characters long")
	}
	if h.policy.RequireLowercase && !h.hasLowercase(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("must contain at least one lowercase letter")
	}
	if h.policy.RequireUppercase && !h.hasUppercase(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("must contain at least one uppercase letter")
	}
	if h.policy.RequireNumbers && !h.hasNumbers(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("must contain at least one number")
	}
	if h.policy.RequireSpecial && !h.hasSpecialChars(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("must contain at least one special character")
	}
	if h.containsForbiddenWords(password, defaultForbiddenWords) {
		return domainerrors.ErrPasswordForbiddenWords.WrapMessage("contains forbidden words")
	}

	return nil
}

func (h *bcryptHasher) hasUppercase(s string) bool {
	return strings.ContainsFunc(s, unicode.IsUpper)
}

func (h *bcryptHasher) hasLowercase(s string) bool {
	return strings.ContainsFunc(s, unicode.IsLower)
}

func (h *bcryptHasher) hasNumbers(s string) bool {
	return strings.ContainsFunc(s, unicode.IsDigit)
}

func (h *bcryptHasher) hasSpecialChars(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func (h *bcryptHasher) containsForbiddenWords(password string, words []string) bool {
	lowered := strings.ToLower(password)
	for _, word := range words {
		if strings.Contains(lowered, word) {
			return true
		}
	}

	return false
}
