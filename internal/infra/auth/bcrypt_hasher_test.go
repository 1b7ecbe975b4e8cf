package auth

import (
	"testing"

	domainerrors "cookbook/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	strongPassword := "StrongSecret123!"
	hash, err := hasher.Hash(strongPassword)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, strongPassword, hash)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(strongPassword, hash))
}

func TestBcryptHasher_HashIsSalted(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)
	password := "StrongSecret123!"

	first, err := hasher.Hash(password)
	assert.NoError(t, err)
	second, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Same plaintext, different digests; both still verify.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check(password, first))
	assert.True(t, hasher.Check(password, second))
}

func TestBcryptHasher_HashRejectsEmptyPassword(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	hash, err := hasher.Hash("")
	assert.Error(t, err)
	assert.Empty(t, hash)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))
}

func TestBcryptHasher_HashWithWeakPassword(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	weakPasswords := []string{
		"123",          // Too short
		"password",     // Forbidden word
		"SECRETSX123!", // No lowercase
		"secretsx123!", // No uppercase
		"SecretsAbc!",  // No numbers
		"Secrets1234",  // No special characters
	}

	for _, weakPassword := range weakPasswords {
		_, err := hasher.Hash(weakPassword)
		assert.Error(t, err, "Expected error for weak password: %s", weakPassword)
	}
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)
	password := "StrongSecret123!"

	hash, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("WrongSecret123!", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Test with invalid hash
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := NewBcryptHasher()

	validPasswords := []string{
		"StrongSecret123!",
		"MySecure@Phrase1",
		"Complex#Secret9",
		"Valid$Phrase2024",
	}

	for _, password := range validPasswords {
		err := hasher.ValidatePasswordStrength(password)
		assert.NoError(t, err, "Expected no error for valid password: %s", password)
	}

	testCases := []struct {
		password    string
		expectedErr string
	}{
		{"123", "must be at least 8 characters long"},
		{"SECRETSX123!", "must contain at least one lowercase letter"},
		{"secretsx123!", "must contain at least one uppercase letter"},
		{"SecretsAbc!", "must contain at least one number"},
		{"Secrets1234", "must contain at least one special character"},
		{"Password123!", "contains forbidden words"},
		{"MyAdmin123!", "contains forbidden words"},
	}

	for _, tc := range testCases {
		err := hasher.ValidatePasswordStrength(tc.password)
		assert.Error(t, err, "Expected error for password: %s", tc.password)
		assert.Contains(t, err.Error(), tc.expectedErr, "Error message should contain: %s", tc.expectedErr)
	}
}

func TestBcryptHasher_WithCustomCost(t *testing.T) {
	customCost := 6 // Lower cost for faster testing
	hasher := NewBcryptHasherWithCost(customCost)

	password := "StrongSecret123!"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	// Verify the hash uses the correct cost
	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, customCost, cost)

	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_WithCustomPolicy(t *testing.T) {
	hasher := NewBcryptHasherWithPolicy(bcrypt.MinCost, StrengthPolicy{
		MinLength:        12,
		RequireLowercase: true,
	})

	// Meets the default rules but not the stricter length
	err := hasher.ValidatePasswordStrength("Short1!abc")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be at least 12 characters long")

	// No uppercase/number/special requirements under this policy
	assert.NoError(t, hasher.ValidatePasswordStrength("justlowercaseletters"))

	// Forbidden words apply regardless of policy
	err = hasher.ValidatePasswordStrength("mylongqwertyphrase")
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordForbiddenWords))
}

func TestBcryptHasher_PasswordStrengthHelpers(t *testing.T) {
	hasher := &bcryptHasher{cost: bcrypt.MinCost}

	assert.True(t, hasher.hasUppercase("Secrets"))
	assert.False(t, hasher.hasUppercase("secrets"))

	assert.True(t, hasher.hasLowercase("Secrets"))
	assert.False(t, hasher.hasLowercase("SECRETS"))

	assert.True(t, hasher.hasNumbers("Secrets123"))
	assert.False(t, hasher.hasNumbers("Secrets"))

	assert.True(t, hasher.hasSpecialChars("Secrets!"))
	assert.False(t, hasher.hasSpecialChars("Secrets"))

	forbiddenWords := []string{"password", "admin"}
	assert.True(t, hasher.containsForbiddenWords("MyPassword123", forbiddenWords))
	assert.True(t, hasher.containsForbiddenWords("AdminUser", forbiddenWords))
	assert.False(t, hasher.containsForbiddenWords("SecurePhrase123", forbiddenWords))
}

func TestBcryptHasher_EdgeCases(t *testing.T) {
	hasher := NewBcryptHasher()

	// Empty password
	err := hasher.ValidatePasswordStrength("")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be at least 8 characters long")

	// Over-long passphrase is rejected before bcrypt's 72-byte truncation bites
	longPassword := "VeryLongSecret123!" + string(make([]byte, 1000))
	err = hasher.ValidatePasswordStrength(longPassword)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))

	// Unicode passwords are fine
	unicodePassword := "Pässphräse123!"
	err = hasher.ValidatePasswordStrength(unicodePassword)
	assert.NoError(t, err)

	// Only special characters fails letter/number requirements
	specialOnlyPassword := "!@#$%^&*()"
	err = hasher.ValidatePasswordStrength(specialOnlyPassword)
	assert.Error(t, err)
}
