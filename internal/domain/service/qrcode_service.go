package service

// QRCodeService defines the interface for QR code generation services
type QRCodeService interface {
	// GenerateRecipeShareQR generates a QR code image encoding the public
	// share URL of a recipe.
	GenerateRecipeShareQR(recipeID int64) ([]byte, error)

	// RecipeShareURL returns the public share URL a generated QR encodes.
	RecipeShareURL(recipeID int64) string
}
