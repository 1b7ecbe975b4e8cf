package qrcode

import (
	"fmt"
	"strconv"
	"strings"

	"cookbook/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a new QR code service instance.
// baseURL is the public frontend origin, e.g. https://cookbook.example.com.
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// GenerateRecipeShareQR generates a PNG QR code encoding the recipe's public share URL.
func (s *qrcodeService) GenerateRecipeShareQR(recipeID int64) ([]byte, error) {
	qrCode, err := qrcode.New(s.RecipeShareURL(recipeID), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// RecipeShareURL returns the public share URL a generated QR encodes.
func (s *qrcodeService) RecipeShareURL(recipeID int64) string {
	return s.baseURL + "/recipes/" + strconv.FormatInt(recipeID, 10)
}
