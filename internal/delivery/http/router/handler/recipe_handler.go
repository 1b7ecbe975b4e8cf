package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"cookbook/internal/delivery/http/middleware"
	"cookbook/internal/delivery/http/response"
	"cookbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RecipeHandler holds dependencies for recipe-related handlers.
type RecipeHandler struct {
	uc     usecase.RecipeUsecase
	logger *slog.Logger
}

// NewRecipeHandler is the constructor for RecipeHandler, injected by Fx.
func NewRecipeHandler(uc usecase.RecipeUsecase, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{uc: uc, logger: logger}
}

type recipeRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category" validate:"required"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
}

// CreateRecipe publishes a new recipe owned by the caller.
func (h *RecipeHandler) CreateRecipe(c echo.Context) error {
	var req recipeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid recipe input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	recipe, err := h.uc.CreateRecipe(c.Request().Context(), &usecase.CreateRecipeInput{
		SessionToken: middleware.SessionToken(c),
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Ingredients:  req.Ingredients,
		Steps:        req.Steps,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{
		"recipe": toRecipeResponse(recipe),
	}, "Recipe created")
}

// GetRecipe returns a single recipe by ID. No session required.
func (h *RecipeHandler) GetRecipe(c echo.Context) error {
	recipeID, err := parseID(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	recipe, err := h.uc.GetRecipe(c.Request().Context(), recipeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"recipe": toRecipeResponse(recipe),
	}, "Recipe retrieved")
}

// ListRecipes returns recipes newest first, optionally filtered by category.
func (h *RecipeHandler) ListRecipes(c echo.Context) error {
	input := &usecase.ListRecipesInput{Category: c.QueryParam("category")}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Malformed limit parameter")
		}
		input.Limit = limit
	}
	if raw := c.QueryParam("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Malformed offset parameter")
		}
		input.Offset = offset
	}

	recipes, err := h.uc.ListRecipes(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"recipes": toRecipeResponses(recipes),
	}, "Recipes retrieved")
}

// UpdateRecipe modifies a recipe the caller owns.
func (h *RecipeHandler) UpdateRecipe(c echo.Context) error {
	recipeID, err := parseID(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	var req recipeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid recipe input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	recipe, err := h.uc.UpdateRecipe(c.Request().Context(), &usecase.UpdateRecipeInput{
		SessionToken: middleware.SessionToken(c),
		RecipeID:     recipeID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Ingredients:  req.Ingredients,
		Steps:        req.Steps,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"recipe": toRecipeResponse(recipe),
	}, "Recipe updated")
}

// DeleteRecipe removes a recipe the caller owns.
func (h *RecipeHandler) DeleteRecipe(c echo.Context) error {
	recipeID, err := parseID(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.DeleteRecipe(c.Request().Context(), middleware.SessionToken(c), recipeID); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UploadImage stores a recipe image from a multipart form.
func (h *RecipeHandler) UploadImage(c echo.Context) error {
	recipeID, err := parseID(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Missing image file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded image")
	}
	defer file.Close()

	recipe, err := h.uc.UploadRecipeImage(c.Request().Context(), &usecase.UploadRecipeImageInput{
		SessionToken: middleware.SessionToken(c),
		RecipeID:     recipeID,
		ContentType:  fileHeader.Header.Get(echo.HeaderContentType),
		Size:         fileHeader.Size,
		Body:         file,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"recipe": toRecipeResponse(recipe),
	}, "Recipe image uploaded")
}

// ShareQRCode renders a PNG QR code for the recipe's public share URL.
func (h *RecipeHandler) ShareQRCode(c echo.Context) error {
	recipeID, err := parseID(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	png, err := h.uc.ShareQRCode(c.Request().Context(), recipeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
