package handler

import (
	"log/slog"
	"net/http"

	"cookbook/internal/delivery/http/middleware"
	"cookbook/internal/delivery/http/response"
	"cookbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CommentHandler holds dependencies for comment-related handlers.
type CommentHandler struct {
	uc     usecase.CommentUsecase
	logger *slog.Logger
}

// NewCommentHandler is the constructor for CommentHandler, injected by Fx.
func NewCommentHandler(uc usecase.CommentUsecase, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{uc: uc, logger: logger}
}

type createCommentRequest struct {
	Body string `json:"body" validate:"required"`
}

// CreateComment attaches a comment to a recipe on behalf of the caller.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	recipeID, err := parseID(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	comment, err := h.uc.CreateComment(c.Request().Context(), &usecase.CreateCommentInput{
		SessionToken: middleware.SessionToken(c),
		RecipeID:     recipeID,
		Body:         req.Body,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{
		"comment": toCommentResponse(comment),
	}, "Comment created")
}

// ListComments returns all comments on a recipe, oldest first.
func (h *CommentHandler) ListComments(c echo.Context) error {
	recipeID, err := parseID(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	comments, err := h.uc.ListComments(c.Request().Context(), recipeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"comments": toCommentResponses(comments),
	}, "Comments retrieved")
}

// DeleteComment removes a comment the caller authored.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	commentID, err := parseID(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.DeleteComment(c.Request().Context(), middleware.SessionToken(c), commentID); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
