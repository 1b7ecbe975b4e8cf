// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"cookbook/internal/delivery/http/middleware"
	"cookbook/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	RecipeHandler  *handler.RecipeHandler
	CommentHandler *handler.CommentHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	recipeHandler  *handler.RecipeHandler
	commentHandler *handler.CommentHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		recipeHandler:  params.RecipeHandler,
		commentHandler: params.CommentHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// Mutations additionally pass the owner-action guard inside the use cases;
// the route-level middleware only rejects unauthenticated requests early.
func (r *router) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")

	// Health check endpoint
	api.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.Signup)
		authGroup.POST("/login", r.authHandler.Login)
		// Logout skips the middleware: revoking an already-dead token must
		// still return 204.
		authGroup.POST("/logout", r.authHandler.Logout)

		authSessions := authGroup.Group("", r.authMiddleware.Authenticate)
		authSessions.POST("/password", r.authHandler.ChangePassword)
		authSessions.GET("/sessions", r.authHandler.GetActiveSessions)
		authSessions.DELETE("/sessions/:id", r.authHandler.RevokeSession)
		authSessions.POST("/logout-all", r.authHandler.LogoutAllDevices)
	}

	// User routes
	userGroup := api.Group("/users")
	{
		me := userGroup.Group("/me", r.authMiddleware.Authenticate)
		me.GET("", r.userHandler.GetProfile)
		me.PUT("", r.userHandler.UpdateProfile)
		me.PUT("/avatar", r.userHandler.UpdateAvatar)
		me.POST("/avatar", r.userHandler.UploadAvatar)

		userGroup.GET("/:id", r.userHandler.GetPublicProfile)
		userGroup.GET("/:id/recipes", r.userHandler.ListUserRecipes)
	}

	// Recipe routes. Reads are public, mutations require a session.
	recipeGroup := api.Group("/recipes")
	{
		recipeGroup.GET("", r.recipeHandler.ListRecipes)
		recipeGroup.GET("/:id", r.recipeHandler.GetRecipe)
		recipeGroup.GET("/:id/qrcode", r.recipeHandler.ShareQRCode)
		recipeGroup.GET("/:id/comments", r.commentHandler.ListComments)

		recipeGroup.POST("", r.recipeHandler.CreateRecipe, r.authMiddleware.Authenticate)
		recipeGroup.PUT("/:id", r.recipeHandler.UpdateRecipe, r.authMiddleware.Authenticate)
		recipeGroup.DELETE("/:id", r.recipeHandler.DeleteRecipe, r.authMiddleware.Authenticate)
		recipeGroup.POST("/:id/image", r.recipeHandler.UploadImage, r.authMiddleware.Authenticate)
		recipeGroup.POST("/:id/comments", r.commentHandler.CreateComment, r.authMiddleware.Authenticate)
	}

	// Comment routes
	api.DELETE("/comments/:id", r.commentHandler.DeleteComment, r.authMiddleware.Authenticate)
}
