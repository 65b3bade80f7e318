package routes

import (
	"gestaotemplate/internal/api/middleware"
	"gestaotemplate/internal/config"
	"gestaotemplate/internal/handlers"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func SetupAuthRoutes(base *echo.Group, db *gorm.DB, cfg *config.Config, auth *middleware.AuthMiddleware) {
	authHandler := handlers.NewAuthHandler(db, cfg.JWT)

	// Public routes (no auth required)
	public := base.Group("/auth")
	public.POST("/register", authHandler.Register)
	public.POST("/login", authHandler.Login)
	public.POST("/refresh", authHandler.RefreshToken)

	// Protected routes (require authentication)
	users := base.Group("/users", auth.Middleware())
	users.GET("/me", authHandler.GetMe)
	users.POST("/logout", authHandler.Logout)
}
