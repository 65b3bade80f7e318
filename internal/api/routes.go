package api

import (
	"gestaotemplate/internal/api/middleware"
	"gestaotemplate/internal/api/registry"
	"gestaotemplate/internal/routes"
	"gestaotemplate/internal/services"

	_ "gestaotemplate/docs/swagger"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func (s *Server) registerRoutes() {
	// Health check
	// @Summary Health check
	// @Description Check if the server and its database are up
	// @Produce json
	// @Success 200 {object} map[string]string "OK"
	// @Router /health [get]
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded files on local disk, never listed
	if local, ok := s.deps.Storage.(*services.LocalStorage); ok {
		s.echo.GET("/storage/*", notFound, echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
			Filesystem: storedFiles{fs: local.Fs()},
			Browse:     false,
		}))
	}

	// API v1 group
	api := s.echo.Group("/api/v1")
	auth := middleware.NewAuthMiddleware(s.deps.DB, s.config.JWT.Secret)

	routes.SetupAuthRoutes(api, s.deps.DB, s.config, auth)
	routes.SetupTarefaRoutes(api, s.deps.DB)
	routes.SetupClimaRoutes(api, s.deps.Clima, s.deps.ClimaLimiter)

	// Store-scoped template configuration
	scoped := api.Group("", auth.Middleware(), middleware.RequireStore())
	registry.RegisterCRUDRoutes(scoped, s.deps.DB, s.deps.Storage)
}

func notFound(echo.Context) error {
	return echo.ErrNotFound
}
