package routes

import (
	"gestaotemplate/internal/handlers"
	"gestaotemplate/internal/services"

	"github.com/labstack/echo/v4"
)

// SetupClimaRoutes registers the public weather proxy. limiter may be nil.
func SetupClimaRoutes(base *echo.Group, clima *services.ClimaService, limiter handlers.Limiter) {
	h := handlers.NewClimaHandler(clima, limiter)
	base.GET("/clima/:cidade", h.Get)
}
