package routes

import (
	"gestaotemplate/internal/handlers"
	"gestaotemplate/internal/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// SetupTarefaRoutes registers the public to-do list.
func SetupTarefaRoutes(base *echo.Group, db *gorm.DB) {
	h := handlers.NewTarefaHandler(services.NewTarefaService(db))

	tarefas := base.Group("/tarefas")
	tarefas.GET("", h.List)
	tarefas.POST("", h.Create)
	tarefas.GET("/:id", h.Get)
	tarefas.PATCH("/:id", h.Update)
	tarefas.PUT("/:id", h.Update)
	tarefas.DELETE("/:id", h.Delete)
}
