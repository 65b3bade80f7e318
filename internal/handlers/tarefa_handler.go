package handlers

import (
	"net/http"

	"gestaotemplate/internal/api/controllers"
	"gestaotemplate/internal/api/validator"
	"gestaotemplate/internal/apperr"
	"gestaotemplate/internal/models"
	"gestaotemplate/internal/resources"
	"gestaotemplate/internal/services"

	"github.com/labstack/echo/v4"
)

type TarefaHandler struct {
	service *services.TarefaService
}

func NewTarefaHandler(service *services.TarefaService) *TarefaHandler {
	return &TarefaHandler{service: service}
}

func (h *TarefaHandler) payload(c echo.Context, partial bool) (map[string]interface{}, error) {
	in, err := controllers.ReadInput(c)
	if err != nil {
		return nil, err
	}
	res, fields := resources.Tarefa.Validate(in, partial)
	if len(fields) > 0 {
		return nil, apperr.Validation(fields)
	}
	return res.Values, nil
}

// List returns every tarefa
// @Summary List tarefas
// @Tags tarefas
// @Produce json
// @Param status query string false "pending, in_progress or done"
// @Success 200 {array} models.Tarefa
// @Failure 422 {object} map[string]interface{} "Invalid status"
// @Router /tarefas [get]
func (h *TarefaHandler) List(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" && !models.IsValidTarefaStatus(models.TarefaStatus(status)) {
		return apperr.Validation(validator.ValidateValue("status", status, "oneof=pending in_progress done"))
	}
	tarefas, err := h.service.List(c.Request().Context(), models.TarefaStatus(status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tarefas)
}

// Get returns one tarefa
// @Summary Get tarefa
// @Tags tarefas
// @Produce json
// @Param id path string true "Tarefa ID"
// @Success 200 {object} models.Tarefa
// @Failure 404 {object} map[string]string "Not found"
// @Router /tarefas/{id} [get]
func (h *TarefaHandler) Get(c echo.Context) error {
	tarefa, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tarefa)
}

// Create adds a tarefa
// @Summary Create tarefa
// @Tags tarefas
// @Accept json
// @Produce json
// @Success 201 {object} models.Tarefa
// @Failure 422 {object} map[string]interface{} "Validation error"
// @Router /tarefas [post]
func (h *TarefaHandler) Create(c echo.Context) error {
	values, err := h.payload(c, false)
	if err != nil {
		return err
	}
	tarefa, err := h.service.Create(c.Request().Context(), values)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tarefa)
}

// Update changes the supplied fields of a tarefa
// @Summary Update tarefa
// @Tags tarefas
// @Accept json
// @Produce json
// @Param id path string true "Tarefa ID"
// @Success 200 {object} models.Tarefa
// @Failure 404 {object} map[string]string "Not found"
// @Failure 422 {object} map[string]interface{} "Validation error"
// @Router /tarefas/{id} [patch]
func (h *TarefaHandler) Update(c echo.Context) error {
	values, err := h.payload(c, true)
	if err != nil {
		return err
	}
	tarefa, err := h.service.Update(c.Request().Context(), c.Param("id"), values)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tarefa)
}

// Delete removes a tarefa
// @Summary Delete tarefa
// @Tags tarefas
// @Produce json
// @Param id path string true "Tarefa ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Not found"
// @Router /tarefas/{id} [delete]
func (h *TarefaHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Tarefa excluída com sucesso"})
}
