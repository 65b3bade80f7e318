package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"gestaotemplate/internal/services"
	"gestaotemplate/internal/utils/logger"

	"github.com/labstack/echo/v4"
)

// Limiter decides whether a client may call the weather proxy.
type Limiter interface {
	Allow(ctx context.Context, identifier string) (bool, error)
}

type ClimaHandler struct {
	service *services.ClimaService
	limiter Limiter
	log     *logger.Logger
}

// NewClimaHandler creates the weather handler. limiter may be nil.
func NewClimaHandler(service *services.ClimaService, limiter Limiter) *ClimaHandler {
	return &ClimaHandler{service: service, limiter: limiter, log: logger.New("ClimaHandler")}
}

// ClimaError is the error body of the weather proxy.
type ClimaError struct {
	Error      bool   `json:"error"`
	Mensagem   string `json:"mensagem"`
	StatusCode int    `json:"status_code"`
}

func climaError(c echo.Context, status int, msg string) error {
	return c.JSON(status, ClimaError{Error: true, Mensagem: msg, StatusCode: status})
}

// Get returns the current weather of a city
// @Summary Current weather
// @Tags clima
// @Produce json
// @Param cidade path string true "City name"
// @Success 200 {object} services.Clima
// @Failure 429 {object} ClimaError "Too many requests"
// @Failure 502 {object} ClimaError "Weather provider unreachable"
// @Router /clima/{cidade} [get]
func (h *ClimaHandler) Get(c echo.Context) error {
	cidade := strings.TrimSpace(c.Param("cidade"))
	if cidade == "" {
		return climaError(c, http.StatusUnprocessableEntity, "Informe a cidade")
	}

	if h.limiter != nil {
		allowed, err := h.limiter.Allow(c.Request().Context(), c.RealIP())
		if err != nil {
			h.log.Warn("Rate limiter unavailable: %v", err)
		} else if !allowed {
			return climaError(c, http.StatusTooManyRequests, "Muitas requisições, tente novamente mais tarde")
		}
	}

	clima, err := h.service.Buscar(c.Request().Context(), cidade)
	if err != nil {
		var upstream *services.UpstreamError
		if errors.As(err, &upstream) {
			return climaError(c, upstream.StatusCode, upstream.Message)
		}
		return err
	}
	return c.JSON(http.StatusOK, clima)
}
