package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

const serviceName = "whatsapp-bot"

type HealthHandler struct {
	logger *slog.Logger
}

func NewHealthHandler(log *slog.Logger) *HealthHandler {
	return &HealthHandler{logger: log.With(slog.String("handler", "health"))}
}

func (h *HealthHandler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.HEAD("/health", h.HealthHead)
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Success 200 {object} StatusResponse
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "healthy", Service: serviceName})
}

func (h *HealthHandler) HealthHead(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
