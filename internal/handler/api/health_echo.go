package api

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	domrepo "FinSight/internal/domain/repository"
	xhttp "FinSight/pkg/http"
)

// HealthEchoHandler reports process liveness and optional archive health.
type HealthEchoHandler struct {
	archive domrepo.BarArchive // nil when archiving is disabled
}

func NewHealthEchoHandler(archive domrepo.BarArchive) *HealthEchoHandler {
	return &HealthEchoHandler{archive: archive}
}

func (h *HealthEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
}

func (h *HealthEchoHandler) Health(c echo.Context) error {
	status := map[string]string{"status": "ok"}

	if h.archive != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.archive.Health(ctx); err != nil {
			status["archive"] = "unreachable"
		} else {
			status["archive"] = "ok"
		}
	}
	return xhttp.SuccessResponse(c, status)
}
