package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ReadinessReporter distinguishes "serving a model" from "still loading or
// failed"; the detail carries the retained load failure.
type ReadinessReporter interface {
	Ready() (bool, string)
}

type HealthHandler struct {
	reporter ReadinessReporter
}

func NewHealthHandler(reporter ReadinessReporter) *HealthHandler {
	return &HealthHandler{reporter: reporter}
}

// GET /health reports process liveness only
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GET /ready returns 503 until a model snapshot is published
func (h *HealthHandler) Ready(c echo.Context) error {
	ready, detail := h.reporter.Ready()
	if !ready {
		if detail == "" {
			detail = "recommendation model not ready"
		}
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "error",
			"detail": detail,
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
