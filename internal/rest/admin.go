package rest

import (
	"context"
	"net/http"

	"streamReco/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

// ModelReloader rebuilds the model from the raw data and swaps it in
// atomically; on failure the old snapshot keeps serving.
type ModelReloader interface {
	Reload(ctx context.Context) error
}

type AdminHandler struct {
	reloader ModelReloader
}

func NewAdminHandler(reloader ModelReloader) *AdminHandler {
	return &AdminHandler{reloader: reloader}
}

// POST /api/v1/admin/reload
func (h *AdminHandler) ReloadModel(c echo.Context) error {
	if err := h.reloader.Reload(c.Request().Context()); err != nil {
		logger.Error("model reload failed", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("model reloaded"))
}
