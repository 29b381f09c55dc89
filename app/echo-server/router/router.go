package router

import (
	"streamReco/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupRecoRoutes(api *echo.Group, handler *rest.RecoHandler) {
	api.GET("/popular", handler.Popular)
	api.GET("/recommendations", handler.Recommendations)
	api.GET("/history", handler.History)
}

func SetupAdminRoutes(api *echo.Group, handler *rest.AdminHandler) {
	admin := api.Group("/admin")
	admin.POST("/reload", handler.ReloadModel)
}

func SetupHealthRoutes(e *echo.Echo, handler *rest.HealthHandler) {
	e.GET("/health", handler.Health)
	e.GET("/ready", handler.Ready)
}
