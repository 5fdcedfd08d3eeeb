package http

import (
	"github.com/labstack/echo/v4"

	"github.com/shrinkarr/shrinkarr/internal/resources"
)

func MapResourcesRoutes(resourcesGroup *echo.Group, h resources.Handlers) {
	resourcesGroup.GET("/current", h.CurrentSnapshot())
	resourcesGroup.GET("/thresholds", h.GetThresholds())
	resourcesGroup.PUT("/thresholds", h.UpdateThresholds())
}
