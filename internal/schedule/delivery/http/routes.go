package http

import (
	"github.com/labstack/echo/v4"

	"github.com/shrinkarr/shrinkarr/internal/schedule"
)

func MapScheduleRoutes(scheduleGroup *echo.Group, controlGroup *echo.Group, h schedule.Handlers) {
	scheduleGroup.GET("", h.GetSchedule())
	scheduleGroup.PUT("", h.UpdateSchedule())

	controlGroup.POST("/start", h.StartOverride())
	controlGroup.POST("/stop", h.StopOverride())
}
