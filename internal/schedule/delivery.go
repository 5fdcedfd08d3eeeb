package schedule

import "github.com/labstack/echo/v4"

type Handlers interface {
	GetSchedule() echo.HandlerFunc
	UpdateSchedule() echo.HandlerFunc
	StartOverride() echo.HandlerFunc
	StopOverride() echo.HandlerFunc
}
