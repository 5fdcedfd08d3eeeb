package resources

import "github.com/labstack/echo/v4"

type Handlers interface {
	CurrentSnapshot() echo.HandlerFunc
	GetThresholds() echo.HandlerFunc
	UpdateThresholds() echo.HandlerFunc
}
