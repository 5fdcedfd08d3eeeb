package utils

import (
	"github.com/labstack/echo/v4"
)

func GetRequestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

func GetIPAddress(c echo.Context) string {
	return c.Request().RemoteAddr
}

// ErrorResponse is the uniform error payload returned by all handlers.
func ErrorResponse(message string) map[string]string {
	return map[string]string{"error": message}
}
