package queue

import "github.com/labstack/echo/v4"

type Handlers interface {
	EnqueueJob() echo.HandlerFunc
	ListJobs() echo.HandlerFunc
	GetJob() echo.HandlerFunc
	UpdateJob() echo.HandlerFunc
	DeleteJob() echo.HandlerFunc
	CancelJob() echo.HandlerFunc
	RetryJob() echo.HandlerFunc
	Reprioritize() echo.HandlerFunc
	Stats() echo.HandlerFunc
	ListHistory() echo.HandlerFunc
}
