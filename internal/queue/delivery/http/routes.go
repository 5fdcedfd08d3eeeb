package http

import (
	"github.com/labstack/echo/v4"

	"github.com/shrinkarr/shrinkarr/internal/queue"
)

func MapQueueRoutes(queueGroup *echo.Group, historyGroup *echo.Group, h queue.Handlers) {
	queueGroup.POST("", h.EnqueueJob())
	queueGroup.GET("", h.ListJobs())
	queueGroup.GET("/stats", h.Stats())
	queueGroup.POST("/prioritize", h.Reprioritize())
	queueGroup.GET("/:job_id", h.GetJob())
	queueGroup.PATCH("/:job_id", h.UpdateJob())
	queueGroup.DELETE("/:job_id", h.DeleteJob())
	queueGroup.POST("/:job_id/cancel", h.CancelJob())
	queueGroup.POST("/:job_id/retry", h.RetryJob())

	historyGroup.GET("", h.ListHistory())
}
