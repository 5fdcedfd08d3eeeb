package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shrinkarr/shrinkarr/internal/models"
	"github.com/shrinkarr/shrinkarr/internal/queue"
	"github.com/shrinkarr/shrinkarr/pkg/logger"
	"github.com/shrinkarr/shrinkarr/pkg/utils"
)

type queueHandlers struct {
	queueUC queue.UseCase
	logger  logger.Logger
}

func NewQueueHandlers(queueUC queue.UseCase, log logger.Logger) queue.Handlers {
	return &queueHandlers{
		queueUC: queueUC,
		logger:  log,
	}
}

func (h *queueHandlers) EnqueueJob() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.JobCreateInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload"))
		}
		job, err := h.queueUC.EnqueueJob(c.Request().Context(), input)
		if err != nil {
			return h.mapError(c, err)
		}
		return c.JSON(http.StatusCreated, job)
	}
}

func (h *queueHandlers) ListJobs() echo.HandlerFunc {
	return func(c echo.Context) error {
		pq, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, utils.ErrorResponse(err.Error()))
		}
		status := models.JobStatus(c.QueryParam("status"))
		jobs, err := h.queueUC.ListJobs(c.Request().Context(), status, pq)
		if err != nil {
			return h.mapError(c, err)
		}
		return c.JSON(http.StatusOK, jobs)
	}
}

func (h *queueHandlers) GetJob() echo.HandlerFunc {
	return func(c echo.Context) error {
		job, err := h.queueUC.GetJob(c.Request().Context(), c.Param("job_id"))
		if err != nil {
			return h.mapError(c, err)
		}
		return c.JSON(http.StatusOK, job)
	}
}

func (h *queueHandlers) UpdateJob() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.JobUpdateInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload"))
		}
		job, err := h.queueUC.UpdateJob(c.Request().Context(), c.Param("job_id"), input)
		if err != nil {
			return h.mapError(c, err)
		}
		return c.JSON(http.StatusOK, job)
	}
}

func (h *queueHandlers) DeleteJob() echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := h.queueUC.DeleteJob(c.Request().Context(), c.Param("job_id")); err != nil {
			return h.mapError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Job deleted"})
	}
}

func (h *queueHandlers) CancelJob() echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := h.queueUC.CancelJob(c.Request().Context(), c.Param("job_id")); err != nil {
			return h.mapError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Cancellation requested"})
	}
}

func (h *queueHandlers) RetryJob() echo.HandlerFunc {
	return func(c echo.Context) error {
		job, err := h.queueUC.RetryJob(c.Request().Context(), c.Param("job_id"))
		if err != nil {
			return h.mapError(c, err)
		}
		return c.JSON(http.StatusOK, job)
	}
}

func (h *queueHandlers) Reprioritize() echo.HandlerFunc {
	type reprioritizeInput struct {
		Strategy models.SortStrategy `json:"strategy" validate:"required"`
	}
	return func(c echo.Context) error {
		input := &reprioritizeInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload"))
		}
		count, err := h.queueUC.Reprioritize(c.Request().Context(), input.Strategy)
		if err != nil {
			return h.mapError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]int64{"reprioritized": count})
	}
}

func (h *queueHandlers) Stats() echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, err := h.queueUC.Stats(c.Request().Context())
		if err != nil {
			return h.mapError(c, err)
		}
		return c.JSON(http.StatusOK, stats)
	}
}

func (h *queueHandlers) ListHistory() echo.HandlerFunc {
	return func(c echo.Context) error {
		pq, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, utils.ErrorResponse(err.Error()))
		}
		history, err := h.queueUC.ListHistory(c.Request().Context(), pq)
		if err != nil {
			return h.mapError(c, err)
		}
		return c.JSON(http.StatusOK, history)
	}
}

func (h *queueHandlers) mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, queue.ErrJobNotFound):
		return c.JSON(http.StatusNotFound, utils.ErrorResponse(err.Error()))
	case errors.Is(err, queue.ErrDuplicateJob),
		errors.Is(err, queue.ErrNotPending),
		errors.Is(err, queue.ErrJobLocked):
		return c.JSON(http.StatusConflict, utils.ErrorResponse(err.Error()))
	case errors.Is(err, queue.ErrInvalidStrategy):
		return c.JSON(http.StatusBadRequest, utils.ErrorResponse(err.Error()))
	default:
		h.logger.Errorf("queue handler error: %v, RequestID: %s", err, utils.GetRequestID(c))
		return c.JSON(http.StatusBadRequest, utils.ErrorResponse(err.Error()))
	}
}
