package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shrinkarr/shrinkarr/internal/models"
	"github.com/shrinkarr/shrinkarr/internal/schedule"
	"github.com/shrinkarr/shrinkarr/pkg/logger"
	"github.com/shrinkarr/shrinkarr/pkg/utils"
)

type scheduleHandlers struct {
	scheduleRepo schedule.Repository
	evaluator    *schedule.Evaluator
	logger       logger.Logger
}

func NewScheduleHandlers(scheduleRepo schedule.Repository, evaluator *schedule.Evaluator, log logger.Logger) schedule.Handlers {
	return &scheduleHandlers{
		scheduleRepo: scheduleRepo,
		evaluator:    evaluator,
		logger:       log,
	}
}

func (h *scheduleHandlers) GetSchedule() echo.HandlerFunc {
	return func(c echo.Context) error {
		cfg, err := h.scheduleRepo.GetSchedule(c.Request().Context())
		if err != nil {
			h.logger.Errorf("GetSchedule: %v", err)
			return c.JSON(http.StatusInternalServerError, utils.ErrorResponse(err.Error()))
		}
		return c.JSON(http.StatusOK, h.status(cfg))
	}
}

func (h *scheduleHandlers) UpdateSchedule() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.ScheduleUpdateInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload"))
		}
		if err := utils.ValidateStruct(c.Request().Context(), input); err != nil {
			return c.JSON(http.StatusBadRequest, utils.ErrorResponse(err.Error()))
		}
		cfg, err := h.scheduleRepo.UpdateSchedule(c.Request().Context(), input)
		if err != nil {
			h.logger.Errorf("UpdateSchedule: %v", err)
			return c.JSON(http.StatusInternalServerError, utils.ErrorResponse(err.Error()))
		}
		return c.JSON(http.StatusOK, h.status(cfg))
	}
}

func (h *scheduleHandlers) StartOverride() echo.HandlerFunc {
	return func(c echo.Context) error {
		cfg, err := h.scheduleRepo.SetManualOverride(c.Request().Context(), true)
		if err != nil {
			h.logger.Errorf("StartOverride: %v", err)
			return c.JSON(http.StatusInternalServerError, utils.ErrorResponse(err.Error()))
		}
		return c.JSON(http.StatusOK, h.status(cfg))
	}
}

func (h *scheduleHandlers) StopOverride() echo.HandlerFunc {
	return func(c echo.Context) error {
		cfg, err := h.scheduleRepo.SetManualOverride(c.Request().Context(), false)
		if err != nil {
			h.logger.Errorf("StopOverride: %v", err)
			return c.JSON(http.StatusInternalServerError, utils.ErrorResponse(err.Error()))
		}
		return c.JSON(http.StatusOK, h.status(cfg))
	}
}

func (h *scheduleHandlers) status(cfg *models.ScheduleConfig) *models.ScheduleStatus {
	return &models.ScheduleStatus{
		ScheduleConfig: *cfg,
		WithinSchedule: h.evaluator.WithinWindow(cfg, time.Now()),
		ManualOverride: cfg.ManualOverrideActive,
	}
}
