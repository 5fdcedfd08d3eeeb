package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shrinkarr/shrinkarr/internal/models"
	"github.com/shrinkarr/shrinkarr/internal/resources"
	"github.com/shrinkarr/shrinkarr/pkg/logger"
	"github.com/shrinkarr/shrinkarr/pkg/utils"
)

type resourcesHandlers struct {
	monitor        *resources.Monitor
	thresholdsRepo resources.Repository
	logger         logger.Logger
}

func NewResourcesHandlers(monitor *resources.Monitor, thresholdsRepo resources.Repository, log logger.Logger) resources.Handlers {
	return &resourcesHandlers{
		monitor:        monitor,
		thresholdsRepo: thresholdsRepo,
		logger:         log,
	}
}

func (h *resourcesHandlers) CurrentSnapshot() echo.HandlerFunc {
	return func(c echo.Context) error {
		snapshot := h.monitor.Latest()
		if snapshot == nil {
			return c.JSON(http.StatusServiceUnavailable, utils.ErrorResponse("no sample available yet"))
		}
		return c.JSON(http.StatusOK, snapshot)
	}
}

func (h *resourcesHandlers) GetThresholds() echo.HandlerFunc {
	return func(c echo.Context) error {
		thresholds, err := h.thresholdsRepo.GetThresholds(c.Request().Context())
		if err != nil {
			h.logger.Errorf("GetThresholds: %v", err)
			return c.JSON(http.StatusInternalServerError, utils.ErrorResponse(err.Error()))
		}
		return c.JSON(http.StatusOK, thresholds)
	}
}

func (h *resourcesHandlers) UpdateThresholds() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.ResourceThresholds{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload"))
		}
		if err := utils.ValidateStruct(c.Request().Context(), input); err != nil {
			return c.JSON(http.StatusBadRequest, utils.ErrorResponse(err.Error()))
		}
		thresholds, err := h.thresholdsRepo.UpdateThresholds(c.Request().Context(), input)
		if err != nil {
			h.logger.Errorf("UpdateThresholds: %v", err)
			return c.JSON(http.StatusInternalServerError, utils.ErrorResponse(err.Error()))
		}
		return c.JSON(http.StatusOK, thresholds)
	}
}
