package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shrinkarr/shrinkarr/internal/profiles"
	"github.com/shrinkarr/shrinkarr/pkg/logger"
	"github.com/shrinkarr/shrinkarr/pkg/utils"
)

type profilesHandlers struct {
	profilesRepo profiles.Repository
	logger       logger.Logger
}

func NewProfilesHandlers(profilesRepo profiles.Repository, log logger.Logger) *profilesHandlers {
	return &profilesHandlers{
		profilesRepo: profilesRepo,
		logger:       log,
	}
}

func (h *profilesHandlers) ListProfiles() echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := h.profilesRepo.ListProfiles(c.Request().Context())
		if err != nil {
			h.logger.Errorf("ListProfiles: %v", err)
			return c.JSON(http.StatusInternalServerError, utils.ErrorResponse(err.Error()))
		}
		return c.JSON(http.StatusOK, list)
	}
}

func (h *profilesHandlers) GetProfile() echo.HandlerFunc {
	return func(c echo.Context) error {
		profile, err := h.profilesRepo.GetProfile(c.Request().Context(), c.Param("profile_id"))
		if err != nil {
			if errors.Is(err, profiles.ErrProfileNotFound) {
				return c.JSON(http.StatusNotFound, utils.ErrorResponse(err.Error()))
			}
			h.logger.Errorf("GetProfile: %v", err)
			return c.JSON(http.StatusInternalServerError, utils.ErrorResponse(err.Error()))
		}
		return c.JSON(http.StatusOK, profile)
	}
}

func MapProfilesRoutes(profilesGroup *echo.Group, h *profilesHandlers) {
	profilesGroup.GET("", h.ListProfiles())
	profilesGroup.GET("/:profile_id", h.GetProfile())
}
