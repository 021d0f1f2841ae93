package http

import (
	"github.com/gofiber/fiber/v2"

	"weather-backend/internal/models"
)

// SearchLocations godoc
// @Summary Search locations
// @Description Resolves a place name to provider location candidates.
// @Tags Weather
// @Produce json
// @Security BearerAuth
// @Param location_name path string true "Place name" example(London)
// @Success 200 {array} models.SearchLocation "Matching locations"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Router /api_v1/{location_name} [get]
func (r *routes) handleSearchLocations(c *fiber.Ctx) error {
	name := c.Params("location_name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "location name is required"})
	}

	locations, err := r.weather.SearchLocations(c.Context(), name)
	if err != nil {
		return r.respondError(c, err)
	}

	return c.JSON(locations)
}

// Forecast godoc
// @Summary Get a forecast
// @Description Builds the forecast for a provider location using the caller's stored preferences overlaid with any profiles in the request body. Anonymous callers get the defaults.
// @Tags Weather
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param location_id path int true "Provider location id" example(2801268)
// @Param request body models.SettingsPatch false "Preference overrides for this request"
// @Success 200 {object} forecast.Document "Assembled forecast"
// @Failure 400 {object} ErrorResponse "Invalid preference input"
// @Failure 502 {object} ErrorResponse "Provider failure or malformed provider document"
// @Router /api_v1/id/{location_id} [post]
func (r *routes) handleForecast(c *fiber.Ctx) error {
	locationID, err := c.ParamsInt("location_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid location id"})
	}

	bundle := models.DefaultSettingsBundle()
	if userID, ok := currentUserID(c); ok {
		stored, err := r.users.Settings(c.Context(), userID)
		if err != nil {
			return r.respondError(c, err)
		}
		bundle = *stored
	}

	if len(c.Body()) > 0 {
		var patch models.SettingsPatch
		if err := c.BodyParser(&patch); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body"})
		}
		bundle.Apply(patch)
	}

	doc, err := r.weather.Forecast(c.Context(), locationID, &bundle)
	if err != nil {
		return r.respondError(c, err)
	}

	return c.JSON(doc)
}
