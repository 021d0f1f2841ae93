package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"weather-backend/internal/models"
	"weather-backend/internal/storage"
)

// SettingsResponse is the full preference set plus saved locations.
type SettingsResponse struct {
	models.SettingsBundle
	Favorites *models.FavoriteLocation  `json:"favorites,omitempty"`
	Wishlist  []models.FavoriteLocation `json:"wishlist"`
}

type DeleteLocationRequest struct {
	LocID int `json:"loc_id" example:"2801268"`
}

// GetSettings godoc
// @Summary Get settings
// @Description Returns display, current, daily and hourly preference profiles plus the favorite and wishlist locations.
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SettingsResponse "Settings"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Router /settings/ [get]
func (r *routes) handleGetSettings(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	bundle, err := r.users.Settings(c.Context(), userID)
	if err != nil {
		return r.respondError(c, err)
	}

	resp := SettingsResponse{SettingsBundle: *bundle}

	favorite, err := r.users.Favorite(c.Context(), userID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return r.respondError(c, err)
	}
	resp.Favorites = favorite

	resp.Wishlist, err = r.users.Wishlist(c.Context(), userID)
	if err != nil {
		return r.respondError(c, err)
	}
	if resp.Wishlist == nil {
		resp.Wishlist = []models.FavoriteLocation{}
	}

	return c.JSON(resp)
}

// PatchSettings godoc
// @Summary Update settings
// @Description Applies a partial update; absent fields keep their value.
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.SettingsPatch true "Fields to change"
// @Success 204 "Settings updated"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Router /settings/ [patch]
func (r *routes) handlePatchSettings(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	var patch models.SettingsPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body"})
	}

	if err := r.users.UpdateSettings(c.Context(), userID, patch); err != nil {
		return r.respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SaveLocation godoc
// @Summary Save a location
// @Description Stores a location in the favorite slot or appends it to the wishlist.
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param target path string true "favorites or wishlist"
// @Param request body models.FavoriteLocation true "Location"
// @Success 201 "Location saved"
// @Failure 400 {object} ErrorResponse "Unknown target"
// @Failure 409 {object} ErrorResponse "Location already wishlisted"
// @Router /settings/location/{target} [post]
func (r *routes) handleSaveLocation(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	var loc models.FavoriteLocation
	if err := c.BodyParser(&loc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body"})
	}

	if err := r.users.SaveLocation(c.Context(), userID, c.Params("target"), loc); err != nil {
		return r.respondError(c, err)
	}

	return c.SendStatus(fiber.StatusCreated)
}

// UpdateFavorite godoc
// @Summary Update the favorite location
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.FavoriteLocation true "Location"
// @Success 204 "Favorite updated"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Router /settings/location [patch]
func (r *routes) handleUpdateFavorite(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	var loc models.FavoriteLocation
	if err := c.BodyParser(&loc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body"})
	}

	if err := r.users.UpdateFavorite(c.Context(), userID, loc); err != nil {
		return r.respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteWishlist godoc
// @Summary Remove a wishlist location
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DeleteLocationRequest true "Provider location id"
// @Success 204 "Location removed"
// @Failure 404 {object} ErrorResponse "Location not wishlisted"
// @Router /settings/location [delete]
func (r *routes) handleDeleteWishlist(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	var req DeleteLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "invalid request body"})
	}

	if err := r.users.DeleteWishlist(c.Context(), userID, req.LocID); err != nil {
		return r.respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
