// Package http wires the API routes onto the Fiber app.
package http

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"weather-backend/internal/auth"
	"weather-backend/internal/services/users"
	"weather-backend/internal/services/weather"
	"weather-backend/pkg/logger"
)

type routes struct {
	weather *weather.WeatherService
	users   *users.UserService
	tokens  *auth.TokenManager
	l       *logger.Logger
}

func NewRouter(
	app *fiber.App,
	weatherService *weather.WeatherService,
	userService *users.UserService,
	tokens *auth.TokenManager,
	l *logger.Logger,
) {
	r := &routes{
		weather: weatherService,
		users:   userService,
		tokens:  tokens,
		l:       l,
	}

	// Swagger documentation
	app.Get("/swagger/doc.json", func(c *fiber.Ctx) error {
		swaggerData, err := os.ReadFile("docs/swagger.json")
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "Failed to read Swagger documentation"})
		}

		c.Set("Content-Type", "application/json")
		return c.Send(swaggerData)
	})

	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	// Accounts
	userGroup := app.Group("/users")
	userGroup.Post("/register", r.handleRegister)
	userGroup.Post("/login", r.handleLogin)
	userGroup.Patch("/password", r.requireAuth, r.handleChangePassword)
	userGroup.Put("/link", r.requireAuth, r.handleLinkAccounts)

	// Preferences and saved locations
	settingsGroup := app.Group("/settings", r.requireAuth)
	settingsGroup.Get("/", r.handleGetSettings)
	settingsGroup.Patch("/", r.handlePatchSettings)
	settingsGroup.Post("/location/:target", r.handleSaveLocation)
	settingsGroup.Patch("/location", r.handleUpdateFavorite)
	settingsGroup.Delete("/location", r.handleDeleteWishlist)

	// Weather
	app.Get("/api_v1/:location_name", r.requireAuth, r.handleSearchLocations)
	app.Post("/api_v1/id/:location_id", r.optionalAuth, r.handleForecast)
}
