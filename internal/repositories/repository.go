package repositories

import (
	"context"

	"weather-backend/internal/models"
)

// WeatherProvider fetches location and forecast data from an upstream
// weather service.
type WeatherProvider interface {
	SearchLocations(ctx context.Context, name string) ([]models.SearchLocation, error)
	FetchForecast(ctx context.Context, locationID, days int) ([]byte, error)
}
