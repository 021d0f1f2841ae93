// Package weather orchestrates the forecast flow: cache lookup, queued
// provider fetch and settings-driven document assembly.
package weather

import (
	"context"

	"github.com/pkg/errors"

	"weather-backend/internal/cache"
	"weather-backend/internal/forecast"
	"weather-backend/internal/models"
	"weather-backend/internal/repositories"
	"weather-backend/internal/tasks"
	"weather-backend/pkg/logger"
)

// ForecastCache reads and writes raw provider payloads.
type ForecastCache interface {
	Get(ctx context.Context, locationID int) ([]byte, error)
	Set(ctx context.Context, locationID int, payload []byte) error
}

// FetchQueue runs a job on the background worker pool.
type FetchQueue interface {
	Submit(ctx context.Context, job tasks.Job) ([]byte, error)
}

// WeatherService represents the weather service.
type WeatherService struct {
	provider repositories.WeatherProvider
	cache    ForecastCache
	queue    FetchQueue
	l        *logger.Logger
}

func NewWeatherService(provider repositories.WeatherProvider, cache ForecastCache, queue FetchQueue, l *logger.Logger) *WeatherService {
	return &WeatherService{
		provider: provider,
		cache:    cache,
		queue:    queue,
		l:        l,
	}
}

// SearchLocations resolves a place name to provider location candidates.
func (s *WeatherService) SearchLocations(ctx context.Context, name string) ([]models.SearchLocation, error) {
	locations, err := s.provider.SearchLocations(ctx, name)
	if err != nil {
		return nil, errors.Wrap(err, "location search failed")
	}

	s.l.Info("location search completed", map[string]any{"query": name, "hits": len(locations)})
	return locations, nil
}

// Forecast assembles the forecast document for a location using the given
// preference bundle.
func (s *WeatherService) Forecast(ctx context.Context, locationID int, bundle *models.SettingsBundle) (*forecast.Document, error) {
	units, err := forecast.ParseUnits(bundle.Settings.Units)
	if err != nil {
		return nil, err
	}

	raw, err := s.rawForecast(ctx, locationID, bundle.Settings.Daily)
	if err != nil {
		return nil, err
	}

	doc, err := forecast.Build(raw, units,
		&bundle.Current, &bundle.Daily, &bundle.Hourly,
		bundle.Settings.Daily, bundle.Settings.Hourly)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// rawForecast returns the raw provider payload, preferring the cache. Cache
// failures are logged and fall back to a direct fetch.
func (s *WeatherService) rawForecast(ctx context.Context, locationID, dayCount int) ([]byte, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, locationID)
		if err == nil {
			s.l.Debug("forecast cache hit", map[string]any{"location_id": locationID})
			return raw, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.l.Warning("forecast cache read failed", map[string]any{
				"location_id": locationID,
				"error":       err.Error(),
			})
		}
	}

	days := forecast.FetchDays(dayCount)
	raw, err := s.queue.Submit(ctx, func(ctx context.Context) ([]byte, error) {
		return s.provider.FetchForecast(ctx, locationID, days)
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, locationID, raw); err != nil {
			s.l.Warning("forecast cache write failed", map[string]any{
				"location_id": locationID,
				"error":       err.Error(),
			})
		}
	}

	return raw, nil
}
