package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"weather-backend/internal/models"
	"weather-backend/pkg/logger"
)

// WeatherAPI talks to api.weatherapi.com. Requests pass through a token
// bucket limiter so bursts of clients do not exhaust the API key quota.
type WeatherAPI struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	l       *logger.Logger
}

func NewWeatherAPI(baseURL, apiKey string, timeout time.Duration, rps float64, burst int, l *logger.Logger) *WeatherAPI {
	return &WeatherAPI{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		l:       l,
	}
}

// SearchLocations resolves a free-form place name to provider locations.
func (w *WeatherAPI) SearchLocations(ctx context.Context, name string) ([]models.SearchLocation, error) {
	query := url.Values{}
	query.Set("key", w.apiKey)
	query.Set("q", name)
	query.Set("aqi", "no")

	body, err := w.get(ctx, "/search.json", query)
	if err != nil {
		return nil, err
	}

	var locations []models.SearchLocation
	if err := json.Unmarshal(body, &locations); err != nil {
		return nil, errors.Wrap(err, "failed to decode search response")
	}

	return locations, nil
}

// FetchForecast returns the raw forecast payload for a provider location id.
func (w *WeatherAPI) FetchForecast(ctx context.Context, locationID, days int) ([]byte, error) {
	query := url.Values{}
	query.Set("key", w.apiKey)
	query.Set("q", "id:"+strconv.Itoa(locationID))
	query.Set("days", strconv.Itoa(days))
	query.Set("aqi", "no")
	query.Set("alerts", "yes")

	return w.get(ctx, "/forecast.json", query)
}

func (w *WeatherAPI) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := w.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limiter wait failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}

	w.l.Debug("provider request", map[string]any{"path": path})

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "provider request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read provider response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, body)
	}

	return body, nil
}
