package weather_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-backend/internal/cache"
	"weather-backend/internal/forecast"
	"weather-backend/internal/models"
	"weather-backend/internal/services/weather"
	"weather-backend/internal/tasks"
	"weather-backend/pkg/logger"
)

type mockProvider struct {
	searchHits   []models.SearchLocation
	searchErr    error
	forecastRaw  []byte
	forecastErr  error
	fetchCalls   int
	lastDaysArg  int
	lastLocation int
}

func (m *mockProvider) SearchLocations(ctx context.Context, name string) ([]models.SearchLocation, error) {
	return m.searchHits, m.searchErr
}

func (m *mockProvider) FetchForecast(ctx context.Context, locationID, days int) ([]byte, error) {
	m.fetchCalls++
	m.lastLocation = locationID
	m.lastDaysArg = days
	return m.forecastRaw, m.forecastErr
}

type mockCache struct {
	stored  map[int][]byte
	getErr  error
	setErr  error
	setCall int
}

func (m *mockCache) Get(ctx context.Context, locationID int) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	payload, ok := m.stored[locationID]
	if !ok {
		return nil, cache.ErrMiss
	}
	return payload, nil
}

func (m *mockCache) Set(ctx context.Context, locationID int, payload []byte) error {
	m.setCall++
	if m.setErr != nil {
		return m.setErr
	}
	if m.stored == nil {
		m.stored = map[int][]byte{}
	}
	m.stored[locationID] = payload
	return nil
}

// inlineQueue runs jobs synchronously without a worker pool.
type inlineQueue struct{}

func (inlineQueue) Submit(ctx context.Context, job tasks.Job) ([]byte, error) {
	return job(ctx)
}

func testLogger() *logger.Logger {
	return logger.NewZapLogger("weather-test", "test", "error", io.Discard)
}

func testRawForecast(t *testing.T, days int) []byte {
	t.Helper()

	condition := map[string]any{"text": "Sunny", "icon": "//cdn/sun.png"}
	hour := map[string]any{
		"time": "2024-06-01 00:00", "condition": condition,
		"wind_dir": "N", "cloud": 10,
		"will_it_rain": 0, "chance_of_rain": 0,
		"will_it_snow": 0, "chance_of_snow": 0,
		"temp_c": 20.0, "temp_f": 68.0,
	}

	var forecastDays []map[string]any
	for i := 0; i < days; i++ {
		hours := make([]map[string]any, 24)
		for h := range hours {
			hours[h] = hour
		}
		forecastDays = append(forecastDays, map[string]any{
			"date": "2024-06-01",
			"day": map[string]any{
				"condition":            condition,
				"daily_will_it_rain":   0,
				"daily_chance_of_rain": 0,
				"daily_will_it_snow":   0,
				"daily_chance_of_snow": 0,
				"avghumidity":          55.0,
			},
			"astro": map[string]any{
				"sunrise": "05:01 AM", "sunset": "09:01 PM",
				"moonrise": "01:00 AM", "moonset": "11:00 AM",
				"moon_phase": "Waxing Crescent",
			},
			"hour": hours,
		})
	}

	doc := map[string]any{
		"location": map[string]any{
			"name": "London", "region": "Greater London", "country": "United Kingdom",
			"lat": 51.52, "lon": -0.11, "tz_id": "Europe/London",
			"localtime_epoch": 1717243200, "localtime": "2024-06-01 12:00",
		},
		"current": map[string]any{
			"last_updated": "2024-06-01 11:45", "condition": condition,
			"humidity": 60, "cloud": 25, "wind_dir": "SW",
			"temp_c": 18.0, "temp_f": 64.4,
		},
		"forecast": map[string]any{"forecastday": forecastDays},
		"alerts":   map[string]any{"alert": []any{}},
	}

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	return raw
}

func defaultBundle() *models.SettingsBundle {
	bundle := models.DefaultSettingsBundle()
	return &bundle
}

func TestForecast_CacheMissFetchesAndStores(t *testing.T) {
	provider := &mockProvider{forecastRaw: testRawForecast(t, 3)}
	store := &mockCache{}

	svc := weather.NewWeatherService(provider, store, inlineQueue{}, testLogger())

	doc, err := svc.Forecast(context.Background(), 2801268, defaultBundle())
	require.NoError(t, err)

	assert.Equal(t, 1, provider.fetchCalls)
	assert.Equal(t, 2801268, provider.lastLocation)
	assert.Equal(t, 3, provider.lastDaysArg)
	assert.Equal(t, 1, store.setCall)
	assert.Len(t, doc.Forecast.Forecastday, 3)
	assert.Len(t, doc.Forecast.Forecasthour, 6)
}

func TestForecast_CacheHitSkipsProvider(t *testing.T) {
	provider := &mockProvider{}
	store := &mockCache{stored: map[int][]byte{2801268: testRawForecast(t, 3)}}

	svc := weather.NewWeatherService(provider, store, inlineQueue{}, testLogger())

	doc, err := svc.Forecast(context.Background(), 2801268, defaultBundle())
	require.NoError(t, err)

	assert.Zero(t, provider.fetchCalls)
	assert.Equal(t, "London", doc.Location.Name)
}

func TestForecast_CacheErrorFallsBackToProvider(t *testing.T) {
	provider := &mockProvider{forecastRaw: testRawForecast(t, 3)}
	store := &mockCache{getErr: errors.New("redis down")}

	svc := weather.NewWeatherService(provider, store, inlineQueue{}, testLogger())

	_, err := svc.Forecast(context.Background(), 2801268, defaultBundle())
	require.NoError(t, err)
	assert.Equal(t, 1, provider.fetchCalls)
}

func TestForecast_DayFloorAppliedToFetch(t *testing.T) {
	provider := &mockProvider{forecastRaw: testRawForecast(t, 2)}
	svc := weather.NewWeatherService(provider, &mockCache{}, inlineQueue{}, testLogger())

	bundle := defaultBundle()
	bundle.Settings.Daily = 1

	doc, err := svc.Forecast(context.Background(), 2801268, bundle)
	require.NoError(t, err)

	assert.Equal(t, 2, provider.lastDaysArg)
	assert.Len(t, doc.Forecast.Forecastday, 1)
}

func TestForecast_InvalidUnits(t *testing.T) {
	provider := &mockProvider{forecastRaw: testRawForecast(t, 3)}
	svc := weather.NewWeatherService(provider, &mockCache{}, inlineQueue{}, testLogger())

	bundle := defaultBundle()
	bundle.Settings.Units = "K"

	_, err := svc.Forecast(context.Background(), 2801268, bundle)
	assert.ErrorIs(t, err, forecast.ErrInvalidPreference)
	assert.Zero(t, provider.fetchCalls)
}

func TestForecast_FetchErrorPropagates(t *testing.T) {
	provider := &mockProvider{forecastErr: errors.New("provider down")}
	svc := weather.NewWeatherService(provider, &mockCache{}, inlineQueue{}, testLogger())

	_, err := svc.Forecast(context.Background(), 2801268, defaultBundle())
	assert.Error(t, err)
}

func TestSearchLocations(t *testing.T) {
	provider := &mockProvider{searchHits: []models.SearchLocation{
		{ID: 2801268, Name: "London", Country: "United Kingdom"},
	}}
	svc := weather.NewWeatherService(provider, &mockCache{}, inlineQueue{}, testLogger())

	hits, err := svc.SearchLocations(context.Background(), "London")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "London", hits[0].Name)
}

func TestSearchLocations_Error(t *testing.T) {
	provider := &mockProvider{searchErr: errors.New("quota exceeded")}
	svc := weather.NewWeatherService(provider, &mockCache{}, inlineQueue{}, testLogger())

	_, err := svc.SearchLocations(context.Background(), "London")
	assert.Error(t, err)
}
