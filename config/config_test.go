package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	provider := NewFileConfigProvider("nonexistent.yaml")
	cnf, err := NewConfigWithProvider(provider)
	require.NoError(t, err)
	assert.NotNil(t, cnf)

	assert.Equal(t, "weather-backend", cnf.App.Name)
	assert.Equal(t, "1.0.0", cnf.App.Version)
	assert.Equal(t, "development", cnf.App.Env)
	assert.Equal(t, "8080", cnf.Server.Port)
	assert.Equal(t, 10, cnf.Server.ReadTimeout)
	assert.Equal(t, 10, cnf.Server.WriteTimeout)
	assert.Equal(t, 120, cnf.Server.IdleTimeout)
	assert.Equal(t, "info", cnf.Log.Level)
	assert.Equal(t, "json", cnf.Log.Format)
	assert.Equal(t, "https://api.weatherapi.com/v1", cnf.Weather.BaseURL)
	assert.Equal(t, 5, cnf.Retry.Limit)
	assert.Equal(t, 1, cnf.Retry.DelaySec)
	assert.Equal(t, 2, cnf.Limiter.RequestLimit)
	assert.Equal(t, 30, cnf.Limiter.DurationLimitSec)
	assert.Equal(t, 300, cnf.Auth.TokenExpiresIn)
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	t.Setenv("APP_NAME", "test-app")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WEATHER_API_KEY", "test-key")

	provider := NewFileConfigProvider("nonexistent.yaml")
	cnf, err := NewConfigWithProvider(provider)
	require.NoError(t, err)

	assert.Equal(t, "test-app", cnf.App.Name)
	assert.Equal(t, "production", cnf.App.Env)
	assert.Equal(t, "9090", cnf.Server.Port)
	assert.Equal(t, "debug", cnf.Log.Level)
	assert.Equal(t, "test-key", cnf.Weather.APIKey)
	assert.True(t, cnf.IsProduction())
	assert.False(t, cnf.IsDevelopment())
}

func TestConfigFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlData := []byte(`
app:
  name: yaml-app
weather:
  api_key: yaml-key
redis:
  addr: redis:6379
`)
	require.NoError(t, os.WriteFile(path, yamlData, 0o600))

	cnf, err := NewConfigWithProvider(NewFileConfigProvider(path))
	require.NoError(t, err)

	assert.Equal(t, "yaml-app", cnf.App.Name)
	assert.Equal(t, "yaml-key", cnf.Weather.APIKey)
	assert.Equal(t, "redis:6379", cnf.Redis.Addr)
	// Untouched sections keep env/default values
	assert.Equal(t, "8080", cnf.Server.Port)
}

func TestConfigValidation(t *testing.T) {
	provider := NewFileConfigProvider("nonexistent.yaml")

	valid := &Config{
		App:    AppConfig{Name: "test-app", Version: "1.0.0"},
		Server: ServerConfig{Port: "8080"},
		Retry:  RetryConfig{Limit: 5, DelaySec: 1},
	}
	assert.NoError(t, provider.Validate(valid))

	missingName := &Config{
		Server: ServerConfig{Port: "8080"},
		Retry:  RetryConfig{Limit: 5},
	}
	err := provider.Validate(missingName)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "app.name is required")

	badRetry := &Config{
		App:    AppConfig{Name: "test-app"},
		Server: ServerConfig{Port: "8080"},
	}
	err = provider.Validate(badRetry)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "retry.limit")
}

func TestDBConn(t *testing.T) {
	cnf := &Config{DB: DBConfig{
		Host:     "db",
		Port:     "5432",
		Name:     "weather",
		Username: "app",
		Password: "secret",
		SSLMode:  "disable",
	}}

	assert.Equal(t,
		"host=db port=5432 user=app password=secret dbname=weather sslmode=disable",
		cnf.DBConn())
}

// MockConfigProvider for testing
type MockConfigProvider struct {
	config *Config
	err    error
}

func (m *MockConfigProvider) Load() (*Config, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.config, nil
}

func (m *MockConfigProvider) Validate(cnf *Config) error {
	return nil
}

func TestNewConfigWithProvider(t *testing.T) {
	mockProvider := &MockConfigProvider{
		config: &Config{App: AppConfig{Name: "mock-app"}},
	}

	cnf, err := NewConfigWithProvider(mockProvider)
	require.NoError(t, err)
	assert.Equal(t, "mock-app", cnf.App.Name)
}
