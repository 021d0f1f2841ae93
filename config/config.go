package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App     AppConfig     `yaml:"app"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	DB      DBConfig      `yaml:"db"`
	Redis   RedisConfig   `yaml:"redis"`
	Auth    AuthConfig    `yaml:"auth"`
	Weather WeatherConfig `yaml:"weather"`
	Retry   RetryConfig   `yaml:"retry"`
	Limiter LimiterConfig `yaml:"limiter"`
	Sentry  SentryConfig  `yaml:"sentry"`
}

type AppConfig struct {
	Name    string `yaml:"name" envconfig:"APP_NAME" default:"weather-backend"`
	Version string `yaml:"version" envconfig:"APP_VERSION" default:"1.0.0"`
	Env     string `yaml:"env" envconfig:"APP_ENV" default:"development"`
}

type ServerConfig struct {
	Port         string `yaml:"port" envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout  int    `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT" default:"10"`
	WriteTimeout int    `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT" default:"10"`
	IdleTimeout  int    `yaml:"idle_timeout" envconfig:"SERVER_IDLE_TIMEOUT" default:"120"`
}

type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL" default:"info"`
	Format string `yaml:"format" envconfig:"LOG_FORMAT" default:"json"`
}

type DBConfig struct {
	Host     string `yaml:"host" envconfig:"DB_HOST" default:"localhost"`
	Port     string `yaml:"port" envconfig:"DB_PORT" default:"5432"`
	Name     string `yaml:"name" envconfig:"DB_NAME" default:"weather"`
	Username string `yaml:"username" envconfig:"DB_USERNAME" default:"postgres"`
	Password string `yaml:"password" envconfig:"DB_PASSWORD" default:"postgres"`
	SSLMode  string `yaml:"ssl_mode" envconfig:"DB_SSL_MODE" default:"disable"`
}

type RedisConfig struct {
	Addr string `yaml:"addr" envconfig:"REDIS_ADDR" default:"localhost:6379"`
	DB   int    `yaml:"db" envconfig:"REDIS_DB" default:"0"`
}

type AuthConfig struct {
	Secret string `yaml:"secret" envconfig:"AUTH_SECRET"`
	// Token lifetime in minutes, issued on login and refreshed per response.
	TokenExpiresIn int `yaml:"token_expires_in" envconfig:"AUTH_TOKEN_EXPIRES_IN" default:"300"`
}

type WeatherConfig struct {
	BaseURL string  `yaml:"base_url" envconfig:"WEATHER_BASE_URL" default:"https://api.weatherapi.com/v1"`
	APIKey  string  `yaml:"api_key" envconfig:"WEATHER_API_KEY"`
	Timeout int     `yaml:"timeout" envconfig:"WEATHER_TIMEOUT" default:"30"`
	RPS     float64 `yaml:"rps" envconfig:"WEATHER_RPS" default:"5"`
	Burst   int     `yaml:"burst" envconfig:"WEATHER_BURST" default:"10"`
}

type RetryConfig struct {
	Limit    int `yaml:"limit" envconfig:"RETRY_LIMIT" default:"5"`
	DelaySec int `yaml:"delay_sec" envconfig:"RETRY_DELAY_SEC" default:"1"`
	Workers  int `yaml:"workers" envconfig:"TASK_WORKERS" default:"3"`
	Queue    int `yaml:"queue" envconfig:"TASK_QUEUE_SIZE" default:"100"`
}

type LimiterConfig struct {
	RequestLimit     int `yaml:"request_limit" envconfig:"LIMITER_REQUEST_LIMIT" default:"2"`
	DurationLimitSec int `yaml:"duration_limit_sec" envconfig:"LIMITER_DURATION_SEC" default:"30"`
}

type SentryConfig struct {
	DSN           string `yaml:"dsn" envconfig:"SENTRY_DSN"`
	MaxErrorDepth int    `yaml:"max_error_depth" envconfig:"SENTRY_MAX_ERROR_DEPTH" default:"10"`
	Debug         bool   `yaml:"debug" envconfig:"SENTRY_DEBUG" default:"false"`
}

// ConfigProvider loads and validates application configuration.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(cnf *Config) error
}

type FileConfigProvider struct {
	path string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path}
}

func (p *FileConfigProvider) Load() (*Config, error) {
	// .env is optional, real environments set variables directly
	_ = godotenv.Load()

	var cnf Config

	if err := p.loadFromFile(&cnf); err != nil {
		return nil, err
	}

	// Environment variables override file values
	if err := envconfig.Process("", &cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	return &cnf, nil
}

func (p *FileConfigProvider) loadFromFile(cnf *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if err != nil {
		// A missing config file is fine, env vars and defaults cover everything
		return nil
	}

	if err := yaml.Unmarshal(yamlData, cnf); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return nil
}

func (p *FileConfigProvider) Validate(cnf *Config) error {
	if cnf.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	if cnf.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if cnf.Retry.Limit <= 0 {
		return fmt.Errorf("retry.limit must be positive")
	}
	return nil
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, err
	}

	if err := provider.Validate(cnf); err != nil {
		return nil, err
	}

	return cnf, nil
}

func NewConfig() (*Config, error) {
	return NewConfigWithProvider(NewFileConfigProvider("config/config.yaml"))
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DBConn builds the lib/pq connection string.
func (c *Config) DBConn() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.Username, c.DB.Password, c.DB.Name, c.DB.SSLMode)
}
