package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-backend/config"
	_ "weather-backend/docs"
	"weather-backend/internal/auth"
	"weather-backend/internal/cache"
	v1 "weather-backend/internal/controllers/http/v1"
	"weather-backend/internal/repositories"
	"weather-backend/internal/services/users"
	"weather-backend/internal/services/weather"
	"weather-backend/internal/storage"
	"weather-backend/internal/tasks"
	"weather-backend/pkg/httpserver"
	"weather-backend/pkg/logger"
	"weather-backend/pkg/observe"
)

// @title Weather Backend
// @version 1.0.0
// @description Weather forecast backend with per-user display preferences.
// @description Forecasts come from weatherapi.com, are cached per location and trimmed to each user's settings.

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @tag.name Users
// @tag.description Accounts and authentication
// @tag.name Settings
// @tag.description Display preferences and saved locations
// @tag.name Weather
// @tag.description Location search and forecasts
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	sentryHook := observe.NewSentryHook(
		cnf.App.Env, cnf.App.Name, cnf.Sentry.MaxErrorDepth, cnf.Sentry.Debug, cnf.Sentry.DSN)

	l := logger.NewZapLogger(cnf.App.Name, cnf.App.Env, cnf.Log.Level, os.Stdout, sentryHook)
	sentryHook.SetLogger(l)

	db, err := storage.NewPostgres(cnf.DBConn(), l)
	if err != nil {
		l.Fatal("cannot connect to postgres", map[string]any{"err": err})
	}
	if err := db.Migrate(ctx); err != nil {
		l.Fatal("cannot run migrations", map[string]any{"err": err})
	}

	forecastCache, err := cache.NewForecastCache(cnf.Redis.Addr, cnf.Redis.DB, l)
	if err != nil {
		l.Fatal("cannot connect to redis", map[string]any{"err": err})
	}

	provider := repositories.NewWeatherAPI(
		cnf.Weather.BaseURL, cnf.Weather.APIKey,
		time.Duration(cnf.Weather.Timeout)*time.Second,
		cnf.Weather.RPS, cnf.Weather.Burst, l)

	queue := tasks.NewQueue(
		cnf.Retry.Workers, cnf.Retry.Queue, cnf.Retry.Limit,
		time.Duration(cnf.Retry.DelaySec)*time.Second, l)

	tokens := auth.NewTokenManager(cnf.Auth.Secret, cnf.Auth.TokenExpiresIn)

	weatherService := weather.NewWeatherService(provider, forecastCache, queue, l)
	userService := users.NewUserService(db, tokens, l)

	app := httpserver.InitFiberServer(cnf)

	v1.NewRouter(
		app,
		weatherService,
		userService,
		tokens,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{"port": cnf.Server.Port})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		queue.Stop()
		_ = forecastCache.Close()
		_ = db.Close()
		sentryHook.Flush()
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
