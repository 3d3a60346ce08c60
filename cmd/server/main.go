package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	flag "github.com/spf13/pflag"

	"github.com/dharmasatrya/ticketkini/internal/api"
	"github.com/dharmasatrya/ticketkini/internal/cache"
	"github.com/dharmasatrya/ticketkini/internal/config"
	"github.com/dharmasatrya/ticketkini/internal/handler"
	"github.com/dharmasatrya/ticketkini/internal/history"
	"github.com/dharmasatrya/ticketkini/internal/logging"
	"github.com/dharmasatrya/ticketkini/internal/ratelimit"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := logging.New(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	rateLimiter := ratelimit.NewEndpointLimiter(cfg.RateLimit)
	rateLimiter.SetLimit(ratelimit.GroupSearch, 5, 10)
	rateLimiter.SetLimit(ratelimit.GroupLocations, 20, 40)
	rateLimiter.SetLimit(ratelimit.GroupAuth, 2, 5)

	client := api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, rateLimiter)

	var tripCache cache.Cache
	if cfg.Cache.Enabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host:     cfg.Cache.Host,
			Port:     cfg.Cache.Port,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
			TTL:      cfg.Cache.TTL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		tripCache = redisCache
		logger.Info("redis cache enabled", "addr", cfg.Cache.Host+":"+cfg.Cache.Port, "ttl", cfg.Cache.TTL)
	} else {
		tripCache = cache.NewNoOpCache()
		logger.Info("cache disabled")
	}
	defer tripCache.Close()

	handler.Handlers{
		Auth:          handler.NewAuthHandler(client, logger),
		Search:        handler.NewSearchHandler(client, tripCache, logger),
		Bookings:      handler.NewBookingHandler(client, history.Config{Timeout: cfg.API.HistoryTimeout}, logger),
		Notifications: handler.NewNotificationHandler(client),
		Layout:        handler.NewLayoutHandler(client, logger),
	}.Register(e)

	logger.Info("starting ticketkini web client", "port", cfg.Server.Port, "api", client.BaseURL())

	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
