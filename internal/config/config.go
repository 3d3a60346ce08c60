package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dharmasatrya/ticketkini/internal/logging"
	"github.com/dharmasatrya/ticketkini/internal/notify"
	"github.com/dharmasatrya/ticketkini/internal/ratelimit"
)

// EnvConfigPath names the config file when --config is not given.
const EnvConfigPath = "TICKETKINI_CONFIG"

type Config struct {
	Server    ServerConfig              `yaml:"server"`
	API       APIConfig                 `yaml:"api"`
	Cache     CacheConfig               `yaml:"cache"`
	Notify    notify.Config             `yaml:"notify"`
	Storage   StorageConfig             `yaml:"storage"`
	Log       logging.Config            `yaml:"log"`
	RateLimit ratelimit.RateLimitConfig `yaml:"rate_limit"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type APIConfig struct {
	BaseURL        string        `yaml:"base_url"`
	Timeout        time.Duration `yaml:"timeout"`
	HistoryTimeout time.Duration `yaml:"history_timeout"`
}

type CacheConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Host     string        `yaml:"host"`
	Port     string        `yaml:"port"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Port: "8080"},
		API: APIConfig{
			BaseURL:        "http://localhost:8000",
			Timeout:        15 * time.Second,
			HistoryTimeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			Host:    "localhost",
			Port:    "6379",
			TTL:     5 * time.Minute,
		},
		Notify:    notify.DefaultConfig(),
		Storage:   StorageConfig{Path: "ticketkini.db"},
		Log:       logging.Config{Level: "info", Format: "text"},
		RateLimit: ratelimit.DefaultConfig(),
	}
}

// Load starts from defaults, overlays the YAML file at path (or the one
// named by TICKETKINI_CONFIG), then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.API.BaseURL = getEnv("API_BASE_URL", cfg.API.BaseURL)
	cfg.Cache.Enabled = getEnvBool("CACHE_ENABLED", cfg.Cache.Enabled)
	cfg.Cache.Host = getEnv("REDIS_HOST", cfg.Cache.Host)
	cfg.Cache.Port = getEnv("REDIS_PORT", cfg.Cache.Port)
	cfg.Cache.Password = getEnv("REDIS_PASSWORD", cfg.Cache.Password)
	cfg.Cache.DB = getEnvInt("REDIS_DB", cfg.Cache.DB)
	cfg.Cache.TTL = getEnvDuration("REDIS_TTL", cfg.Cache.TTL)
	cfg.Notify.URL = getEnv("NOTIFY_WS_URL", cfg.Notify.URL)
	cfg.Storage.Path = getEnv("STORAGE_PATH", cfg.Storage.Path)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
