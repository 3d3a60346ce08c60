package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/ticketkini/internal/models"
)

// Cache holds raw search responses. Trips are stored before
// deduplication so every reader runs the same pipeline.
type Cache interface {
	Get(ctx context.Context, req models.SearchRequest) ([]models.Trip, bool)
	Set(ctx context.Context, req models.SearchRequest, trips []models.Trip) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     "localhost",
		Port:     "6379",
		Password: "",
		DB:       0,
		TTL:      5 * time.Minute,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewRedisCacheWithClient(client, cfg.TTL), nil
}

// NewRedisCacheWithClient wraps an existing client without pinging it.
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisCache) Get(ctx context.Context, req models.SearchRequest) ([]models.Trip, bool) {
	data, err := c.client.Get(ctx, Key(req)).Bytes()
	if err != nil {
		return nil, false
	}

	var trips []models.Trip
	if err := json.Unmarshal(data, &trips); err != nil {
		return nil, false
	}

	return trips, true
}

func (c *RedisCache) Set(ctx context.Context, req models.SearchRequest, trips []models.Trip) error {
	data, err := json.Marshal(trips)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, Key(req), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, req models.SearchRequest) ([]models.Trip, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, req models.SearchRequest, trips []models.Trip) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

// Key ignores sort and paging: the client fetches one large page and
// does both locally.
func Key(req models.SearchRequest) string {
	keyData := struct {
		Source      string
		Destination string
		TravelDate  string
		VehicleType string
		Limit       int
	}{
		Source:      strings.ToLower(strings.TrimSpace(req.Source)),
		Destination: strings.ToLower(strings.TrimSpace(req.Destination)),
		TravelDate:  req.TravelDate,
		VehicleType: strings.ToLower(req.VehicleType),
		Limit:       req.Limit,
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return "trips:" + hex.EncodeToString(hash[:])
}
