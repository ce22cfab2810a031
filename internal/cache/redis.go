package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/travelplanner/config"
	"github.com/Domenick1991/travelplanner/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client    *redis.Client
	offersTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, offersTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		offersTTL,
	)
}

func NewRedisCacheWithClient(client *redis.Client, offersTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, offersTTL: offersTTL}
}

// GetOffers returns nil, nil on a miss.
func (c *RedisCache) GetOffers(ctx context.Context, key string) ([]domain.EnrichedOffer, error) {
	data, err := c.client.Get(ctx, offersKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var offers []domain.EnrichedOffer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

func (c *RedisCache) SetOffers(ctx context.Context, key string, offers []domain.EnrichedOffer) error {
	payload, err := json.Marshal(offers)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, offersKey(key), payload, c.offersTTL).Err()
}

// AcquireOfferHold reports false when the user already holds the offer.
func (c *RedisCache) AcquireOfferHold(ctx context.Context, userID, offerID string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, offerHoldKey(userID, offerID), "held", ttl).Result()
}

func (c *RedisCache) ReleaseOfferHold(ctx context.Context, userID, offerID string) error {
	return c.client.Del(ctx, offerHoldKey(userID, offerID)).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func offersKey(key string) string {
	return "cache:offers:" + key
}

func offerHoldKey(userID, offerID string) string {
	return fmt.Sprintf("lock:offer:%s:%s", userID, offerID)
}
