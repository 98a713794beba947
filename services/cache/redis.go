package cachesvc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/nossauesc/agenda/core"
	"github.com/nossauesc/agenda/core/account"
)

const keyPrefix = "@nossauesc:user:"

func profileKey(uid string) string {
	return keyPrefix + uid
}

// RedisCache keeps profile snapshots in Redis as JSON.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger core.Logger
}

var _ account.SessionCache = (*RedisCache)(nil)

func NewRedisClient(conf *core.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         conf.Redis.Addr,
		Password:     conf.Redis.Password,
		DB:           conf.Redis.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

func NewRedisCache(client *redis.Client, ttl time.Duration, logger core.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

// GetProfile reports a miss on any failure; the caller falls back to the document store.
func (c *RedisCache) GetProfile(ctx context.Context, uid string) (account.Profile, bool) {
	raw, err := c.client.Get(ctx, profileKey(uid)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("reading cached profile", errors.Wrap(err, uid))
		}
		return account.Profile{}, false
	}
	var prof account.Profile
	if err = json.Unmarshal(raw, &prof); err != nil {
		c.logger.Warn("decoding cached profile", errors.Wrap(err, uid))
		return account.Profile{}, false
	}
	return prof, true
}

func (c *RedisCache) SetProfile(ctx context.Context, p account.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "encoding profile")
	}
	return errors.Wrap(c.client.Set(ctx, profileKey(p.ID), raw, c.ttl).Err(), "caching profile")
}

func (c *RedisCache) DeleteProfile(ctx context.Context, uid string) error {
	return errors.Wrap(c.client.Del(ctx, profileKey(uid)).Err(), "deleting cached profile")
}
