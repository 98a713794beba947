package cachesvc

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/volatiletech/null/v8"

	"github.com/nossauesc/agenda/core/account"
	logsvc "github.com/nossauesc/agenda/services/logger"
)

func Test_profileKey(t *testing.T) {
	assert.Equal(t, "@nossauesc:user:abc123", profileKey("abc123"))
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	NowFunc = func() time.Time { return now }
	defer func() { NowFunc = time.Now }()

	c := NewMemoryCache(time.Hour)
	prof := account.Profile{ID: "u1", DisplayName: "Ana", Role: account.RoleStudent}

	_, ok := c.GetProfile(ctx, "u1")
	assert.False(t, ok, "empty cache")

	assert.NoError(t, c.SetProfile(ctx, prof))
	got, ok := c.GetProfile(ctx, "u1")
	assert.True(t, ok)
	assert.Equal(t, prof, got)

	t.Run("expired", func(t *testing.T) {
		now = now.Add(2 * time.Hour)
		_, ok := c.GetProfile(ctx, "u1")
		assert.False(t, ok)

		// expired entries are dropped on the next write
		assert.NoError(t, c.SetProfile(ctx, account.Profile{ID: "u2"}))
		assert.Len(t, c.entries, 1)
	})

	t.Run("delete", func(t *testing.T) {
		assert.NoError(t, c.DeleteProfile(ctx, "u2"))
		_, ok := c.GetProfile(ctx, "u2")
		assert.False(t, ok)
		assert.NoError(t, c.DeleteProfile(ctx, "unknown"))
	})
}

func TestRedisCache_unreachable(t *testing.T) {
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	defer func() { _ = client.Close() }()
	c := NewRedisCache(client, time.Hour, logsvc.NewNopLogger())

	_, ok := c.GetProfile(ctx, "u1")
	assert.False(t, ok, "failures are misses")
	assert.Error(t, c.SetProfile(ctx, account.Profile{ID: "u1"}))
	assert.Error(t, c.DeleteProfile(ctx, "u1"))
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()
	c := NewRedisCache(client, time.Hour, logsvc.NewNopLogger())

	prof := account.Profile{
		ID:          "u1",
		DisplayName: "Ana",
		Email:       "ana@uesc.br",
		Course:      null.StringFrom("cic"),
		Role:        account.RoleStudent,
		XP:          10,
		CreatedAt:   time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC),
	}

	_, ok := c.GetProfile(ctx, "u1")
	assert.False(t, ok, "empty cache")

	assert.NoError(t, c.SetProfile(ctx, prof))
	got, ok := c.GetProfile(ctx, "u1")
	assert.True(t, ok)
	assert.Equal(t, prof, got)
	assert.True(t, mr.Exists(profileKey("u1")))
	assert.Equal(t, time.Hour, mr.TTL(profileKey("u1")))

	t.Run("expired", func(t *testing.T) {
		mr.FastForward(2 * time.Hour)
		_, ok := c.GetProfile(ctx, "u1")
		assert.False(t, ok)
	})

	t.Run("corrupt value", func(t *testing.T) {
		assert.NoError(t, mr.Set(profileKey("u2"), "{not json"))
		_, ok := c.GetProfile(ctx, "u2")
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		assert.NoError(t, c.SetProfile(ctx, account.Profile{ID: "u3"}))
		assert.NoError(t, c.DeleteProfile(ctx, "u3"))
		_, ok := c.GetProfile(ctx, "u3")
		assert.False(t, ok)
		assert.False(t, mr.Exists(profileKey("u3")))
		assert.NoError(t, c.DeleteProfile(ctx, "unknown"))
	})
}
