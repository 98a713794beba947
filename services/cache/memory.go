package cachesvc

import (
	"context"
	"sync"
	"time"

	"github.com/nossauesc/agenda/core/account"
)

var NowFunc = time.Now // mockable

type entry struct {
	prof    account.Profile
	expires time.Time
}

// MemoryCache is the SessionCache used when no Redis server is configured.
type MemoryCache struct {
	ttl     time.Duration
	entries map[string]entry
	mutex   sync.RWMutex
}

var _ account.SessionCache = (*MemoryCache)(nil)

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, entries: make(map[string]entry)}
}

func (c *MemoryCache) GetProfile(_ context.Context, uid string) (account.Profile, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	e, ok := c.entries[uid]
	if !ok || (c.ttl > 0 && NowFunc().After(e.expires)) {
		return account.Profile{}, false
	}
	return e.prof, true
}

func (c *MemoryCache) SetProfile(_ context.Context, p account.Profile) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cleanupExpiredLocked()
	c.entries[p.ID] = entry{prof: p, expires: NowFunc().Add(c.ttl)}
	return nil
}

func (c *MemoryCache) DeleteProfile(_ context.Context, uid string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.entries, uid)
	return nil
}

func (c *MemoryCache) cleanupExpiredLocked() {
	if c.ttl <= 0 {
		return
	}
	now := NowFunc()
	for uid, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, uid)
		}
	}
}
