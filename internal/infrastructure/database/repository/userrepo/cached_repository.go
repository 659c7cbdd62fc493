package userrepo

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"hr-assistant-api/internal/domain/user"
)

// CachedRepository keeps recently resolved users in memory. Every
// authenticated request looks its user up by id. The LRU is safe for
// concurrent use on its own.
type CachedRepository struct {
	user.Repository

	cache *lru.Cache
	ttl   time.Duration
	now   func() time.Time
}

type cacheEntry struct {
	user      user.User
	expiresAt time.Time
}

var _ user.Repository = (*CachedRepository)(nil)

// NewCachedRepository wraps next with an LRU of size entries that expire after ttl.
func NewCachedRepository(next user.Repository, size int, ttl time.Duration) (*CachedRepository, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &CachedRepository{Repository: next, cache: cache, ttl: ttl, now: time.Now}, nil
}

func (c *CachedRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if u, ok := c.get(id); ok {
		return u, nil
	}

	u, err := c.Repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(id, *u)
	return u, nil
}

func (c *CachedRepository) get(id string) (*user.User, bool) {
	val, found := c.cache.Get(id)
	if !found {
		return nil, false
	}
	entry := val.(cacheEntry)
	if c.now().After(entry.expiresAt) {
		c.cache.Remove(id)
		return nil, false
	}
	u := entry.user
	return &u, true
}

func (c *CachedRepository) set(id string, u user.User) {
	c.cache.Add(id, cacheEntry{user: u, expiresAt: c.now().Add(c.ttl)})
}

// Len reports how many users are cached.
func (c *CachedRepository) Len() int {
	return c.cache.Len()
}
