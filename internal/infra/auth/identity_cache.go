package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"contactbook/config"
	"contactbook/internal/domain/entity"
	"contactbook/internal/domain/repository"
	"contactbook/internal/domain/service"
	"contactbook/internal/errors"

	"go.uber.org/fx"
)

type cacheEntry struct {
	user      *entity.User
	expiresAt time.Time
}

// identityCache keeps recently resolved users in memory.
// Entries only leave early through Invalidate; a change written to the store
// by anyone else is visible once the entry expires.
type identityCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	// generations counts Invalidate calls per username. A load only stores
	// its result if the count did not move while it ran.
	generations map[string]uint64
	ttl         time.Duration
	users       repository.UserRepository
	now         func() time.Time
}

// IdentityCacheParams defines the dependencies for the identity cache
type IdentityCacheParams struct {
	fx.In

	Lc       fx.Lifecycle
	Config   *config.Config
	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewIdentityCache creates the cache and ties its sweeper to the app lifecycle.
func NewIdentityCache(params IdentityCacheParams) service.IdentityCache {
	cache := newIdentityCache(params.UserRepo, params.Config.Auth.IdentityCacheTTL, time.Now)

	stop := make(chan struct{})
	done := make(chan struct{})
	params.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				cache.sweepEvery(cache.ttl, stop)
			}()
			params.Logger.Info("Identity cache started", slog.Duration("ttl", cache.ttl))

			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			select {
			case <-done:
			case <-ctx.Done():
			}

			return nil
		},
	})

	return cache
}

func newIdentityCache(users repository.UserRepository, ttl time.Duration, now func() time.Time) *identityCache {
	return &identityCache{
		entries:     make(map[string]cacheEntry),
		generations: make(map[string]uint64),
		ttl:         ttl,
		users:       users,
		now:         now,
	}
}

// Lookup returns a copy of the cached user or loads it from the store.
func (c *identityCache) Lookup(ctx context.Context, username string) (*entity.User, error) {
	now := c.now()

	c.mu.RLock()
	entry, ok := c.entries[username]
	c.mu.RUnlock()

	if ok && now.Before(entry.expiresAt) {
		return entry.user.Clone(), nil
	}

	c.mu.Lock()
	// Another goroutine may have refreshed it in between.
	if cur, still := c.entries[username]; still && !now.Before(cur.expiresAt) {
		delete(c.entries, username)
	}
	gen := c.generations[username]
	c.mu.Unlock()

	user, err := c.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, err
		}

		return nil, errors.Wrap(err, "identity lookup")
	}

	c.mu.Lock()
	if c.generations[username] == gen {
		c.entries[username] = cacheEntry{user: user.Clone(), expiresAt: now.Add(c.ttl)}
	}
	c.mu.Unlock()

	return user.Clone(), nil
}

// Invalidate drops the cached entry for username, if any, and discards the
// result of any load already in flight for it.
func (c *identityCache) Invalidate(username string) {
	c.mu.Lock()
	delete(c.entries, username)
	c.generations[username]++
	c.mu.Unlock()
}

func (c *identityCache) sweep() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}

	return removed
}

func (c *identityCache) sweepEvery(interval time.Duration, stop <-chan struct{}) {
	if interval <= 0 {
		<-stop

		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-stop:
			return
		}
	}
}

func (c *identityCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
