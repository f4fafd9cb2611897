// Package cache decorates the account gateway with a profile cache.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lorrc/mentor-portal/internal/core/domain"
	"github.com/lorrc/mentor-portal/internal/core/ports"
)

const profileKeyPrefix = "account:profile:"

// ProfileCache caches successful profile fetches per user. Every other call
// goes straight to the wrapped gateway. Cache failures are logged and never
// surface to the caller.
type ProfileCache struct {
	next   ports.AccountGateway
	store  Store
	ttl    time.Duration
	logger *slog.Logger
}

var (
	_ ports.AccountGateway = (*ProfileCache)(nil)
	_ ports.HealthChecker  = (*ProfileCache)(nil)
)

// NewProfileCache wraps next. ttl bounds how stale a shown profile can be.
func NewProfileCache(next ports.AccountGateway, store Store, ttl time.Duration, logger *slog.Logger) *ProfileCache {
	return &ProfileCache{
		next:   next,
		store:  store,
		ttl:    ttl,
		logger: logger.With("component", "profile_cache"),
	}
}

func (c *ProfileCache) CheckPassword(ctx context.Context, session domain.Session, password string) domain.Result[domain.Empty] {
	return c.next.CheckPassword(ctx, session, password)
}

func (c *ProfileCache) CheckEmail(ctx context.Context, email string) domain.Result[domain.Empty] {
	return c.next.CheckEmail(ctx, email)
}

func (c *ProfileCache) Register(ctx context.Context, req domain.RegisterRequest) domain.Result[domain.RegisterReceipt] {
	return c.next.Register(ctx, req)
}

// FetchProfile serves the profile from the cache when present. Failures are
// never cached.
func (c *ProfileCache) FetchProfile(ctx context.Context, session domain.Session) domain.Result[domain.UserProfileView] {
	key := ProfileKey(session.UserID)

	raw, ok, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		c.logger.WarnContext(ctx, "profile cache read failed", "error", err)
	case ok:
		var view domain.UserProfileView
		if err := json.Unmarshal(raw, &view); err == nil {
			return domain.Ok(view)
		}
		c.logger.WarnContext(ctx, "dropping undecodable cached profile", "key", key)
		c.del(ctx, key)
	}

	res := c.next.FetchProfile(ctx, session)
	if !res.OK() {
		return res
	}

	payload, err := json.Marshal(res.Value())
	if err != nil {
		c.logger.WarnContext(ctx, "profile cache encode failed", "error", err)
		return res
	}
	if err := c.store.Set(ctx, key, payload, c.ttl); err != nil {
		c.logger.WarnContext(ctx, "profile cache write failed", "error", err)
	}
	return res
}

// Ping checks the cache store.
func (c *ProfileCache) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

func (c *ProfileCache) del(ctx context.Context, key string) {
	if err := c.store.Del(ctx, key); err != nil {
		c.logger.WarnContext(ctx, "profile cache delete failed", "error", err)
	}
}

// ProfileKey is the cache key of a user's profile.
func ProfileKey(userID uuid.UUID) string {
	return profileKeyPrefix + userID.String()
}
