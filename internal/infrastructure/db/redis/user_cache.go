package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/core/domain"
)

const userCacheTTL = 5 * time.Minute

// UserCache is a read-through profile cache backed by Redis.
// Key format: user:<id>
//
// Only the profile is cached. domain.User excludes the password hash from
// JSON, so credential material never lands in Redis; a cache hit therefore
// cannot serve a login and the auth service always reads the repository.
type UserCache struct {
	client *redis.Client
}

// NewUserCache creates a UserCache wrapping the given Redis client.
func NewUserCache(client *redis.Client) *UserCache {
	return &UserCache{client: client}
}

// Get returns the cached profile, or domain.ErrUserNotFound on a miss.
func (c *UserCache) Get(ctx context.Context, id string) (*domain.User, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("user cache get: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("user cache decode: %w", err)
	}
	return &user, nil
}

// Set stores the profile for userCacheTTL.
func (c *UserCache) Set(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("user cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(user.ID), raw, userCacheTTL).Err()
}

func (c *UserCache) key(id string) string {
	return "user:" + id
}
