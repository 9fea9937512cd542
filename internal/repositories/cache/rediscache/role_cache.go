// Package rediscache keeps short lived authorization data in Redis.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/caisse_manager/internal/apperrors"
	"github.com/SscSPs/caisse_manager/internal/core/domain"
	portsrepo "github.com/SscSPs/caisse_manager/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "caisse:user:"

// Connect returns a client for addr, or nil when addr is empty. A failed ping
// is returned as an error so the caller can decide to run without Redis.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	slog.Info("Connected to Redis", slog.String("addr", addr))
	return client, nil
}

// RoleCache implements portsrepo.UserRoleCache on top of a Redis client.
type RoleCache struct {
	client *redis.Client
}

// NewRoleCache wraps client.
func NewRoleCache(client *redis.Client) *RoleCache {
	return &RoleCache{client: client}
}

var _ portsrepo.UserRoleCache = (*RoleCache)(nil)

func roleKey(userID string) string {
	return keyPrefix + userID + ":role"
}

func (c *RoleCache) GetUserRole(ctx context.Context, userID string) (domain.UserRole, error) {
	val, err := c.client.Get(ctx, roleKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperrors.NewNotFoundError("cached role")
		}
		return "", fmt.Errorf("redis GET failed: %w", err)
	}
	role := domain.UserRole(val)
	if !role.Valid() {
		// stale or foreign value, treat as a miss
		return "", apperrors.NewNotFoundError("cached role")
	}
	return role, nil
}

func (c *RoleCache) SetUserRole(ctx context.Context, userID string, role domain.UserRole, ttl time.Duration) error {
	if err := c.client.Set(ctx, roleKey(userID), string(role), ttl).Err(); err != nil {
		return fmt.Errorf("redis SET failed: %w", err)
	}
	return nil
}

func (c *RoleCache) DeleteUserRole(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, roleKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis DEL failed: %w", err)
	}
	return nil
}
