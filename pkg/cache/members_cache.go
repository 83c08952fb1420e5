package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// MembersCacheTTL is deliberately short: lastActive timestamps drift and
	// the view is cheap to rebuild from Postgres.
	MembersCacheTTL = 60 * time.Second

	membersCacheKeyPrefix = "family:members"
)

// CachedMember is the denormalized member entry stored in the family
// members read model.
type CachedMember struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	LastActive time.Time `json:"last_active"`
}

// MembersCache is a read-through cache for the family members view, the
// hottest read in the API (every dashboard, list, and calendar screen loads
// it). Keys are scoped by familyID to prevent cross-family data leakage.
// Key format: "family:members:{familyID}"
type MembersCache struct {
	client *RedisClient
}

// NewMembersCache creates a MembersCache backed by the given RedisClient.
func NewMembersCache(r *RedisClient) *MembersCache {
	return &MembersCache{client: r}
}

// Get retrieves the cached member list for a family.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *MembersCache) Get(ctx context.Context, familyID uuid.UUID) ([]CachedMember, error) {
	raw, err := c.client.Client().Get(ctx, c.key(familyID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, redis.Nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var members []CachedMember
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return members, nil
}

// Set stores the member list for a family with the standard TTL.
func (c *MembersCache) Set(ctx context.Context, familyID uuid.UUID, members []CachedMember) error {
	raw, err := json.Marshal(members)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Client().Set(ctx, c.key(familyID), raw, MembersCacheTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached view for a family. Called when membership
// changes (join-family).
func (c *MembersCache) Invalidate(ctx context.Context, familyID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(familyID)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

func (c *MembersCache) key(familyID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", membersCacheKeyPrefix, familyID)
}
