package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"townkeeper/internal/common"

	"github.com/redis/go-redis/v9"
)

// =============================================
// PENDING IMPORT CACHE
// =============================================

// PendingCache holds fetched profile snapshots between search and commit.
// Entries expire on their own: a commit after the TTL surfaces NotFound and
// the caller has to search again. The cache is an explicit collaborator, not
// hidden module state.
type PendingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// DefaultPendingTTL bounds how long a search result stays committable.
const DefaultPendingTTL = 10 * time.Minute

func NewPendingCache(client *redis.Client, ttl time.Duration) *PendingCache {
	if ttl <= 0 {
		ttl = DefaultPendingTTL
	}
	return &PendingCache{client: client, ttl: ttl}
}

func (c *PendingCache) key(key string) string {
	return fmt.Sprintf("pending_import:%s", key)
}

// Set stores a snapshot under the given key with the configured TTL.
func (c *PendingCache) Set(ctx context.Context, key string, snapshot *ProfileSnapshot) error {
	if c.client == nil {
		return common.Internalf("import cache unavailable")
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return common.Internal("failed to marshal snapshot", err)
	}

	if err := c.client.Set(ctx, c.key(key), payload, c.ttl).Err(); err != nil {
		return common.Internal("failed to cache snapshot", err)
	}
	return nil
}

// Get loads a pending snapshot. Expired or unknown keys fail with NotFound.
func (c *PendingCache) Get(ctx context.Context, key string) (*ProfileSnapshot, error) {
	if c.client == nil {
		return nil, common.Internalf("import cache unavailable")
	}

	payload, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err == redis.Nil {
		return nil, common.NotFoundf("pending import expired or not found")
	}
	if err != nil {
		return nil, common.Internal("failed to read pending import", err)
	}

	var snapshot ProfileSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, common.Internal("failed to unmarshal snapshot", err)
	}
	return &snapshot, nil
}

// Delete drops a pending snapshot after commit.
func (c *PendingCache) Delete(ctx context.Context, key string) error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return common.Internal("failed to delete pending import", err)
	}
	return nil
}

// TTL reports how long a pending snapshot stays committable.
func (c *PendingCache) TTL() time.Duration {
	return c.ttl
}
