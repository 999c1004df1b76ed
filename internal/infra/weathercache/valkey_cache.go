package weathercache

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/weatherstyle/internal/domain/weather"
)

// ValkeyCache shares weather snapshots across replicas through a
// Valkey-compatible server. Entries expire server-side after the TTL; the
// domain still checks freshness on read.
type ValkeyCache struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

// NewValkeyCache constructs a cache backed by Valkey.
func NewValkeyCache(client valkey.Client, prefix string, ttl time.Duration) *ValkeyCache {
	if prefix == "" {
		prefix = "weather"
	}
	if ttl <= 0 {
		ttl = weather.DefaultCacheTTL
	}
	return &ValkeyCache{client: client, prefix: prefix, ttl: ttl}
}

// Get returns the cached snapshot for key. A missing entry is a miss, not an error.
func (c *ValkeyCache) Get(ctx context.Context, key string) (weather.Snapshot, bool, error) {
	cmd := c.client.B().Get().Key(c.entryKey(key)).Build()
	payload, err := c.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return weather.Snapshot{}, false, nil
		}
		return weather.Snapshot{}, false, err
	}
	var snapshot weather.Snapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return weather.Snapshot{}, false, fmt.Errorf("decode cached snapshot: %w", err)
	}
	return snapshot, true, nil
}

// Put stores snapshot under key with the configured expiry.
func (c *ValkeyCache) Put(ctx context.Context, key string, snapshot weather.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	ttl := c.ttl
	if ttl < time.Second {
		ttl = time.Second
	}
	cmd := c.client.B().Set().Key(c.entryKey(key)).Value(string(payload)).Ex(ttl).Build()
	return c.client.Do(ctx, cmd).Error()
}

func (c *ValkeyCache) entryKey(key string) string {
	return fmt.Sprintf("%s:%s", c.prefix, key)
}

var _ weather.Cache = (*ValkeyCache)(nil)
