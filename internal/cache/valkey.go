package cache

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/auralabs/aura/internal/models"
)

// ValkeyCache memoizes analysis batches in Valkey with a TTL. Lookup and
// store failures are logged and treated as misses; the cache never fails a
// run.
type ValkeyCache struct {
	client valkey.Client
	ttl    time.Duration
}

func NewValkeyCache(addr, password string, useTLS bool, ttl time.Duration) (*ValkeyCache, error) {
	opts := valkey.ClientOption{
		InitAddress:      []string{addr},
		Password:         password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if useTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyCache] failed to create client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyCache] failed to ping: %w", err)
	}

	slog.Info("[ValkeyCache] Successfully connected to valkey")

	return &ValkeyCache{client: client, ttl: ttl}, nil
}

func (c *ValkeyCache) Get(ctx context.Context, community string, limit int) (*models.AnalysisBatch, bool) {
	key := batchKey(community, limit)
	res := c.client.Do(ctx, c.client.B().Get().Key(key).Build())
	if err := res.Error(); err != nil {
		if !valkey.IsValkeyNil(err) {
			slog.Warn("[ValkeyCache] Lookup failed",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
		return nil, false
	}

	raw, err := res.AsBytes()
	if err != nil {
		return nil, false
	}

	var batch models.AnalysisBatch
	if err := json.Unmarshal(raw, &batch); err != nil {
		slog.Warn("[ValkeyCache] Failed to decode cached batch",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return nil, false
	}
	return &batch, true
}

func (c *ValkeyCache) Set(ctx context.Context, community string, limit int, batch *models.AnalysisBatch) {
	key := batchKey(community, limit)
	payload, err := json.Marshal(batch)
	if err != nil {
		slog.Warn("[ValkeyCache] Failed to encode batch",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return
	}

	cmd := c.client.B().Set().Key(key).Value(string(payload)).Ex(c.ttl).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		slog.Warn("[ValkeyCache] Store failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

func (c *ValkeyCache) Close() {
	c.client.Close()
}
