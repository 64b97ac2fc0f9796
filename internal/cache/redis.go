// Package cache holds analytics snapshots in redis with short TTLs. All
// methods tolerate a missing or unreachable redis and fall back to
// recomputation.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"showroom-backend/internal/config"
	"showroom-backend/internal/models"
)

const snapshotTTL = 5 * time.Minute

var snapshotWindows = []string{models.WindowWeek, models.WindowMonth, models.WindowYear}

type Client struct {
	rdb *redis.Client
}

// New connects to redis. A nil client is returned when redis is not
// configured or unreachable; every method treats that as a permanent miss.
func New(ctx context.Context, cfg *config.Config) *Client {
	if cfg.Redis.Addr == "" {
		logrus.Info("redis not configured, analytics cache disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logrus.WithError(err).Warn("redis unreachable, analytics cache disabled")
		return nil
	}

	logrus.WithField("addr", cfg.Redis.Addr).Info("redis connected")
	return &Client{rdb: rdb}
}

func snapshotKey(window string) string {
	return "analytics:snapshot:" + window
}

func (c *Client) GetSnapshot(ctx context.Context, window string) (*models.AnalyticsSnapshot, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.rdb.Get(ctx, snapshotKey(window)).Bytes()
	if err != nil {
		return nil, false
	}

	var snap models.AnalyticsSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false
	}
	return &snap, true
}

func (c *Client) SetSnapshot(ctx context.Context, window string, snap *models.AnalyticsSnapshot) {
	if c == nil {
		return
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, snapshotKey(window), data, snapshotTTL).Err(); err != nil {
		logrus.WithError(err).Debug("snapshot cache write failed")
	}
}

// InvalidateSnapshots drops every cached window. Called after any write
// that changes sales or inventory.
func (c *Client) InvalidateSnapshots(ctx context.Context) {
	if c == nil {
		return
	}

	keys := make([]string, len(snapshotWindows))
	for i, w := range snapshotWindows {
		keys[i] = snapshotKey(w)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logrus.WithError(err).Debug("snapshot cache invalidation failed")
	}
}

// Ping reports cache health for the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return redis.ErrClosed
	}
	return c.rdb.Ping(ctx).Err()
}

// Enabled reports whether a live redis connection backs this client.
func (c *Client) Enabled() bool {
	return c != nil
}
