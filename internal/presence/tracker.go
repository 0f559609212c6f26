// Package presence tracks which users are currently online using Redis
// TTL keys. Going offline is simply the heartbeat key expiring.
package presence

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/randevu-app/randevu-server/internal/cache"
)

const (
	// keyOnlineAll is a sorted set of user ids scored by last-seen unix time.
	keyOnlineAll = "presence:all"

	// OnlineTTL is how long after the last heartbeat a user counts as
	// online. Clients send a heartbeat every 30s.
	OnlineTTL = 2 * time.Minute
)

// Tracker manages online presence on top of the shared Redis cache.
type Tracker struct {
	cache *cache.RedisCache
}

// NewTracker creates a new Tracker instance.
func NewTracker(c *cache.RedisCache) *Tracker {
	return &Tracker{cache: c}
}

func presenceKey(userID uint64) string {
	return "presence:online:" + strconv.FormatUint(userID, 10)
}

// Heartbeat marks the user online for OnlineTTL and refreshes their
// last-seen score. Called whenever the client pings.
func (t *Tracker) Heartbeat(ctx context.Context, userID uint64) error {
	now := time.Now().UTC()

	pipe := t.cache.Client.Pipeline()
	pipe.Set(ctx, presenceKey(userID), now.UnixMilli(), OnlineTTL)
	pipe.ZAdd(ctx, keyOnlineAll, redis.Z{
		Score:  float64(now.Unix()),
		Member: strconv.FormatUint(userID, 10),
	})
	_, err := pipe.Exec(ctx)
	return err
}

// IsOnline reports whether the user heartbeated within OnlineTTL.
func (t *Tracker) IsOnline(ctx context.Context, userID uint64) (bool, error) {
	n, err := t.cache.Client.Exists(ctx, presenceKey(userID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// LastSeen returns the user's last heartbeat time. The second return is
// false when the user has no live presence entry.
func (t *Tracker) LastSeen(ctx context.Context, userID uint64) (time.Time, bool, error) {
	val, err := t.cache.Client.Get(ctx, presenceKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	millis, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false, err
	}
	return time.UnixMilli(millis).UTC(), true, nil
}

// OnlineCount returns how many users heartbeated within OnlineTTL.
func (t *Tracker) OnlineCount(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-OnlineTTL).Unix()
	return t.cache.Client.ZCount(ctx, keyOnlineAll,
		strconv.FormatInt(cutoff, 10), "+inf").Result()
}

// CleanupStale drops sorted-set entries whose TTL keys have long expired.
// Run periodically as a background job.
func (t *Tracker) CleanupStale(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-OnlineTTL).Unix()
	return t.cache.Client.ZRemRangeByScore(ctx, keyOnlineAll,
		"-inf", strconv.FormatInt(cutoff, 10)).Result()
}
