package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parley/internal/observability"

	"github.com/redis/go-redis/v9"
)

// unreadTTL bounds how long a cached unread count can live without a
// refresh; the database count is the source of truth on a miss.
const unreadTTL = 24 * time.Hour

func unreadKey(userID, convID uint) string {
	return fmt.Sprintf("unread:%d:%d", userID, convID)
}

// incrIfExists bumps the counter and refreshes its TTL only when the key is
// already present. Running as a script keeps the exists check and the
// increment in one round trip, so a concurrent reset cannot land between
// them and resurrect a stale count.
var incrIfExists = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	local v = redis.call("INCR", KEYS[1])
	redis.call("EXPIRE", KEYS[1], ARGV[1])
	return v
end
return 0
`)

// GetUnread returns the cached unread count for the (user, conversation)
// pair. The second result is false on a cache miss or when Redis is
// unavailable.
func GetUnread(ctx context.Context, userID, convID uint) (int64, bool) {
	if client == nil {
		return 0, false
	}
	count, err := client.Get(ctx, unreadKey(userID, convID)).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			observability.RedisErrorRate.WithLabelValues("get_unread").Inc()
		}
		return 0, false
	}
	return count, true
}

// SetUnread stores the unread count for the pair.
func SetUnread(ctx context.Context, userID, convID uint, count int64) {
	if client == nil {
		return
	}
	if err := client.Set(ctx, unreadKey(userID, convID), count, unreadTTL).Err(); err != nil {
		observability.RedisErrorRate.WithLabelValues("set_unread").Inc()
	}
}

// IncrUnread bumps the cached unread count if one exists. A missing key is
// left missing so the next read recomputes from the database.
func IncrUnread(ctx context.Context, userID, convID uint) {
	if client == nil {
		return
	}
	key := unreadKey(userID, convID)
	if err := incrIfExists.Run(ctx, client, []string{key}, int(unreadTTL.Seconds())).Err(); err != nil {
		observability.RedisErrorRate.WithLabelValues("incr_unread").Inc()
	}
}

// ResetUnread clears the cached count for the pair, used after mark-read.
func ResetUnread(ctx context.Context, userID, convID uint) {
	if client == nil {
		return
	}
	if err := client.Del(ctx, unreadKey(userID, convID)).Err(); err != nil {
		observability.RedisErrorRate.WithLabelValues("reset_unread").Inc()
	}
}
