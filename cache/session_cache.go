package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"melodex/model"

	"github.com/redis/go-redis/v9"
)

// SessionCache stores session payloads {user id, username, role, artist id}
// in Redis, keyed by user id. Promotions rewrite the cached entry so the
// artist id is visible to subsequent requests without re-login.
type SessionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSessionCache creates a session cache on top of the given Redis client.
func NewSessionCache(rdb *redis.Client, ttl time.Duration) *SessionCache {
	return &SessionCache{rdb: rdb, ttl: ttl}
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("session:%d", userID)
}

// Save writes the session payload, resetting its TTL.
func (c *SessionCache) Save(ctx context.Context, sess *model.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session for user %d: %w", sess.UserID, err)
	}

	if err := c.rdb.Set(ctx, sessionKey(sess.UserID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session for user %d: %w", sess.UserID, err)
	}
	return nil
}

// Get returns the cached session, or nil when none exists.
func (c *SessionCache) Get(ctx context.Context, userID int64) (*model.Session, error) {
	data, err := c.rdb.Get(ctx, sessionKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session for user %d: %w", userID, err)
	}

	sess := &model.Session{}
	if err := json.Unmarshal(data, sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session for user %d: %w", userID, err)
	}
	return sess, nil
}

// Delete removes the session entry, e.g. on logout.
func (c *SessionCache) Delete(ctx context.Context, userID int64) error {
	if err := c.rdb.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session for user %d: %w", userID, err)
	}
	return nil
}
