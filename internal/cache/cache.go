// Package cache keeps computed balances in Redis so repeated reads skip the
// aggregation queries. Entries are invalidated when an expense touching the
// user is recorded and expire after a TTL either way.
//
// Every user also has a version counter that Invalidate bumps. Get reports the
// version alongside the entry and Set only writes while that version is still
// current, so balances computed before a concurrent invalidation are dropped
// instead of being cached for a full TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rai-ahmadfraz/split-it-api/internal/models"
)

const (
	keyPrefix        = "splitit:balances:"
	versionKeyPrefix = "splitit:balances-version:"
)

var errStale = errors.New("balances version changed")

// BalanceCache stores NetBalances per user in Redis.
type BalanceCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New wraps an existing Redis client.
func New(rdb *redis.Client, ttl time.Duration) *BalanceCache {
	return &BalanceCache{rdb: rdb, ttl: ttl}
}

// Dial connects to Redis and verifies the connection.
func Dial(ctx context.Context, addr, password string, db int, ttl time.Duration) (*BalanceCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	return New(rdb, ttl), nil
}

func key(userID string) string {
	return keyPrefix + userID
}

func versionKey(userID string) string {
	return versionKeyPrefix + userID
}

// Get returns the cached balances for userID, nil on a miss, together with
// the user's current version. Pass that version to Set.
func (c *BalanceCache) Get(ctx context.Context, userID string) (*models.NetBalances, int64, error) {
	vals, err := c.rdb.MGet(ctx, key(userID), versionKey(userID)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("get cached balances: %w", err)
	}

	var version int64
	if s, ok := vals[1].(string); ok {
		version, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("decode balances version: %w", err)
		}
	}

	s, ok := vals[0].(string)
	if !ok {
		return nil, version, nil
	}
	var balances models.NetBalances
	if err := json.Unmarshal([]byte(s), &balances); err != nil {
		return nil, 0, fmt.Errorf("decode cached balances: %w", err)
	}
	return &balances, version, nil
}

// Set stores balances for userID with the configured TTL, unless the user was
// invalidated since the Get that returned version. A skipped write is not an error.
func (c *BalanceCache) Set(ctx context.Context, userID string, balances *models.NetBalances, version int64) error {
	b, err := json.Marshal(balances)
	if err != nil {
		return fmt.Errorf("encode balances: %w", err)
	}

	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey(userID)).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key(userID), b, c.ttl)
			return nil
		})
		return err
	}, versionKey(userID))

	switch {
	case err == nil, errors.Is(err, errStale), errors.Is(err, redis.TxFailedErr):
		return nil
	default:
		return fmt.Errorf("set cached balances: %w", err)
	}
}

// Invalidate drops the cached balances of every given user and bumps their
// versions so in-flight Sets for them are discarded.
func (c *BalanceCache) Invalidate(ctx context.Context, userIDs ...string) error {
	if len(userIDs) == 0 {
		return nil
	}
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range userIDs {
			pipe.Incr(ctx, versionKey(id))
			pipe.Del(ctx, key(id))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate cached balances: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (c *BalanceCache) Close() error {
	return c.rdb.Close()
}
