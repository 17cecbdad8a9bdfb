package convstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps conversation state in Redis so that multiple chat
// frontends can share one confirmation queue. Keys expire with the
// conversation TTL; expired pending items are additionally pruned on read.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// ConnectRedis dials a Redis instance and verifies the connection.
func ConnectRedis(addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

// NewRedisStore creates a Redis-backed conversation store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, now: time.Now}
}

func pendingKey(id string) string { return "ringside:conv:" + id + ":pending" }
func turnsKey(id string) string   { return "ringside:conv:" + id + ":turns" }

func (s *RedisStore) Pending(ctx context.Context, conversationID string) ([]PendingMutation, error) {
	raw, err := s.client.Get(ctx, pendingKey(conversationID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pending queue: %w", err)
	}

	var items []PendingMutation
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("corrupt pending queue for %s: %w", conversationID, err)
	}

	now := s.now()
	live := items[:0]
	for _, p := range items {
		if !p.Expired(now) {
			live = append(live, p)
		}
	}
	if len(live) != len(items) {
		if err := s.Replace(ctx, conversationID, live); err != nil {
			return nil, err
		}
	}
	return live, nil
}

func (s *RedisStore) Append(ctx context.Context, conversationID string, item PendingMutation) error {
	items, err := s.Pending(ctx, conversationID)
	if err != nil {
		return err
	}
	return s.Replace(ctx, conversationID, append(items, item))
}

func (s *RedisStore) Replace(ctx context.Context, conversationID string, items []PendingMutation) error {
	if len(items) == 0 {
		return s.Clear(ctx, conversationID)
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode pending queue: %w", err)
	}
	if err := s.client.Set(ctx, pendingKey(conversationID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write pending queue: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, conversationID string) error {
	if err := s.client.Del(ctx, pendingKey(conversationID)).Err(); err != nil {
		return fmt.Errorf("failed to clear pending queue: %w", err)
	}
	return nil
}

func (s *RedisStore) AppendTurn(ctx context.Context, conversationID string, turn Turn) error {
	raw, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to encode turn: %w", err)
	}
	key := turnsKey(conversationID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, raw)
	pipe.LTrim(ctx, key, -defaultHistoryCap, -1)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}
	return nil
}

func (s *RedisStore) History(ctx context.Context, conversationID string, limit int) ([]Turn, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}
	raw, err := s.client.LRange(ctx, turnsKey(conversationID), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	turns := make([]Turn, 0, len(raw))
	for _, item := range raw {
		var t Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			return nil, fmt.Errorf("corrupt turn for %s: %w", conversationID, err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

var _ Store = (*RedisStore)(nil)
