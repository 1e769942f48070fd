package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"paprika-server/modules/common/model"
)

// DefaultKey - Redis list holding generation records, newest first
const DefaultKey = "paprika:generations"

// Store - recent generations
type Store interface {
	Append(ctx context.Context, record model.GenerationRecord) error
	Recent(ctx context.Context, limit int) ([]model.GenerationRecord, error)
}

// RedisStore - Store backed by a capped Redis list
type RedisStore struct {
	client     redis.Cmdable
	key        string
	maxEntries int
}

// NewRedisStore - list at key trimmed to maxEntries on every append
func NewRedisStore(client redis.Cmdable, key string, maxEntries int) *RedisStore {
	if key == "" {
		key = DefaultKey
	}
	return &RedisStore{
		client:     client,
		key:        key,
		maxEntries: maxEntries,
	}
}

// Append - push record to the head of the list and trim the tail
func (s *RedisStore) Append(ctx context.Context, record model.GenerationRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal generation record: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, s.key, data)
		pipe.LTrim(ctx, s.key, 0, int64(s.maxEntries-1))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store generation record: %w", err)
	}
	return nil
}

// Recent - up to limit records, newest first. Entries that fail to decode are skipped.
func (s *RedisStore) Recent(ctx context.Context, limit int) ([]model.GenerationRecord, error) {
	if limit <= 0 {
		return []model.GenerationRecord{}, nil
	}

	raw, err := s.client.LRange(ctx, s.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read generation history: %w", err)
	}

	records := make([]model.GenerationRecord, 0, len(raw))
	for _, item := range raw {
		var record model.GenerationRecord
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			log.Printf("⚠️ [History] Skipping malformed record in %s: %v", s.key, err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// NopStore - history disabled
type NopStore struct{}

func (NopStore) Append(context.Context, model.GenerationRecord) error { return nil }

func (NopStore) Recent(context.Context, int) ([]model.GenerationRecord, error) {
	return []model.GenerationRecord{}, nil
}
