package announcement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Default keys of the shared list and the id counter.
const (
	DefaultListKey    = "announcements"
	DefaultCounterKey = "last-announcement-id"
)

// maxUpdateAttempts bounds the optimistic transaction retries in Update.
const maxUpdateAttempts = 5

// RedisStore keeps announcements as JSON strings in a Redis list, with ids
// taken from an INCR counter.
type RedisStore struct {
	client     *redis.Client
	listKey    string
	counterKey string
}

// NewRedisStore creates a store on an existing client. Empty keys fall back
// to DefaultListKey and DefaultCounterKey.
func NewRedisStore(client *redis.Client, listKey, counterKey string) *RedisStore {
	if listKey == "" {
		listKey = DefaultListKey
	}
	if counterKey == "" {
		counterKey = DefaultCounterKey
	}

	return &RedisStore{
		client:     client,
		listKey:    listKey,
		counterKey: counterKey,
	}
}

// OpenRedisStore connects to the Redis server at opts.Addr and verifies the
// connection with PING.
func OpenRedisStore(ctx context.Context, opts *redis.Options, listKey, counterKey string) (*RedisStore, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}

	return NewRedisStore(client, listKey, counterKey), nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// List returns every record of the list in list order.
func (s *RedisStore) List(ctx context.Context) ([]Announcement, error) {
	raw, err := s.client.LRange(ctx, s.listKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read announcements: %w", err)
	}

	return decodeAll(raw)
}

// Append increments the counter, assigns the new id to a and pushes it to
// the tail of the list.
func (s *RedisStore) Append(ctx context.Context, a Announcement) (*Announcement, error) {
	id, err := s.client.Incr(ctx, s.counterKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate announcement id: %w", err)
	}
	a.ID = id

	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal announcement: %w", err)
	}

	if err := s.client.RPush(ctx, s.listKey, data).Err(); err != nil {
		return nil, fmt.Errorf("failed to append announcement: %w", err)
	}

	return &a, nil
}

// Update rewrites the record with the given id in place. The scan and the
// LSET run under WATCH on the list key, so a write by another client between
// the two aborts the transaction and the update is retried on fresh data.
func (s *RedisStore) Update(ctx context.Context, id int64, fn func(*Announcement)) (*Announcement, error) {
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		var updated *Announcement

		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			raw, err := tx.LRange(ctx, s.listKey, 0, -1).Result()
			if err != nil {
				return fmt.Errorf("failed to read announcements: %w", err)
			}

			index, a, err := scanFor(raw, id)
			if err != nil {
				return err
			}

			fn(a)

			data, err := json.Marshal(a)
			if err != nil {
				return fmt.Errorf("failed to marshal announcement: %w", err)
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.LSet(ctx, s.listKey, int64(index), data)
				return nil
			})
			if err != nil {
				return err
			}

			updated = a
			return nil
		}, s.listKey)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}

	return nil, ErrConflict
}

// scanFor decodes records in order until it finds id.
func scanFor(raw []string, id int64) (int, *Announcement, error) {
	for i, record := range raw {
		var a Announcement
		if err := json.Unmarshal([]byte(record), &a); err != nil {
			return -1, nil, fmt.Errorf("failed to unmarshal announcement at index %d: %w", i, err)
		}
		if a.ID == id {
			return i, &a, nil
		}
	}
	return -1, nil, ErrNotFound
}

// decodeAll decodes a list of JSON records.
func decodeAll(raw []string) ([]Announcement, error) {
	items := make([]Announcement, 0, len(raw))
	for i, record := range raw {
		var a Announcement
		if err := json.Unmarshal([]byte(record), &a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal announcement at index %d: %w", i, err)
		}
		items = append(items, a)
	}
	return items, nil
}
