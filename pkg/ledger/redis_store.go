package ledger

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKeyPrefix namespaces billing history keys.
const DefaultRedisKeyPrefix = "ledger:"

// appendScript adds the id to the global id set and pushes the entry only
// when the id was not present.
var appendScript = redis.NewScript(`
if redis.call('SADD', KEYS[1], ARGV[1]) == 0 then
	return 0
end
redis.call('RPUSH', KEYS[2], ARGV[2])
return 1
`)

type redisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore returns a Store keeping JSON entries in one Redis list per
// subscription plus a set of recorded ids.
func NewRedisStore(client redis.UniversalClient, prefix string) Store {
	if client == nil {
		panic("ledger: redis client is required")
	}
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	return &redisStore{client: client, prefix: prefix}
}

func (s *redisStore) idsKey() string { return s.prefix + "ids" }

func (s *redisStore) listKey(subscriptionID string) string {
	return s.prefix + "subscription:" + subscriptionID
}

func (s *redisStore) Append(ctx context.Context, e Entry) error {
	if err := validateEntry(e); err != nil {
		return err
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	added, err := appendScript.Run(ctx, s.client,
		[]string{s.idsKey(), s.listKey(e.SubscriptionID)},
		e.ID, payload,
	).Int()
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if added == 0 {
		return ErrDuplicateEntry
	}
	return nil
}

func (s *redisStore) ListBySubscription(ctx context.Context, subscriptionID string) ([]Entry, error) {
	raw, err := s.client.LRange(ctx, s.listKey(subscriptionID), 0, -1).Result()
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, errors.Join(ErrStoreFailure, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
