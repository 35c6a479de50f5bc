package credstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis stores the entry under two keys in a Redis instance. Both keys are
// written with a single MSET and removed with a single DEL, which keeps
// the both-or-nothing discipline without scripting.
type Redis struct {
	client *redis.Client
	keys   Keys
}

// NewRedis creates a Redis-backed store. Zero-valued keys fall back to
// "token" and "user".
func NewRedis(client *redis.Client, keys Keys) *Redis {
	return &Redis{
		client: client,
		keys:   keys.withDefaults(),
	}
}

// Load reads both slots with one MGET.
func (r *Redis) Load(ctx context.Context) (Entry, error) {
	vals, err := r.client.MGet(ctx, r.keys.Token, r.keys.Identity).Result()
	if err != nil {
		return Entry{}, fmt.Errorf("credstore: redis mget: %w", err)
	}

	var entry Entry
	if len(vals) == 2 {
		if s, ok := vals[0].(string); ok {
			entry.Token = s
		}
		if s, ok := vals[1].(string); ok && s != "" {
			entry.Identity = []byte(s)
		}
	}
	return entry, nil
}

// Save writes both slots with one MSET.
func (r *Redis) Save(ctx context.Context, entry Entry) error {
	err := r.client.MSet(ctx,
		r.keys.Token, entry.Token,
		r.keys.Identity, string(entry.Identity),
	).Err()
	if err != nil {
		return fmt.Errorf("credstore: redis mset: %w", err)
	}
	return nil
}

// SaveIdentity rewrites only the identity slot.
func (r *Redis) SaveIdentity(ctx context.Context, identity []byte) error {
	if err := r.client.Set(ctx, r.keys.Identity, string(identity), 0).Err(); err != nil {
		return fmt.Errorf("credstore: redis set identity: %w", err)
	}
	return nil
}

// Clear removes both slots with one DEL.
func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.keys.Token, r.keys.Identity).Err(); err != nil {
		return fmt.Errorf("credstore: redis del: %w", err)
	}
	return nil
}
