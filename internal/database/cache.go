package database

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/valkey-io/valkey-go"
)

const defaultCacheTTL = 1 * time.Hour

// CacheBuilder is a small fluent wrapper around a valkey client for the
// set/get/delete-by-key patterns the repositories use.
type CacheBuilder struct {
	client CacheClient
	key    string
	value  any
	ttl    time.Duration
	ctx    context.Context
}

func NewCacheBuilder(client CacheClient, key string) *CacheBuilder {
	return &CacheBuilder{
		client: client,
		key:    key,
		ttl:    defaultCacheTTL,
		ctx:    context.Background(),
	}
}

func (b *CacheBuilder) WithStruct(value any) *CacheBuilder {
	b.value = value
	return b
}

func (b *CacheBuilder) WithTTL(ttl time.Duration) *CacheBuilder {
	b.ttl = ttl
	return b
}

func (b *CacheBuilder) WithContext(ctx context.Context) *CacheBuilder {
	b.ctx = ctx
	return b
}

func (b *CacheBuilder) Set() error {
	if b.client == nil {
		return errors.New("cache client is nil")
	}

	payload, err := json.Marshal(b.value)
	if err != nil {
		return err
	}

	cmd := b.client.B().Set().Key(b.key).Value(string(payload)).
		Ex(b.ttl).Build()
	return b.client.Do(b.ctx, cmd).Error()
}

// Get unmarshals the cached value into dest. The first return value reports
// whether the key was present.
func (b *CacheBuilder) Get(dest any) (bool, error) {
	if b.client == nil {
		return false, errors.New("cache client is nil")
	}

	raw, err := b.client.Do(b.ctx, b.client.B().Get().Key(b.key).Build()).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}

	return true, nil
}

func (b *CacheBuilder) Delete() error {
	if b.client == nil {
		return errors.New("cache client is nil")
	}

	return b.client.Do(b.ctx, b.client.B().Del().Key(b.key).Build()).Error()
}
