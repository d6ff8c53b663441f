package checkpoint

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	lserrors "github.com/vnykmshr/lazystream/pkg/common/errors"
	"github.com/vnykmshr/lazystream/pkg/common/validation"
)

// pushChunk bounds the number of values sent in one RPUSH.
const pushChunk = 10000

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	// Client is the Redis connection. Required.
	Client redis.UniversalClient

	// Key is the list holding the primes.
	Key string

	// TTL expires the checkpoint. Zero keeps it forever.
	TTL time.Duration

	// Timeout bounds every Save and Load.
	Timeout time.Duration
}

// DefaultRedisConfig returns a configuration for client with the default key
// and timeout.
func DefaultRedisConfig(client redis.UniversalClient) RedisConfig {
	return RedisConfig{
		Client:  client,
		Key:     "lazystream:primes",
		Timeout: 5 * time.Second,
	}
}

// RedisStore keeps the prefix in a Redis list, one prime per element.
type RedisStore struct {
	config RedisConfig
}

// NewRedisStore validates config and returns a RedisStore.
func NewRedisStore(config RedisConfig) (*RedisStore, error) {
	if err := validation.ValidateNotNil("checkpoint", "Client", config.Client); err != nil {
		return nil, err
	}
	if err := validation.ValidateNotEmpty("checkpoint", "Key", config.Key); err != nil {
		return nil, err
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	return &RedisStore{config: config}, nil
}

// Save implements Store. The list is replaced atomically.
func (s *RedisStore) Save(ctx context.Context, primes []int64) error {
	if err := validation.ValidateAscending("checkpoint", "primes", primes); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	pipe := s.config.Client.TxPipeline()
	pipe.Del(ctx, s.config.Key)
	for start := 0; start < len(primes); start += pushChunk {
		end := min(start+pushChunk, len(primes))
		values := make([]interface{}, 0, end-start)
		for _, p := range primes[start:end] {
			values = append(values, p)
		}
		pipe.RPush(ctx, s.config.Key, values...)
	}
	if s.config.TTL > 0 {
		pipe.Expire(ctx, s.config.Key, s.config.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "save checkpoint %q", s.config.Key)
	}
	return nil
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context) ([]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	raw, err := s.config.Client.LRange(ctx, s.config.Key, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "load checkpoint %q", s.config.Key)
	}
	if len(raw) == 0 {
		return nil, errors.Wrapf(lserrors.ErrNotFound, "load checkpoint %q", s.config.Key)
	}

	primes := make([]int64, len(raw))
	for i, v := range raw {
		primes[i], err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "checkpoint %q element %d", s.config.Key, i)
		}
	}
	if err := validation.ValidateAscending("checkpoint", "primes", primes); err != nil {
		return nil, errors.Wrapf(err, "load checkpoint %q", s.config.Key)
	}
	return primes, nil
}
