package credstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the connection for a Redis-backed credential slot.
type RedisConfig struct {
	ConnectionURL  string        `env:"FINWISE_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	Key            string        `env:"FINWISE_REDIS_CREDENTIAL_KEY" envDefault:"finwise:credential"`
	RetryAttempts  int           `env:"FINWISE_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"FINWISE_REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"FINWISE_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// Redis stores the credential under a single key so several headless
// processes can share one session.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis wraps an existing Redis client. The key names the credential slot.
func NewRedis(client *redis.Client, key string) *Redis {
	if key == "" {
		key = "finwise:credential"
	}
	return &Redis{client: client, key: key}
}

// ConnectRedis establishes a connection per the config and returns a store
// bound to the configured slot key. Connection attempts are retried until the
// connect timeout elapses.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}

	attempts := max(cfg.RetryAttempts, 1)
	for i := 0; i < attempts; i++ {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return NewRedis(client, cfg.Key), nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrUnavailable, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}
	return nil, ErrUnavailable
}

func (r *Redis) Load(ctx context.Context) (string, error) {
	token, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", errors.Join(ErrUnavailable, err)
	}
	return token, nil
}

func (r *Redis) Save(ctx context.Context, token string) error {
	if err := r.client.Set(ctx, r.key, token, 0).Err(); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
