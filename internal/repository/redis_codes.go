package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/digiprop/inspect/internal/models"
)

// codeKeyPrefix is the Redis key prefix for verification codes.
const codeKeyPrefix = "verification_code:"

// RedisCodeRepository implements CodeRepository on Redis. The key TTL
// matches the code expiry, so stale codes vanish on their own; the
// explicit ExpiresAt check in the service still decides the error path.
type RedisCodeRepository struct {
	client *redis.Client
}

// NewRedisCodeRepository creates a new RedisCodeRepository using the
// given client.
func NewRedisCodeRepository(client *redis.Client) *RedisCodeRepository {
	return &RedisCodeRepository{client: client}
}

// Put stores the code under the email key, replacing any prior value.
func (r *RedisCodeRepository) Put(ctx context.Context, code models.VerificationCode) error {
	payload, err := json.Marshal(code)
	if err != nil {
		return err
	}
	ttl := time.Until(code.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}
	return r.client.Set(ctx, codeKeyPrefix+code.Email, payload, ttl).Err()
}

// Get returns the active code for the email, or ErrNotFound.
func (r *RedisCodeRepository) Get(ctx context.Context, email string) (*models.VerificationCode, error) {
	val, err := r.client.Get(ctx, codeKeyPrefix+email).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var code models.VerificationCode
	if err := json.Unmarshal([]byte(val), &code); err != nil {
		return nil, err
	}
	return &code, nil
}
