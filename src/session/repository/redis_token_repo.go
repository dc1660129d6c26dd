package repository

import (
	"context"
	"errors"

	"github.com/MMN3003/tradedesk/src/session/domain"
	"github.com/redis/go-redis/v9"
)

var _ domain.TokenRepository = (*RedisTokenRepo)(nil)

const redisTokenKey = "tradedesk:" + domain.TokenKey

// RedisTokenRepo stores the token under a single key without expiry;
// expiry is read from the token itself.
type RedisTokenRepo struct {
	client *redis.Client
}

func NewRedisTokenRepo(addr, password string, db int) *RedisTokenRepo {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisTokenRepo{client: client}
}

func (r *RedisTokenRepo) GetToken(ctx context.Context) (string, error) {
	token, err := r.client.Get(ctx, redisTokenKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return token, nil
}

func (r *RedisTokenRepo) SaveToken(ctx context.Context, token string) error {
	if token == "" {
		return r.client.Del(ctx, redisTokenKey).Err()
	}
	return r.client.Set(ctx, redisTokenKey, token, 0).Err()
}

func (r *RedisTokenRepo) Close() error {
	return r.client.Close()
}
