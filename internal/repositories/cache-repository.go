package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// CacheRepositoryInterface — обёртка над Redis. Единственный слот передачи
// лида реализован через GETDEL: контекст потребляется атомарно, второе
// чтение возвращает "пусто".
type CacheRepositoryInterface interface {
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	TakeJSON(ctx context.Context, key string, dest interface{}) (bool, error)
}

type cacheRepository struct {
	client *redis.Client
}

func NewCacheRepository(client *redis.Client) CacheRepositoryInterface {
	return &cacheRepository{client: client}
}

func (r *cacheRepository) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, payload, ttl).Err()
}

// TakeJSON читает и удаляет значение одной командой.
func (r *cacheRepository) TakeJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, err := r.client.GetDel(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(payload, dest)
}
