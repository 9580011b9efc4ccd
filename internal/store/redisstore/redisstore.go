// redisstore — реализация store.RefreshStore поверх Redis.
// Значение — компактная строка refresh-токена; сверка при ротации
// выполняется побайтово на уровне сервиса.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/astraios/auth-service/internal/config"
	"github.com/astraios/auth-service/internal/store"

	"github.com/redis/go-redis/v9"
)

// Префикс ключей; неймспейс защищает от коллизий с другими
// арендаторами общего Redis.
const keyPrefix = "auth:refresh:"

type Store struct {
	rdb    *redis.Client
	prefix string
}

// New создаёт клиент Redis и проверяет соединение (fail-fast на старте).
func New(ctx context.Context, cfg config.RedisConfig) (*Store, error) {
	const op = "store.redisstore.New"

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Store{rdb: rdb, prefix: keyPrefix}, nil
}

func (s *Store) key(userID string) string { return s.prefix + userID }

// Put — безусловный SET с PX-истечением; заменяет прежнюю привязку.
func (s *Store) Put(ctx context.Context, userID, token string, ttl time.Duration) error {
	const op = "store.redisstore.Put"

	if err := s.rdb.Set(ctx, s.key(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Get возвращает привязанный токен; redis.Nil трактуется как отсутствие.
func (s *Store) Get(ctx context.Context, userID string) (string, bool, error) {
	const op = "store.redisstore.Get"

	val, err := s.rdb.Get(ctx, s.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("%s: %w", op, err)
	}

	return val, true, nil
}

// Del удаляет привязку; отсутствие ключа — не ошибка (DEL идемпотентен).
func (s *Store) Del(ctx context.Context, userID string) error {
	const op = "store.redisstore.Del"

	if err := s.rdb.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Close закрывает клиент Redis.
func (s *Store) Close() error { return s.rdb.Close() }

// Проверка на соответствие интерфейсу RefreshStore.
var _ store.RefreshStore = (*Store)(nil)
