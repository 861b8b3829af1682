package queue

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// listPusher — подмножество redis.Cmdable для LPUSH.
type listPusher interface {
	LPush(ctx context.Context, key string, values ...any) *redis.IntCmd
}

// RedisPublisher — очередь в виде Redis list: LPUSH JSON-задания,
// потребитель забирает с другого конца (BRPOP).
type RedisPublisher struct {
	client listPusher
	key    string
}

// NewRedisPublisher создаёт publisher поверх существующего клиента.
// Клиент принадлежит вызывающему и не закрывается в Close.
func NewRedisPublisher(client listPusher, key string) *RedisPublisher {
	return &RedisPublisher{client: client, key: key}
}

// Publish добавляет задание в начало списка.
func (p *RedisPublisher) Publish(ctx context.Context, job Job) error {
	data, err := job.encode()
	if err != nil {
		return err
	}
	if err := p.client.LPush(ctx, p.key, data).Err(); err != nil {
		return fmt.Errorf("ошибка LPUSH в %q: %w", p.key, err)
	}
	return nil
}

// Close ничего не делает: клиент Redis общий.
func (p *RedisPublisher) Close() error { return nil }
