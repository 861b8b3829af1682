package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/bigkaa/goartstore/files-manager/internal/config"
)

// ConnectRedis создаёт клиент Redis и проверяет доступность.
// Используется хранилищем сессий (FM_AUTH_MODE=token) и очередью redis.
func ConnectRedis(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ошибка подключения к Redis %s: %w", cfg.RedisAddr, err)
	}

	logger.Info("Подключение к Redis установлено",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)
	return client, nil
}

// RedisPinger адаптирует *redis.Client к интерфейсу Pinger.
type RedisPinger struct {
	Client *redis.Client
}

// Ping выполняет команду PING.
func (p RedisPinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}
