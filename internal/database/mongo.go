package database

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/bigkaa/goartstore/files-manager/internal/config"
)

// ConnectMongo подключается к MongoDB и проверяет доступность.
func ConnectMongo(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка создания клиента MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ошибка подключения к MongoDB: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)
	logger.Info("Подключение к MongoDB установлено",
		slog.String("database", cfg.MongoDatabase),
	)
	return client, db, nil
}

// MongoPinger адаптирует *mongo.Client к интерфейсу Pinger.
type MongoPinger struct {
	Client *mongo.Client
}

// Ping проверяет доступность primary-узла.
func (p MongoPinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx, readpref.Primary())
}
