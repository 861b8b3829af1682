// Точка входа files-manager — сервиса метаданных файлов и папок.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/bigkaa/goartstore/files-manager/internal/api/handlers"
	"github.com/bigkaa/goartstore/files-manager/internal/api/middleware"
	"github.com/bigkaa/goartstore/files-manager/internal/config"
	"github.com/bigkaa/goartstore/files-manager/internal/database"
	"github.com/bigkaa/goartstore/files-manager/internal/queue"
	"github.com/bigkaa/goartstore/files-manager/internal/repository"
	"github.com/bigkaa/goartstore/files-manager/internal/server"
	"github.com/bigkaa/goartstore/files-manager/internal/service"
	"github.com/bigkaa/goartstore/files-manager/internal/storage"
	"github.com/bigkaa/goartstore/files-manager/internal/storage/filestore"
	"github.com/bigkaa/goartstore/files-manager/internal/storage/s3store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка конфигурации: %v\n", err)
		os.Exit(1)
	}

	logger := config.SetupLogger(cfg)
	logger.Info("files-manager запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("metadata_backend", cfg.MetadataBackend),
		slog.String("storage_backend", cfg.StorageBackend),
		slog.String("queue_backend", cfg.QueueBackend),
		slog.String("auth_mode", cfg.AuthMode),
	)

	if err := run(cfg, logger); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("files-manager остановлен")
}

// run собирает зависимости, запускает HTTP-сервер и освобождает ресурсы
// в обратном порядке после его остановки.
func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()
	checkers := map[string]handlers.ReadinessChecker{}
	deps := service.Dependencies{}

	// 1. Хранилище метаданных
	var repo repository.FileRepository
	switch cfg.MetadataBackend {
	case config.MetadataMongo:
		client, db, err := database.ConnectMongo(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		if err := repository.EnsureMongoIndexes(ctx, db); err != nil {
			return err
		}
		repo = repository.NewMongoFileRepository(db)
		checkers["mongodb"] = database.NewPingChecker("MongoDB", database.MongoPinger{Client: client}, cfg.ReadinessTimeout)

	default:
		if err := database.Migrate(cfg, logger); err != nil {
			return err
		}
		pool, err := database.Connect(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer pool.Close()

		repo = repository.NewFileRepository(pool)
		checkers["postgresql"] = database.NewReadinessChecker(pool, cfg.ReadinessTimeout)

		// *sql.DB поверх pgxpool для pgcheck dephealth
		sqlDB := stdlib.OpenDBFromPool(pool)
		defer func(db *sql.DB) { _ = db.Close() }(sqlDB)
		deps.DB = sqlDB
		deps.PGConnURL = cfg.DatabaseURL("postgres")
	}

	// 2. Redis: сессии (token) и очередь redis
	var redisClient *redis.Client
	if cfg.UsesRedis() {
		var err error
		redisClient, err = database.ConnectRedis(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() { _ = redisClient.Close() }()
		checkers["redis"] = database.NewPingChecker("Redis", database.RedisPinger{Client: redisClient}, cfg.ReadinessTimeout)
	}

	// 3. Хранилище содержимого
	blobs, err := newBlobStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// 4. Очередь миниатюр
	publisher, err := newPublisher(cfg, redisClient, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("Ошибка закрытия очереди", slog.String("error", err.Error()))
		}
	}()

	dispatcher := service.NewThumbnailDispatcher(publisher, cfg.QueueWorkers, cfg.QueueBuffer, cfg.QueueTimeout, logger)
	dispatcher.Start()
	// Останавливается после HTTP-сервера, но до закрытия publisher
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		dispatcher.Stop(stopCtx)
	}()

	// 5. Сервисы
	var cache *service.CacheService
	if cfg.CacheEnabled {
		cache = service.NewCacheService(cfg.CacheMaxSize, cfg.CacheTTL)
		logger.Info("LRU-кэш записей включён (только для одной реплики)",
			slog.Int("max_size", cfg.CacheMaxSize),
			slog.Duration("ttl", cfg.CacheTTL),
		)
	}
	fileSvc := service.NewFileService(repo, blobs, cache, dispatcher, cfg.StrictParent, logger)

	// 6. Аутентификация
	var auth func(http.Handler) http.Handler
	switch cfg.AuthMode {
	case config.AuthToken:
		auth = middleware.NewTokenAuth(redisClient, logger).Middleware()
	default:
		jwtAuth, err := middleware.NewJWTAuth(
			cfg.JWKSURL, cfg.JWKSCACertPath, cfg.JWTIssuer,
			cfg.JWKSClientTimeout, cfg.JWKSRefreshInterval, cfg.JWTLeeway, logger,
		)
		if err != nil {
			return fmt.Errorf("инициализация JWT: %w", err)
		}
		auth = jwtAuth.Middleware()

		jwksChecker, err := middleware.NewJWKSReadinessChecker(cfg.JWKSURL, cfg.JWKSCACertPath, cfg.ReadinessTimeout)
		if err != nil {
			return err
		}
		checkers["jwks"] = jwksChecker
		deps.JWKSURL = cfg.JWKSURL
	}

	// 7. topologymetrics
	dephealthSvc, err := service.NewDephealthService(
		"files-manager", cfg.DephealthGroup, deps,
		cfg.DephealthCheckInterval, cfg.DephealthIsEntry, logger,
	)
	if err != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", err.Error()),
		)
	} else if err := dephealthSvc.Start(ctx); err != nil {
		logger.Warn("Ошибка запуска topologymetrics", slog.String("error", err.Error()))
	} else {
		defer dephealthSvc.Stop()
	}

	// 8. HTTP
	healthHandler := handlers.NewHealthHandler(checkers)
	apiHandler := handlers.NewAPIHandler(fileSvc, healthHandler, cfg.MaxUploadSize, logger)
	srv := server.New(cfg, logger, apiHandler,
		middleware.MetricsMiddleware(),
		middleware.RequestLogger(logger),
		server.AuthWithExclusions(auth, server.PublicPrefixes...),
	)

	return srv.Run()
}

// newBlobStore создаёт хранилище содержимого по FM_STORAGE_BACKEND.
func newBlobStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.BlobStore, error) {
	if cfg.StorageBackend != config.StorageS3 {
		logger.Info("Содержимое хранится на диске", slog.String("folder", cfg.FolderPath))
		return filestore.New(cfg.FolderPath), nil
	}

	client, err := s3store.NewClient(ctx, s3store.Config{
		Endpoint:        cfg.S3Endpoint,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		KeyPrefix:       cfg.S3KeyPrefix,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		UsePathStyle:    cfg.S3UsePathStyle,
		MaxRetries:      cfg.S3MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("создание клиента S3: %w", err)
	}
	logger.Info("Содержимое хранится в S3",
		slog.String("bucket", cfg.S3Bucket),
		slog.String("endpoint", cfg.S3Endpoint),
	)
	return s3store.New(client, cfg.S3Bucket, cfg.S3KeyPrefix, logger), nil
}

// newPublisher создаёт отправитель заданий по FM_QUEUE_BACKEND.
func newPublisher(cfg *config.Config, redisClient *redis.Client, logger *slog.Logger) (queue.Publisher, error) {
	switch cfg.QueueBackend {
	case config.QueueRedis:
		return queue.NewRedisPublisher(redisClient, cfg.QueueName), nil
	case config.QueueAMQP:
		p, err := queue.NewAMQPPublisher(cfg.AMQPURL, cfg.QueueName)
		if err != nil {
			return nil, fmt.Errorf("подключение к AMQP: %w", err)
		}
		return p, nil
	case config.QueueKafka:
		return queue.NewKafkaPublisher(cfg.KafkaBrokers, cfg.QueueName), nil
	default:
		logger.Warn("Очередь миниатюр отключена, задания только логируются")
		return queue.NewLogPublisher(logger), nil
	}
}
