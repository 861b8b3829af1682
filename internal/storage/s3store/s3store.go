// Пакет s3store — хранение содержимого файлов в S3-совместимом хранилище
// (AWS S3, MinIO, Localstack).
package s3store

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/bigkaa/goartstore/files-manager/internal/storage"
)

// API — подмножество клиента S3, используемое хранилищем.
type API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Config — параметры подключения к S3.
type Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	KeyPrefix       string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	MaxRetries      int
}

// Store — BlobStore поверх S3.
type Store struct {
	client    API
	bucket    string
	keyPrefix string
	// ready — бакет уже проверен через HeadBucket
	ready  atomic.Bool
	logger *slog.Logger
}

// NewClient создаёт клиент S3: регион, опциональный endpoint,
// статические ключи или стандартная цепочка AWS, стандартный retryer.
func NewClient(ctx context.Context, cfg Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithRetryer(func() aws.Retryer {
			return retry.NewStandard(func(o *retry.StandardOptions) {
				o.MaxAttempts = cfg.MaxRetries
			})
		}),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации AWS: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

// New создаёт хранилище поверх готового клиента.
func New(client API, bucket, keyPrefix string, logger *slog.Logger) *Store {
	return &Store{
		client:    client,
		bucket:    bucket,
		keyPrefix: keyPrefix,
		logger:    logger.With(slog.String("component", "s3store")),
	}
}

// EnsureBase проверяет доступность бакета. После первой успешной
// проверки повторные вызовы не обращаются к S3.
func (s *Store) EnsureBase(ctx context.Context) error {
	if s.ready.Load() {
		return nil
	}
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return fmt.Errorf("бакет %s недоступен: %w", s.bucket, err)
	}
	if s.ready.CompareAndSwap(false, true) {
		s.logger.Info("Бакет S3 доступен", slog.String("bucket", s.bucket))
	}
	return nil
}

// Write загружает содержимое под ключом <prefix><uuid> через PutObject.
// Возвращает location вида s3://bucket/key.
func (s *Store) Write(ctx context.Context, r io.Reader) (*storage.WriteResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения данных: %w", err)
	}
	sum := sha256.Sum256(data)
	key := s.keyPrefix + uuid.New().String()

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка записи объекта %s в S3: %w", key, err)
	}

	return &storage.WriteResult{
		Location: fmt.Sprintf("s3://%s/%s", s.bucket, key),
		Size:     int64(len(data)),
		Checksum: hex.EncodeToString(sum[:]),
	}, nil
}
