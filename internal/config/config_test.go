package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// setEnvs устанавливает переменные окружения на время теста.
func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

// minimalEnvs возвращает минимальный набор обязательных переменных.
func minimalEnvs() map[string]string {
	return map[string]string{
		"FM_DB_HOST":     "localhost",
		"FM_DB_NAME":     "files",
		"FM_DB_USER":     "files",
		"FM_DB_PASSWORD": "secret",
		"FM_JWKS_URL":    "https://keycloak.local/realms/files/protocol/openid-connect/certs",
	}
}

func TestLoad_MinimalConfig(t *testing.T) {
	setEnvs(t, minimalEnvs())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	if cfg.Port != 8040 {
		t.Errorf("Port = %d, ожидается 8040", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, ожидается Info", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, ожидается json", cfg.LogFormat)
	}
	if cfg.MetadataBackend != MetadataPostgres {
		t.Errorf("MetadataBackend = %q, ожидается postgres", cfg.MetadataBackend)
	}
	if cfg.DBPort != 5432 {
		t.Errorf("DBPort = %d, ожидается 5432", cfg.DBPort)
	}
	if cfg.DBSSLMode != "disable" {
		t.Errorf("DBSSLMode = %q, ожидается disable", cfg.DBSSLMode)
	}
	if cfg.StorageBackend != StorageFilesystem {
		t.Errorf("StorageBackend = %q, ожидается filesystem", cfg.StorageBackend)
	}
	if want := filepath.Join(os.TempDir(), "files_manager"); cfg.FolderPath != want {
		t.Errorf("FolderPath = %q, ожидается %q", cfg.FolderPath, want)
	}
	if cfg.QueueBackend != QueueRedis {
		t.Errorf("QueueBackend = %q, ожидается redis", cfg.QueueBackend)
	}
	if cfg.QueueName != "thumbnail generation" {
		t.Errorf("QueueName = %q, ожидается 'thumbnail generation'", cfg.QueueName)
	}
	if cfg.AuthMode != AuthJWT {
		t.Errorf("AuthMode = %q, ожидается jwt", cfg.AuthMode)
	}
	if cfg.StrictParent {
		t.Error("StrictParent = true, ожидается false")
	}
	if cfg.CacheEnabled {
		t.Error("CacheEnabled = true, ожидается false")
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, ожидается 5m", cfg.CacheTTL)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, ожидается 5s", cfg.ShutdownTimeout)
	}
	if !cfg.UsesRedis() {
		t.Error("UsesRedis() = false при очереди redis")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	for _, key := range []string{"FM_DB_HOST", "FM_DB_NAME", "FM_DB_USER", "FM_DB_PASSWORD", "FM_JWKS_URL"} {
		t.Run(key, func(t *testing.T) {
			envs := minimalEnvs()
			delete(envs, key)
			setEnvs(t, envs)
			t.Setenv(key, "")

			_, err := Load()
			if err == nil {
				t.Fatalf("ожидалась ошибка при отсутствии %s", key)
			}
			if !strings.Contains(err.Error(), key) {
				t.Errorf("ошибка %q не содержит имя переменной %s", err, key)
			}
		})
	}
}

func TestLoad_MongoAndTokenAuth(t *testing.T) {
	setEnvs(t, map[string]string{
		"FM_METADATA_BACKEND": "mongo",
		"FM_MONGO_URI":        "mongodb://mongo:27017",
		"FM_AUTH_MODE":        "token",
		"FM_QUEUE_BACKEND":    "none",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}
	if cfg.MongoURI != "mongodb://mongo:27017" {
		t.Errorf("MongoURI = %q", cfg.MongoURI)
	}
	if cfg.MongoDatabase != "files_manager" {
		t.Errorf("MongoDatabase = %q, ожидается files_manager", cfg.MongoDatabase)
	}
	if !cfg.UsesRedis() {
		t.Error("UsesRedis() = false при AuthMode=token")
	}
}

func TestLoad_S3(t *testing.T) {
	setEnvs(t, minimalEnvs())
	setEnvs(t, map[string]string{
		"FM_STORAGE_BACKEND":      "s3",
		"FM_S3_BUCKET":            "files",
		"FM_S3_ENDPOINT":          "http://minio:9000",
		"FM_S3_ACCESS_KEY_ID":     "minio",
		"FM_S3_SECRET_ACCESS_KEY": "minio123",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}
	if !cfg.S3UsePathStyle {
		t.Error("S3UsePathStyle = false, ожидается true при заданном endpoint")
	}
	if cfg.S3Region != "us-east-1" {
		t.Errorf("S3Region = %q, ожидается us-east-1", cfg.S3Region)
	}
	if cfg.S3MaxRetries != 3 {
		t.Errorf("S3MaxRetries = %d, ожидается 3", cfg.S3MaxRetries)
	}
}

func TestLoad_S3_PartialCredentials(t *testing.T) {
	setEnvs(t, minimalEnvs())
	setEnvs(t, map[string]string{
		"FM_STORAGE_BACKEND":  "s3",
		"FM_S3_BUCKET":        "files",
		"FM_S3_ACCESS_KEY_ID": "minio",
	})

	if _, err := Load(); err == nil {
		t.Fatal("ожидалась ошибка при заданном только access key")
	}
}

func TestLoad_Kafka(t *testing.T) {
	setEnvs(t, minimalEnvs())
	setEnvs(t, map[string]string{
		"FM_QUEUE_BACKEND": "kafka",
		"FM_KAFKA_BROKERS": "kafka-1:9092, kafka-2:9092,",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "kafka-2:9092" {
		t.Errorf("KafkaBrokers = %v, ожидалось 2 брокера", cfg.KafkaBrokers)
	}
	if cfg.UsesRedis() {
		t.Error("UsesRedis() = true при kafka и jwt")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"FM_PORT", "abc"},
		{"FM_PORT", "70000"},
		{"FM_LOG_LEVEL", "verbose"},
		{"FM_LOG_FORMAT", "xml"},
		{"FM_METADATA_BACKEND", "mysql"},
		{"FM_STORAGE_BACKEND", "ftp"},
		{"FM_QUEUE_BACKEND", "nats"},
		{"FM_AUTH_MODE", "basic"},
		{"FM_DB_SSL_MODE", "prefer"},
		{"FM_QUEUE_WORKERS", "0"},
		{"FM_QUEUE_TIMEOUT", "-1s"},
		{"FM_CACHE_TTL", "5"},
		{"FM_CACHE_ENABLED", "sometimes"},
		{"FM_STRICT_PARENT", "maybe"},
		{"FM_MAX_UPLOAD_SIZE", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			setEnvs(t, minimalEnvs())
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("ожидалась ошибка для %s=%q", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("ошибка %q не содержит имя переменной %s", err, tt.key)
			}
		})
	}
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{
		DBHost: "db", DBPort: 5432, DBName: "files",
		DBUser: "u", DBPassword: "p", DBSSLMode: "disable",
	}
	want := "pgx5://u:p@db:5432/files?sslmode=disable"
	if got := cfg.DatabaseURL("pgx5"); got != want {
		t.Errorf("DatabaseURL() = %q, ожидается %q", got, want)
	}
}

func TestParseCSV(t *testing.T) {
	got := parseCSV(" a, ,b ,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("parseCSV() = %v, ожидалось [a b]", got)
	}
	if parseCSV("") != nil {
		t.Error("parseCSV(\"\") должен вернуть nil")
	}
}
