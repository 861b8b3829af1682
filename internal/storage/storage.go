// Пакет storage — контракт хранилища содержимого файлов.
// Реализации: filestore (локальный диск) и s3store (S3-совместимое хранилище).
package storage

import (
	"context"
	"io"
)

// WriteResult — результат записи содержимого.
type WriteResult struct {
	// Location — путь или URI, по которому записано содержимое
	Location string
	// Size — размер записанных данных в байтах
	Size int64
	// Checksum — SHA-256 хэш содержимого (hex)
	Checksum string
}

// BlobStore — хранилище содержимого файлов.
type BlobStore interface {
	// EnsureBase подготавливает базовое место хранения. Повторный вызов безопасен.
	EnsureBase(ctx context.Context) error
	// Write записывает содержимое под новым уникальным именем.
	Write(ctx context.Context, r io.Reader) (*WriteResult, error)
}
