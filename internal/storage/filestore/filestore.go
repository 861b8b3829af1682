// Пакет filestore — хранение содержимого файлов на локальном диске.
// Каждый файл записывается под именем UUID v4 в базовом каталоге
// (FM_FOLDER_PATH) с подсчётом SHA-256 на лету.
package filestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/bigkaa/goartstore/files-manager/internal/storage"
)

// FileStore — управление файлами в базовом каталоге.
type FileStore struct {
	// baseDir — корневой каталог хранения
	baseDir string
}

// New создаёт FileStore. Каталог создаётся лениво в EnsureBase.
func New(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir}
}

// EnsureBase создаёт базовый каталог вместе с родителями (mkdir -p).
func (fs *FileStore) EnsureBase(_ context.Context) error {
	if err := os.MkdirAll(fs.baseDir, 0o750); err != nil {
		return fmt.Errorf("не удалось создать каталог %s: %w", fs.baseDir, err)
	}
	return nil
}

// Write записывает содержимое в baseDir/<uuid>.
//
// Паттерн: temp файл → запись + SHA-256 → fsync → atomic rename.
// При ошибке temp файл удаляется.
func (fs *FileStore) Write(ctx context.Context, r io.Reader) (*storage.WriteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fullPath := filepath.Join(fs.baseDir, uuid.New().String())
	tmpPath := fullPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания временного файла: %w", err)
	}

	hasher := sha256.New()
	size, err := io.Copy(f, io.TeeReader(r, hasher))
	if err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("ошибка записи данных: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("ошибка fsync: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("ошибка атомарного переименования: %w", err)
	}

	return &storage.WriteResult{
		Location: fullPath,
		Size:     size,
		Checksum: hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

// BaseDir возвращает путь к базовому каталогу.
func (fs *FileStore) BaseDir() string {
	return fs.baseDir
}
