// Пакет repository — слой доступа к метаданным файлов.
// Две реализации FileRepository: PostgreSQL (чистый SQL через pgx)
// и MongoDB (mongo-driver v2). Выбор — через FM_METADATA_BACKEND.
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bigkaa/goartstore/files-manager/internal/domain/model"
)

// Ошибки слоя репозиториев.
var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("запись не найдена")
)

// DBTX — интерфейс для выполнения SQL-запросов.
// Реализуется как *pgxpool.Pool, так и pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// FileRepository — хранилище метаданных файлов и папок.
// Повторы при ошибках не выполняются.
type FileRepository interface {
	// Create сохраняет новую запись. ID задаёт вызывающий,
	// CreatedAt заполняется хранилищем.
	Create(ctx context.Context, f *model.FileRecord) error
	// GetByOwner возвращает запись, принадлежащую ownerID, или ErrNotFound.
	GetByOwner(ctx context.Context, id, ownerID string) (*model.FileRecord, error)
	// GetVisible возвращает запись, если она принадлежит userID или публична.
	GetVisible(ctx context.Context, id, userID string) (*model.FileRecord, error)
	// ListChildren возвращает записи владельца в папке parentID,
	// от новых к старым.
	ListChildren(ctx context.Context, ownerID, parentID string, limit, offset int) ([]*model.FileRecord, error)
	// SetVisibility обновляет флаг isPublic и возвращает обновлённую запись.
	SetVisibility(ctx context.Context, id, ownerID string, isPublic bool) (*model.FileRecord, error)
	// Count возвращает общее количество записей.
	Count(ctx context.Context) (int64, error)
}
