package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/goartstore/files-manager/internal/domain/model"
)

// fileColumns — список столбцов таблицы files для SELECT-запросов.
const fileColumns = `id, owner_id, name, kind, is_public, parent_id, storage_location, created_at`

// fileRepo — реализация FileRepository через pgx.
type fileRepo struct {
	db DBTX
}

// NewFileRepository создаёт PostgreSQL-репозиторий файлов.
func NewFileRepository(db DBTX) FileRepository {
	return &fileRepo{db: db}
}

// Create вставляет запись и заполняет CreatedAt.
func (r *fileRepo) Create(ctx context.Context, f *model.FileRecord) error {
	query := `
		INSERT INTO files (id, owner_id, name, kind, is_public, parent_id, storage_location)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err := r.db.QueryRow(ctx, query,
		f.ID, f.OwnerID, f.Name, string(f.Kind), f.IsPublic, f.ParentID, f.StorageLocation,
	).Scan(&f.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания записи файла: %w", err)
	}
	return nil
}

// GetByOwner возвращает запись владельца или ErrNotFound.
func (r *fileRepo) GetByOwner(ctx context.Context, id, ownerID string) (*model.FileRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM files WHERE id = $1 AND owner_id = $2`, fileColumns)

	f, err := scanFile(r.db.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения файла: %w", err)
	}
	return f, nil
}

// GetVisible возвращает запись владельца или публичную запись.
func (r *fileRepo) GetVisible(ctx context.Context, id, userID string) (*model.FileRecord, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM files WHERE id = $1 AND (owner_id = $2 OR is_public)`, fileColumns)

	f, err := scanFile(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения файла: %w", err)
	}
	return f, nil
}

// ListChildren возвращает страницу записей папки.
// Порядок — по seq (порядковый номер вставки) по убыванию.
func (r *fileRepo) ListChildren(ctx context.Context, ownerID, parentID string, limit, offset int) ([]*model.FileRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM files
		WHERE owner_id = $1 AND parent_id = $2
		ORDER BY seq DESC
		LIMIT $3 OFFSET $4`, fileColumns)

	rows, err := r.db.Query(ctx, query, ownerID, parentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка файлов: %w", err)
	}
	defer rows.Close()

	result := make([]*model.FileRecord, 0, limit)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования файла: %w", err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации результатов: %w", err)
	}
	return result, nil
}

// SetVisibility обновляет is_public у записи владельца.
func (r *fileRepo) SetVisibility(ctx context.Context, id, ownerID string, isPublic bool) (*model.FileRecord, error) {
	query := fmt.Sprintf(`
		UPDATE files SET is_public = $3
		WHERE id = $1 AND owner_id = $2
		RETURNING %s`, fileColumns)

	f, err := scanFile(r.db.QueryRow(ctx, query, id, ownerID, isPublic))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка обновления видимости файла: %w", err)
	}
	return f, nil
}

// Count возвращает количество записей в таблице files.
func (r *fileRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM files`).Scan(&n); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта файлов: %w", err)
	}
	return n, nil
}

// scanFile сканирует строку в FileRecord. Порядок полей — fileColumns.
func scanFile(row pgx.Row) (*model.FileRecord, error) {
	f := &model.FileRecord{}
	var kind string
	if err := row.Scan(
		&f.ID, &f.OwnerID, &f.Name, &kind, &f.IsPublic, &f.ParentID, &f.StorageLocation, &f.CreatedAt,
	); err != nil {
		return nil, err
	}
	f.Kind = model.Kind(kind)
	return f, nil
}
