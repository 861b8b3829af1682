// files.go — сервис метаданных файлов: загрузка, просмотр, список
// содержимого папки и смена видимости.
// Координирует repository, хранилище содержимого, LRU-кэш, очередь
// миниатюр и Prometheus-метрики.
package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/goartstore/files-manager/internal/domain/model"
	"github.com/bigkaa/goartstore/files-manager/internal/domain/objectid"
	"github.com/bigkaa/goartstore/files-manager/internal/repository"
	"github.com/bigkaa/goartstore/files-manager/internal/storage"
)

// PageSize — размер страницы списка содержимого папки.
const PageSize = 20

// maxPage — номер страницы, после которого смещение переполнило бы int32.
const maxPage = math.MaxInt32 / PageSize

// Prometheus-метрики загрузок.
var (
	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fm_uploads_total",
		Help: "Общее количество загрузок по типу и результату.",
	}, []string{"kind", "status"})
)

// ThumbnailQueue — постановка задания генерации миниатюры.
// Не блокирует и не возвращает ошибок.
type ThumbnailQueue interface {
	Dispatch(ownerID, fileID string)
}

// UploadParams — параметры загрузки. nil — поле не передано.
type UploadParams struct {
	// Name — отображаемое имя
	Name string
	// Kind — folder, file или image (строка из запроса, проверяется)
	Kind string
	// ParentID — родительская папка; nil или "" — корень
	ParentID *string
	// IsPublic — видимость; nil — false
	IsPublic *bool
	// Data — содержимое в base64 (обязательно для file и image)
	Data *string
}

// FileService — бизнес-логика метаданных файлов.
type FileService struct {
	repo         repository.FileRepository
	blobs        storage.BlobStore
	cache        *CacheService
	thumbs       ThumbnailQueue
	strictParent bool
	logger       *slog.Logger
}

// NewFileService создаёт сервис файлов.
// cache — nil, если кэш выключен.
// strictParent — проверять существование и тип родительской папки.
func NewFileService(
	repo repository.FileRepository,
	blobs storage.BlobStore,
	cache *CacheService,
	thumbs ThumbnailQueue,
	strictParent bool,
	logger *slog.Logger,
) *FileService {
	return &FileService{
		repo:         repo,
		blobs:        blobs,
		cache:        cache,
		thumbs:       thumbs,
		strictParent: strictParent,
		logger:       logger.With(slog.String("component", "file_service")),
	}
}

// Upload создаёт папку или файл.
//
// Порядок проверок (первая неудачная завершает запрос):
//  1. name не пустое и kind допустим
//  2. для file/image передано содержимое
//  3. parentId — корень или корректный идентификатор
//  4. содержимое — корректный base64
//
// Затем: подготовка хранилища (для любого kind) → запись содержимого →
// вставка записи → задание миниатюры (image).
// Если вставка не удалась после записи содержимого, файл остаётся
// в хранилище без записи; его location попадает в лог.
func (s *FileService) Upload(ctx context.Context, ownerID string, p UploadParams) (*model.FileRecord, error) {
	kind := model.Kind(p.Kind)
	kindLabel := string(kind)
	if !kind.IsValid() {
		kindLabel = "unknown"
	}

	rec, err := s.upload(ctx, ownerID, kind, p)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			uploadsTotal.WithLabelValues(kindLabel, "invalid").Inc()
		} else {
			uploadsTotal.WithLabelValues(kindLabel, "error").Inc()
		}
		return nil, err
	}
	uploadsTotal.WithLabelValues(kindLabel, "success").Inc()

	if kind == model.KindImage {
		s.thumbs.Dispatch(ownerID, rec.ID)
	}
	return rec, nil
}

func (s *FileService) upload(ctx context.Context, ownerID string, kind model.Kind, p UploadParams) (*model.FileRecord, error) {
	if p.Name == "" || !kind.IsValid() {
		return nil, invalid(MsgMissingNameOrType)
	}
	if kind != model.KindFolder && (p.Data == nil || *p.Data == "") {
		return nil, invalid(MsgMissingData)
	}

	parentID := model.RootID
	if p.ParentID != nil && *p.ParentID != "" && *p.ParentID != model.RootID {
		if !objectid.IsValid(*p.ParentID) {
			return nil, invalid(MsgInvalidParentID)
		}
		parentID = strings.ToLower(*p.ParentID)
	}

	var payload []byte
	if kind != model.KindFolder {
		var err error
		if payload, err = decodeBase64(*p.Data); err != nil {
			return nil, invalid(MsgInvalidData)
		}
	}

	if s.strictParent && parentID != model.RootID {
		if err := s.checkParent(ctx, ownerID, parentID); err != nil {
			return nil, err
		}
	}

	rec := &model.FileRecord{
		ID:       objectid.New(),
		OwnerID:  ownerID,
		Name:     p.Name,
		Kind:     kind,
		IsPublic: p.IsPublic != nil && *p.IsPublic,
		ParentID: parentID,
	}

	if err := s.blobs.EnsureBase(ctx); err != nil {
		return nil, fmt.Errorf("подготовка хранилища: %w", err)
	}

	if kind != model.KindFolder {
		res, err := s.blobs.Write(ctx, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("запись содержимого: %w", err)
		}
		rec.StorageLocation = &res.Location

		s.logger.Debug("Содержимое записано",
			slog.String("file_id", rec.ID),
			slog.String("location", res.Location),
			slog.Int64("size", res.Size),
			slog.String("checksum", res.Checksum),
		)
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		attrs := []any{
			slog.String("file_id", rec.ID),
			slog.String("owner_id", ownerID),
			slog.String("error", err.Error()),
		}
		if rec.StorageLocation != nil {
			attrs = append(attrs, slog.String("orphan_location", *rec.StorageLocation))
		}
		s.logger.Error("Ошибка сохранения записи файла", attrs...)
		return nil, fmt.Errorf("создание записи файла: %w", err)
	}

	s.logger.Info("Файл создан",
		slog.String("file_id", rec.ID),
		slog.String("owner_id", ownerID),
		slog.String("kind", string(kind)),
		slog.String("parent_id", parentID),
	)
	return rec, nil
}

// checkParent проверяет, что родитель существует, принадлежит владельцу
// и является папкой.
func (s *FileService) checkParent(ctx context.Context, ownerID, parentID string) error {
	parent, err := s.repo.GetByOwner(ctx, parentID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalid(MsgParentNotFound)
		}
		return fmt.Errorf("проверка родительской папки: %w", err)
	}
	if parent.Kind != model.KindFolder {
		return invalid(MsgParentIsNotAFolder)
	}
	return nil
}

// decodeBase64 декодирует стандартный base64; допускается отсутствие padding.
func decodeBase64(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}
	if raw, rawErr := base64.RawStdEncoding.DecodeString(s); rawErr == nil {
		return raw, nil
	}
	return nil, err
}

// Get возвращает запись владельца. Некорректный идентификатор
// заменяется на objectid.Null и даёт ErrNotFound.
// Если кэш включён, сначала проверяет его, при промахе — запрос к хранилищу.
func (s *FileService) Get(ctx context.Context, ownerID, id string) (*model.FileRecord, error) {
	id = objectid.OrNull(id)

	var gen uint64
	if s.cache != nil {
		if rec, ok := s.cache.Get(ownerID, id); ok {
			return rec, nil
		}
		gen = s.cache.Generation()
	}

	rec, err := s.repo.GetByOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("получение файла: %w", err)
	}

	if s.cache != nil {
		s.cache.Fill(rec, gen)
	}
	return rec, nil
}

// GetVisible возвращает запись, если она принадлежит userID или публична.
func (s *FileService) GetVisible(ctx context.Context, userID, id string) (*model.FileRecord, error) {
	rec, err := s.repo.GetVisible(ctx, objectid.OrNull(id), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("получение файла: %w", err)
	}
	return rec, nil
}

// List возвращает страницу содержимого папки владельца, от новых к старым.
// parentID "" — корень; некорректный parentID даёт пустой список.
// Отрицательная страница считается нулевой.
func (s *FileService) List(ctx context.Context, ownerID, parentID string, page int) ([]*model.FileRecord, error) {
	if parentID == "" {
		parentID = model.RootID
	}
	if parentID != model.RootID {
		parentID = objectid.OrNull(parentID)
	}
	if page < 0 {
		page = 0
	}
	if page > maxPage {
		return []*model.FileRecord{}, nil
	}

	items, err := s.repo.ListChildren(ctx, ownerID, parentID, PageSize, page*PageSize)
	if err != nil {
		return nil, fmt.Errorf("список файлов: %w", err)
	}
	if items == nil {
		items = []*model.FileRecord{}
	}

	s.logger.Debug("Список файлов",
		slog.String("owner_id", ownerID),
		slog.String("parent_id", parentID),
		slog.Int("page", page),
		slog.Int("returned", len(items)),
	)
	return items, nil
}

// SetPublic устанавливает видимость записи владельца и возвращает
// обновлённую запись. Повторный вызов с тем же значением ничего не меняет.
func (s *FileService) SetPublic(ctx context.Context, ownerID, id string, value bool) (*model.FileRecord, error) {
	id = objectid.OrNull(id)

	rec, err := s.repo.SetVisibility(ctx, id, ownerID, value)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("смена видимости файла: %w", err)
	}
	if s.cache != nil {
		s.cache.Delete(ownerID, id)
	}

	s.logger.Info("Видимость файла изменена",
		slog.String("file_id", id),
		slog.Bool("is_public", value),
	)
	return rec, nil
}

// Count возвращает общее количество записей.
func (s *FileService) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("подсчёт файлов: %w", err)
	}
	return n, nil
}
