// handler.go — APIHandler реализует generated.ServerInterface,
// делегируя запросы в сервисный слой. JSON-представления записей.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bigkaa/goartstore/files-manager/internal/api/generated"
	"github.com/bigkaa/goartstore/files-manager/internal/domain/model"
	"github.com/bigkaa/goartstore/files-manager/internal/service"
)

// FileService — операции над метаданными, используемые обработчиками.
// Реализуется *service.FileService.
type FileService interface {
	Upload(ctx context.Context, ownerID string, p service.UploadParams) (*model.FileRecord, error)
	Get(ctx context.Context, ownerID, id string) (*model.FileRecord, error)
	List(ctx context.Context, ownerID, parentID string, page int) ([]*model.FileRecord, error)
	SetPublic(ctx context.Context, ownerID, id string, value bool) (*model.FileRecord, error)
	Count(ctx context.Context) (int64, error)
}

// APIHandler — единая реализация ServerInterface: бизнес-маршруты и health endpoints.
type APIHandler struct {
	files         FileService
	health        *HealthHandler
	maxUploadSize int64
	logger        *slog.Logger
}

// NewAPIHandler создаёт обработчик.
// maxUploadSize — предел тела POST /api/v1/files в байтах.
func NewAPIHandler(files FileService, health *HealthHandler, maxUploadSize int64, logger *slog.Logger) *APIHandler {
	return &APIHandler{
		files:         files,
		health:        health,
		maxUploadSize: maxUploadSize,
		logger:        logger.With(slog.String("component", "api_handler")),
	}
}

// HealthLive — liveness probe.
func (h *APIHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.health.HealthLive(w, r)
}

// HealthReady — readiness probe.
func (h *APIHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.health.HealthReady(w, r)
}

// GetMetrics — Prometheus метрики.
func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.health.GetMetrics(w, r)
}

// ParentRef — ссылка на родительскую папку во внешнем JSON.
// Корень передаётся и отдаётся как число 0; также принимается строка "0".
type ParentRef string

// MarshalJSON отдаёт корень числом 0, остальные значения строкой.
func (p ParentRef) MarshalJSON() ([]byte, error) {
	if p == model.RootID {
		return []byte("0"), nil
	}
	return json.Marshal(string(p))
}

// UnmarshalJSON принимает строку или число. Число 0 — корень.
// Прочие значения сохраняются текстом и не проходят проверку идентификатора.
func (p *ParentRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = ParentRef(s)
		return nil
	}

	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&n); err == nil {
		if f, err := n.Float64(); err == nil && f == 0 {
			*p = model.RootID
			return nil
		}
	}

	*p = ParentRef(data)
	return nil
}

// toView — внешнее представление записи. Корень отдаётся числом 0.
func toView(rec *model.FileRecord) generated.FileView {
	return generated.FileView{
		Id:       rec.ID,
		OwnerId:  rec.OwnerID,
		Name:     rec.Name,
		Kind:     generated.FileKind(rec.Kind),
		IsPublic: rec.IsPublic,
		ParentId: ParentRef(rec.ParentID),
	}
}

func toViews(recs []*model.FileRecord) []generated.FileView {
	views := make([]generated.FileView, 0, len(recs))
	for _, rec := range recs {
		views = append(views, toView(rec))
	}
	return views
}

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Проверка соответствия интерфейсу на этапе компиляции.
var _ generated.ServerInterface = (*APIHandler)(nil)
