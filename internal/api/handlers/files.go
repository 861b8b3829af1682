// files.go — /api/v1/files и /api/v1/stats.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	apierrors "github.com/bigkaa/goartstore/files-manager/internal/api/errors"
	"github.com/bigkaa/goartstore/files-manager/internal/api/generated"
	"github.com/bigkaa/goartstore/files-manager/internal/api/middleware"
	"github.com/bigkaa/goartstore/files-manager/internal/domain/model"
	"github.com/bigkaa/goartstore/files-manager/internal/service"
)

// msgInvalidBody — тело запроса не является JSON-объектом ожидаемой формы.
const msgInvalidBody = "Invalid request body"

// uploadBody — тело POST /api/v1/files (generated.UploadRequest) без строгой
// типизации полей: поле неверного типа не мешает проверке name и kind.
type uploadBody struct {
	Name          json.RawMessage `json:"name"`
	Kind          json.RawMessage `json:"kind"`
	ParentID      *ParentRef      `json:"parentId"`
	IsPublic      json.RawMessage `json:"isPublic"`
	PayloadBase64 json.RawMessage `json:"payloadBase64"`
}

// present — поле передано и не равно null.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// params переводит тело в параметры сервиса.
// malformed — isPublic или payloadBase64 переданы значением не того типа.
// Name или kind не строкой превращаются в пустую строку.
func (b *uploadBody) params() (p service.UploadParams, malformed bool) {
	_ = json.Unmarshal(b.Name, &p.Name)
	_ = json.Unmarshal(b.Kind, &p.Kind)

	if b.ParentID != nil {
		parent := string(*b.ParentID)
		p.ParentID = &parent
	}
	if present(b.IsPublic) {
		var v bool
		if err := json.Unmarshal(b.IsPublic, &v); err != nil {
			malformed = true
		} else {
			p.IsPublic = &v
		}
	}
	if present(b.PayloadBase64) {
		var data string
		if err := json.Unmarshal(b.PayloadBase64, &data); err != nil {
			malformed = true
		} else {
			p.Data = &data
		}
	}
	return p, malformed
}

// UploadFile — POST /api/v1/files.
func (h *APIHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	var body uploadBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apierrors.PayloadTooLarge(w)
			return
		}
		apierrors.ValidationError(w, msgInvalidBody)
		return
	}

	params, malformed := body.params()
	// Ошибка name/kind важнее ошибки типа остальных полей, её выдаёт сервис
	if malformed && params.Name != "" && model.Kind(params.Kind).IsValid() {
		apierrors.ValidationError(w, msgInvalidBody)
		return
	}

	rec, err := h.files.Upload(r.Context(), userID, params)
	if err != nil {
		h.writeServiceError(w, err, "загрузка", slog.String("name", params.Name))
		return
	}
	writeJSON(w, http.StatusCreated, toView(rec))
}

// GetFile — GET /api/v1/files/{id}.
func (h *APIHandler) GetFile(w http.ResponseWriter, r *http.Request, id generated.FileId) {
	rec, err := h.files.Get(r.Context(), middleware.UserIDFromContext(r.Context()), id)
	if err != nil {
		h.writeServiceError(w, err, "получение", slog.String("file_id", id))
		return
	}
	writeJSON(w, http.StatusOK, toView(rec))
}

// ListFiles — GET /api/v1/files?parentId=&page=.
// Нечисловая страница считается нулевой.
func (h *APIHandler) ListFiles(w http.ResponseWriter, r *http.Request, params generated.ListFilesParams) {
	page := 0
	if params.Page != nil {
		if n, err := strconv.Atoi(*params.Page); err == nil {
			page = n
		}
	}
	parentID := ""
	if params.ParentId != nil {
		parentID = *params.ParentId
	}

	recs, err := h.files.List(r.Context(), middleware.UserIDFromContext(r.Context()), parentID, page)
	if err != nil {
		h.writeServiceError(w, err, "список", slog.String("parent_id", parentID))
		return
	}
	writeJSON(w, http.StatusOK, toViews(recs))
}

// PublishFile — PUT /api/v1/files/{id}/publish.
func (h *APIHandler) PublishFile(w http.ResponseWriter, r *http.Request, id generated.FileId) {
	h.setPublic(w, r, id, true)
}

// UnpublishFile — PUT /api/v1/files/{id}/unpublish.
func (h *APIHandler) UnpublishFile(w http.ResponseWriter, r *http.Request, id generated.FileId) {
	h.setPublic(w, r, id, false)
}

func (h *APIHandler) setPublic(w http.ResponseWriter, r *http.Request, id string, value bool) {
	rec, err := h.files.SetPublic(r.Context(), middleware.UserIDFromContext(r.Context()), id, value)
	if err != nil {
		h.writeServiceError(w, err, "смена видимости", slog.String("file_id", id))
		return
	}
	writeJSON(w, http.StatusOK, toView(rec))
}

// GetStats — GET /api/v1/stats.
func (h *APIHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	n, err := h.files.Count(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "статистика")
		return
	}
	writeJSON(w, http.StatusOK, generated.StatsResponse{Files: n})
}

// writeServiceError переводит ошибку сервиса в HTTP-ответ.
// Неожиданные ошибки логируются, клиент получает только 500.
func (h *APIHandler) writeServiceError(w http.ResponseWriter, err error, op string, attrs ...any) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		apierrors.ValidationError(w, vErr.Message)
	case errors.Is(err, service.ErrNotFound):
		apierrors.NotFound(w)
	default:
		attrs = append(attrs, slog.String("operation", op), slog.String("error", err.Error()))
		h.logger.Error("Ошибка обработки запроса", attrs...)
		apierrors.InternalError(w)
	}
}
