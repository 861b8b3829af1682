package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/goartstore/files-manager/internal/api/generated"
	"github.com/bigkaa/goartstore/files-manager/internal/api/middleware"
	"github.com/bigkaa/goartstore/files-manager/internal/domain/model"
	"github.com/bigkaa/goartstore/files-manager/internal/server"
	"github.com/bigkaa/goartstore/files-manager/internal/service"
)

// mockFileService — заглушка FileService с функциональными полями.
type mockFileService struct {
	uploadFn    func(ctx context.Context, ownerID string, p service.UploadParams) (*model.FileRecord, error)
	getFn       func(ctx context.Context, ownerID, id string) (*model.FileRecord, error)
	listFn      func(ctx context.Context, ownerID, parentID string, page int) ([]*model.FileRecord, error)
	setPublicFn func(ctx context.Context, ownerID, id string, value bool) (*model.FileRecord, error)
	countFn     func(ctx context.Context) (int64, error)
}

func (m *mockFileService) Upload(ctx context.Context, ownerID string, p service.UploadParams) (*model.FileRecord, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, ownerID, p)
	}
	return nil, errors.New("not implemented")
}

func (m *mockFileService) Get(ctx context.Context, ownerID, id string) (*model.FileRecord, error) {
	if m.getFn != nil {
		return m.getFn(ctx, ownerID, id)
	}
	return nil, service.ErrNotFound
}

func (m *mockFileService) List(ctx context.Context, ownerID, parentID string, page int) ([]*model.FileRecord, error) {
	if m.listFn != nil {
		return m.listFn(ctx, ownerID, parentID, page)
	}
	return []*model.FileRecord{}, nil
}

func (m *mockFileService) SetPublic(ctx context.Context, ownerID, id string, value bool) (*model.FileRecord, error) {
	if m.setPublicFn != nil {
		return m.setPublicFn(ctx, ownerID, id, value)
	}
	return nil, service.ErrNotFound
}

func (m *mockFileService) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

const testFileID = "5f1e7b2c9a3d4e5f6a7b8c9d"

// fakeAuth — пользователь берётся из заголовка X-User; без него 401.
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := r.Header.Get("X-User")
		if user == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), user)))
	})
}

func newTestRouter(files FileService, maxUpload int64) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewAPIHandler(files, NewHealthHandler(nil), maxUpload, logger)
	router := chi.NewRouter()
	router.Use(server.AuthWithExclusions(fakeAuth, server.PublicPrefixes...))
	generated.HandlerFromMux(h, router)
	return router
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("X-User", "u1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (code, message string) {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("ошибка декодирования тела ошибки: %v", err)
	}
	return body.Error.Code, body.Error.Message
}

func sampleRecord() *model.FileRecord {
	loc := "/tmp/files_manager/x"
	return &model.FileRecord{
		ID: testFileID, OwnerID: "u1", Name: "notes.txt", Kind: model.KindFile,
		ParentID: model.RootID, StorageLocation: &loc,
	}
}

func TestUploadFile_Success(t *testing.T) {
	var gotOwner string
	var gotParams service.UploadParams
	svc := &mockFileService{uploadFn: func(_ context.Context, ownerID string, p service.UploadParams) (*model.FileRecord, error) {
		gotOwner, gotParams = ownerID, p
		return sampleRecord(), nil
	}}
	router := newTestRouter(svc, 1<<20)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/files",
		`{"name":"notes.txt","kind":"file","payloadBase64":"SGVsbG8="}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("статус = %d, ожидался 201: %s", rec.Code, rec.Body.String())
	}
	if gotOwner != "u1" {
		t.Errorf("владелец = %q, ожидался u1", gotOwner)
	}
	if gotParams.ParentID != nil || gotParams.IsPublic != nil {
		t.Error("отсутствующие поля должны передаваться как nil")
	}
	if gotParams.Data == nil || *gotParams.Data != "SGVsbG8=" {
		t.Errorf("Data = %v", gotParams.Data)
	}

	var view map[string]any
	_ = json.NewDecoder(rec.Body).Decode(&view)
	if view["parentId"] != float64(0) || view["isPublic"] != false || view["id"] != testFileID {
		t.Errorf("ответ = %v", view)
	}
}

func TestUploadFile_ParentForms(t *testing.T) {
	tests := []struct {
		name string
		body string
		want *string
	}{
		{"число 0", `{"name":"a","kind":"folder","parentId":0}`, strPtr("0")},
		{"строка 0", `{"name":"a","kind":"folder","parentId":"0"}`, strPtr("0")},
		{"null", `{"name":"a","kind":"folder","parentId":null}`, nil},
		{"идентификатор", `{"name":"a","kind":"folder","parentId":"` + testFileID + `"}`, strPtr(testFileID)},
		{"число 7", `{"name":"a","kind":"folder","parentId":7}`, strPtr("7")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *string
			svc := &mockFileService{uploadFn: func(_ context.Context, _ string, p service.UploadParams) (*model.FileRecord, error) {
				got = p.ParentID
				return sampleRecord(), nil
			}}
			rec := doRequest(t, newTestRouter(svc, 1<<20), http.MethodPost, "/api/v1/files", tt.body)
			if rec.Code != http.StatusCreated {
				t.Fatalf("статус = %d", rec.Code)
			}
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("ParentID = %q, ожидался nil", *got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Errorf("ParentID = %v, ожидался %q", got, *tt.want)
			}
		})
	}
}

func strPtr(s string) *string { return &s }

func TestUploadFile_ValidationError(t *testing.T) {
	svc := &mockFileService{uploadFn: func(context.Context, string, service.UploadParams) (*model.FileRecord, error) {
		return nil, &service.ValidationError{Message: service.MsgMissingData}
	}}
	rec := doRequest(t, newTestRouter(svc, 1<<20), http.MethodPost, "/api/v1/files", `{"name":"a","kind":"file"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("статус = %d, ожидался 400", rec.Code)
	}
	code, msg := decodeError(t, rec)
	if code != "VALIDATION_ERROR" || msg != "Missing data" {
		t.Errorf("ошибка = %s/%s", code, msg)
	}
}

func TestUploadFile_InvalidBody(t *testing.T) {
	router := newTestRouter(&mockFileService{}, 1<<20)
	for _, body := range []string{
		`not json`,
		`[1,2]`,
		`{"name":"a","kind":"folder","isPublic":"yes"}`,
		`{"name":"a","kind":"file","payloadBase64":123}`,
	} {
		rec := doRequest(t, router, http.MethodPost, "/api/v1/files", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("тело %q: статус = %d, ожидался 400", body, rec.Code)
			continue
		}
		if _, msg := decodeError(t, rec); msg != "Invalid request body" {
			t.Errorf("тело %q: сообщение = %q", body, msg)
		}
	}
}

func TestUploadFile_InvalidKindWinsOverFieldTypes(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantName string
		wantKind string
	}{
		{"isPublic строкой", `{"kind":"bogus","isPublic":"yes"}`, "", "bogus"},
		{"name числом", `{"name":5,"kind":"file","payloadBase64":"SGVsbG8="}`, "", "file"},
		{"kind числом", `{"name":"a","kind":1,"isPublic":"yes"}`, "a", ""},
		{"payload числом", `{"name":"a","kind":"video","payloadBase64":1}`, "a", "video"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got service.UploadParams
			called := false
			svc := &mockFileService{uploadFn: func(_ context.Context, _ string, p service.UploadParams) (*model.FileRecord, error) {
				called, got = true, p
				return nil, &service.ValidationError{Message: service.MsgMissingNameOrType}
			}}
			rec := doRequest(t, newTestRouter(svc, 1<<20), http.MethodPost, "/api/v1/files", tt.body)

			if !called {
				t.Fatal("сервис не вызван")
			}
			if got.Name != tt.wantName || got.Kind != tt.wantKind {
				t.Errorf("name/kind = %q/%q, ожидалось %q/%q", got.Name, got.Kind, tt.wantName, tt.wantKind)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("статус = %d, ожидался 400", rec.Code)
			}
			if _, msg := decodeError(t, rec); msg != "Missing name or invalid type" {
				t.Errorf("сообщение = %q", msg)
			}
		})
	}
}

func TestUploadFile_NullFieldsAreAbsent(t *testing.T) {
	var got service.UploadParams
	svc := &mockFileService{uploadFn: func(_ context.Context, _ string, p service.UploadParams) (*model.FileRecord, error) {
		got = p
		return sampleRecord(), nil
	}}
	rec := doRequest(t, newTestRouter(svc, 1<<20), http.MethodPost, "/api/v1/files",
		`{"name":"a","kind":"folder","isPublic":null,"payloadBase64":null}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("статус = %d, ожидался 201", rec.Code)
	}
	if got.IsPublic != nil || got.Data != nil {
		t.Error("null-поля должны передаваться как nil")
	}
}

func TestUploadFile_GeneratedRequestBody(t *testing.T) {
	var got service.UploadParams
	svc := &mockFileService{uploadFn: func(_ context.Context, _ string, p service.UploadParams) (*model.FileRecord, error) {
		got = p
		return sampleRecord(), nil
	}}
	name, kind, data, public := "p.png", "image", "SGVsbG8=", true
	var parent interface{} = testFileID
	body, _ := json.Marshal(generated.UploadFileJSONRequestBody{
		Name: &name, Kind: &kind, PayloadBase64: &data, IsPublic: &public, ParentId: &parent,
	})

	rec := doRequest(t, newTestRouter(svc, 1<<20), http.MethodPost, "/api/v1/files", string(body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("статус = %d, ожидался 201", rec.Code)
	}
	if got.Name != name || got.Kind != kind || got.IsPublic == nil || !*got.IsPublic ||
		got.ParentID == nil || *got.ParentID != testFileID {
		t.Errorf("параметры = %+v", got)
	}
}

func TestUploadFile_TooLarge(t *testing.T) {
	router := newTestRouter(&mockFileService{}, 64)
	body := `{"name":"a","kind":"file","payloadBase64":"` + strings.Repeat("A", 200) + `"}`

	rec := doRequest(t, router, http.MethodPost, "/api/v1/files", body)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("статус = %d, ожидался 413", rec.Code)
	}
}

func TestUploadFile_InternalError(t *testing.T) {
	svc := &mockFileService{uploadFn: func(context.Context, string, service.UploadParams) (*model.FileRecord, error) {
		return nil, errors.New("pg: connection refused")
	}}
	rec := doRequest(t, newTestRouter(svc, 1<<20), http.MethodPost, "/api/v1/files", `{"name":"a","kind":"folder"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("статус = %d, ожидался 500", rec.Code)
	}
	if _, msg := decodeError(t, rec); strings.Contains(msg, "pg") {
		t.Errorf("сообщение %q раскрывает внутреннюю ошибку", msg)
	}
}

func TestGetFile(t *testing.T) {
	svc := &mockFileService{getFn: func(_ context.Context, ownerID, id string) (*model.FileRecord, error) {
		if ownerID == "u1" && id == testFileID {
			return sampleRecord(), nil
		}
		return nil, service.ErrNotFound
	}}
	router := newTestRouter(svc, 1<<20)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/files/"+testFileID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидался 200", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/v1/files/bogus", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("статус = %d, ожидался 404", rec.Code)
	}
	if code, msg := decodeError(t, rec); code != "NOT_FOUND" || msg != "Not found" {
		t.Errorf("ошибка = %s/%s", code, msg)
	}
}

func TestListFiles_QueryParams(t *testing.T) {
	tests := []struct {
		query      string
		wantParent string
		wantPage   int
	}{
		{"", "", 0},
		{"?page=2", "", 2},
		{"?page=abc", "", 0},
		{"?page=-4", "", -4},
		{"?parentId=" + testFileID + "&page=1", testFileID, 1},
	}

	for _, tt := range tests {
		var gotParent string
		var gotPage int
		svc := &mockFileService{listFn: func(_ context.Context, _ string, parentID string, page int) ([]*model.FileRecord, error) {
			gotParent, gotPage = parentID, page
			return []*model.FileRecord{}, nil
		}}
		rec := doRequest(t, newTestRouter(svc, 1<<20), http.MethodGet, "/api/v1/files"+tt.query, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: статус = %d", tt.query, rec.Code)
		}
		if strings.TrimSpace(rec.Body.String()) != "[]" {
			t.Errorf("%s: тело = %q, ожидался []", tt.query, rec.Body.String())
		}
		if gotParent != tt.wantParent || gotPage != tt.wantPage {
			t.Errorf("%s: parent=%q page=%d, ожидалось %q/%d", tt.query, gotParent, gotPage, tt.wantParent, tt.wantPage)
		}
	}
}

func TestListFiles_Views(t *testing.T) {
	child := sampleRecord()
	child.ParentID = "aaaaaaaaaaaaaaaaaaaaaaaa"
	svc := &mockFileService{listFn: func(context.Context, string, string, int) ([]*model.FileRecord, error) {
		return []*model.FileRecord{child}, nil
	}}
	rec := doRequest(t, newTestRouter(svc, 1<<20), http.MethodGet, "/api/v1/files?parentId=aaaaaaaaaaaaaaaaaaaaaaaa", "")

	var views []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&views); err != nil {
		t.Fatalf("ошибка декодирования: %v", err)
	}
	if len(views) != 1 || views[0]["parentId"] != "aaaaaaaaaaaaaaaaaaaaaaaa" {
		t.Errorf("ответ = %v", views)
	}
}

func TestPublishUnpublish(t *testing.T) {
	var calls []bool
	svc := &mockFileService{setPublicFn: func(_ context.Context, ownerID, id string, value bool) (*model.FileRecord, error) {
		if ownerID != "u1" || id != testFileID {
			return nil, service.ErrNotFound
		}
		calls = append(calls, value)
		rec := sampleRecord()
		rec.IsPublic = value
		return rec, nil
	}}
	router := newTestRouter(svc, 1<<20)

	rec := doRequest(t, router, http.MethodPut, "/api/v1/files/"+testFileID+"/publish", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("publish статус = %d", rec.Code)
	}
	var view map[string]any
	_ = json.NewDecoder(rec.Body).Decode(&view)
	if view["isPublic"] != true {
		t.Errorf("isPublic = %v после publish", view["isPublic"])
	}

	rec = doRequest(t, router, http.MethodPut, "/api/v1/files/"+testFileID+"/unpublish", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unpublish статус = %d", rec.Code)
	}
	if len(calls) != 2 || calls[0] != true || calls[1] != false {
		t.Errorf("вызовы = %v, ожидалось [true false]", calls)
	}

	rec = doRequest(t, router, http.MethodPut, "/api/v1/files/other/publish", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("статус = %d, ожидался 404", rec.Code)
	}
}

func TestGetStats(t *testing.T) {
	svc := &mockFileService{countFn: func(context.Context) (int64, error) { return 42, nil }}
	rec := doRequest(t, newTestRouter(svc, 1<<20), http.MethodGet, "/api/v1/stats", "")

	if strings.TrimSpace(rec.Body.String()) != `{"files":42}` {
		t.Errorf("тело = %q", rec.Body.String())
	}
}

func TestRoutes_RequireAuth(t *testing.T) {
	router := newTestRouter(&mockFileService{}, 1<<20)

	for _, path := range []string{"/api/v1/files", "/api/v1/files/" + testFileID, "/api/v1/stats"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: статус = %d, ожидался 401", path, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("/health/live: статус = %d, ожидался 200", rec.Code)
	}
}
