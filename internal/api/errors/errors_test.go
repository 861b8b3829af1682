package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriters(t *testing.T) {
	tests := []struct {
		name    string
		write   func(w http.ResponseWriter)
		status  int
		code    string
		message string
	}{
		{"validation", func(w http.ResponseWriter) { ValidationError(w, "Missing data") }, 400, CodeValidationError, "Missing data"},
		{"not found", NotFound, 404, CodeNotFound, MsgNotFound},
		{"unauthorized", Unauthorized, 401, CodeUnauthorized, MsgUnauthorized},
		{"too large", PayloadTooLarge, 413, CodePayloadTooLarge, MsgPayloadTooLarge},
		{"internal", InternalError, 500, CodeInternalError, MsgInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)

			if rec.Code != tt.status {
				t.Errorf("статус = %d, ожидался %d", rec.Code, tt.status)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			var body errorBody
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("ошибка декодирования: %v", err)
			}
			if body.Error.Code != tt.code || body.Error.Message != tt.message {
				t.Errorf("тело = %+v, ожидалось {%s %s}", body.Error, tt.code, tt.message)
			}
		})
	}
}
