// health.go — /health/live, /health/ready, /metrics.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bigkaa/goartstore/files-manager/internal/api/generated"
	"github.com/bigkaa/goartstore/files-manager/internal/config"
)

// ReadinessChecker — проверка готовности зависимости.
type ReadinessChecker interface {
	// CheckReady возвращает статус ("ok", "degraded", "fail") и сообщение.
	CheckReady() (status, message string)
}

// HealthHandler — обработчик health endpoints.
type HealthHandler struct {
	checkers    map[string]ReadinessChecker
	promHandler http.Handler
}

// NewHealthHandler создаёт обработчик. checkers — зависимости по имени
// (metadata, redis, jwks); пустая карта — readiness всегда ok.
func NewHealthHandler(checkers map[string]ReadinessChecker) *HealthHandler {
	return &HealthHandler{
		checkers:    checkers,
		promHandler: promhttp.Handler(),
	}
}

const serviceName = "files-manager"

// HealthLive — 200, пока процесс жив.
func (h *HealthHandler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, generated.HealthLiveResponse{
		Status:    generated.HealthLiveResponseStatusOk,
		Timestamp: time.Now().UTC(),
		Version:   config.Version,
		Service:   serviceName,
	})
}

// HealthReady — 200 (ok/degraded) или 503 (fail).
func (h *HealthHandler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	resp := generated.HealthReadyResponse{
		Timestamp: time.Now().UTC(),
		Version:   config.Version,
		Service:   serviceName,
		Checks:    make(map[string]generated.CheckResult, len(h.checkers)),
	}

	statuses := make([]string, 0, len(h.checkers))
	for name, checker := range h.checkers {
		status, msg := checker.CheckReady()
		result := generated.CheckResult{Status: generated.CheckResultStatus(status)}
		if msg != "" {
			result.Message = &msg
		}
		resp.Checks[name] = result
		statuses = append(statuses, status)
	}
	resp.Status = generated.HealthReadyResponseStatus(overallStatus(statuses...))

	w.Header().Set("Content-Type", "application/json")
	if resp.Status == generated.HealthReadyResponseStatusFail {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// GetMetrics — Prometheus метрики.
func (h *HealthHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.promHandler.ServeHTTP(w, r)
}

const statusFail = "fail"

// overallStatus: хотя бы один fail — fail, хотя бы один degraded — degraded.
func overallStatus(statuses ...string) string {
	hasDegraded := false
	for _, s := range statuses {
		if s == statusFail {
			return statusFail
		}
		if s == "degraded" {
			hasDegraded = true
		}
	}
	if hasDegraded {
		return "degraded"
	}
	return "ok"
}
