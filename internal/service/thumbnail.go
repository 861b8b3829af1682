// thumbnail.go — асинхронная постановка заданий генерации миниатюр.
//
// Dispatch кладёт задание в ограниченный буфер и сразу возвращает
// управление. Фоновые воркеры отправляют задания в очередь (queue.Publisher)
// с собственным таймаутом, не связанным с контекстом HTTP-запроса.
// При переполнении буфера задание отбрасывается, ошибки отправки
// логируются и учитываются в метрике; вызывающий их не видит.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/goartstore/files-manager/internal/queue"
)

// Prometheus-метрики заданий миниатюр.
var (
	thumbnailJobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fm_thumbnail_jobs_total",
		Help: "Задания генерации миниатюр по результату: published, failed, dropped.",
	}, []string{"status"})
)

// ThumbnailDispatcher — буферизованная отправка заданий миниатюр.
type ThumbnailDispatcher struct {
	publisher queue.Publisher
	jobs      chan queue.Job
	workers   int
	timeout   time.Duration
	logger    *slog.Logger

	mu      sync.RWMutex // защита jobs от отправки после закрытия
	stopped bool
	wg      sync.WaitGroup
}

// NewThumbnailDispatcher создаёт диспетчер.
// workers — число воркеров, buffer — ёмкость буфера,
// timeout — таймаут отправки одного задания.
func NewThumbnailDispatcher(
	publisher queue.Publisher,
	workers int,
	buffer int,
	timeout time.Duration,
	logger *slog.Logger,
) *ThumbnailDispatcher {
	return &ThumbnailDispatcher{
		publisher: publisher,
		jobs:      make(chan queue.Job, buffer),
		workers:   workers,
		timeout:   timeout,
		logger:    logger.With(slog.String("component", "thumbnail_dispatcher")),
	}
}

// Start запускает воркеры. Вызывается один раз при старте приложения.
func (d *ThumbnailDispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.run()
	}
	d.logger.Info("Диспетчер миниатюр запущен",
		slog.Int("workers", d.workers),
		slog.Int("buffer", cap(d.jobs)),
	)
}

// Dispatch ставит задание в буфер без ожидания.
func (d *ThumbnailDispatcher) Dispatch(ownerID, fileID string) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		thumbnailJobsTotal.WithLabelValues("dropped").Inc()
		d.logger.Warn("Задание миниатюры отброшено: диспетчер остановлен",
			slog.String("file_id", fileID),
		)
		return
	}

	select {
	case d.jobs <- queue.NewJob(ownerID, fileID):
	default:
		thumbnailJobsTotal.WithLabelValues("dropped").Inc()
		d.logger.Warn("Задание миниатюры отброшено: буфер заполнен",
			slog.String("owner_id", ownerID),
			slog.String("file_id", fileID),
		)
	}
}

// Stop прекращает приём заданий и дожидается отправки буфера
// или истечения ctx.
func (d *ThumbnailDispatcher) Stop(ctx context.Context) {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		close(d.jobs)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("Диспетчер миниатюр остановлен")
	case <-ctx.Done():
		d.logger.Warn("Диспетчер миниатюр остановлен до отправки всех заданий",
			slog.Int("pending", len(d.jobs)),
		)
	}
}

// run — цикл воркера.
func (d *ThumbnailDispatcher) run() {
	defer d.wg.Done()
	for job := range d.jobs {
		d.publish(job)
	}
}

// publish отправляет одно задание с таймаутом.
func (d *ThumbnailDispatcher) publish(job queue.Job) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.publisher.Publish(ctx, job); err != nil {
		thumbnailJobsTotal.WithLabelValues("failed").Inc()
		d.logger.Error("Ошибка отправки задания миниатюры",
			slog.String("owner_id", job.UserID),
			slog.String("file_id", job.FileID),
			slog.String("error", err.Error()),
		)
		return
	}
	thumbnailJobsTotal.WithLabelValues("published").Inc()
	d.logger.Debug("Задание миниатюры отправлено",
		slog.String("file_id", job.FileID),
	)
}
