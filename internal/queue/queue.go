// Пакет queue — публикация заданий генерации миниатюр во внешнюю очередь.
// Бэкенды: Redis list, RabbitMQ, Kafka и no-op (только лог).
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Job — задание генерации миниатюры для загруженного изображения.
type Job struct {
	// UserID — владелец файла
	UserID string `json:"userId"`
	// FileID — идентификатор файла
	FileID string `json:"fileId"`
	// Name — человекочитаемое имя задания
	Name string `json:"name"`
}

// NewJob формирует задание с именем "Image thumbnail [<userId>-<fileId>]".
func NewJob(userID, fileID string) Job {
	return Job{
		UserID: userID,
		FileID: fileID,
		Name:   fmt.Sprintf("Image thumbnail [%s-%s]", userID, fileID),
	}
}

// encode сериализует задание в JSON.
func (j Job) encode() ([]byte, error) {
	data, err := json.Marshal(j)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации задания: %w", err)
	}
	return data, nil
}

// Publisher — отправка заданий в очередь.
type Publisher interface {
	// Publish отправляет задание. Ошибка означает, что задание не принято очередью.
	Publish(ctx context.Context, job Job) error
	// Close освобождает соединения.
	Close() error
}

// LogPublisher — бэкенд "none": задания только логируются.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher создаёт no-op publisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With(slog.String("component", "queue_none"))}
}

// Publish логирует задание и отбрасывает его.
func (p *LogPublisher) Publish(_ context.Context, job Job) error {
	p.logger.Info("Задание миниатюры отброшено (очередь отключена)",
		slog.String("user_id", job.UserID),
		slog.String("file_id", job.FileID),
	)
	return nil
}

// Close ничего не делает.
func (p *LogPublisher) Close() error { return nil }
