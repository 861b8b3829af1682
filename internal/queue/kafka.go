package queue

import (
	"context"
	"fmt"
	"strings"

	"github.com/segmentio/kafka-go"
)

// messageWriter — подмножество *kafka.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher — публикация заданий в топик Kafka.
// Ключ сообщения — идентификатор файла.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

// NewKafkaPublisher создаёт writer для указанных брокеров.
// Имя очереди приводится к допустимому имени топика.
func NewKafkaPublisher(brokers []string, queueName string) *KafkaPublisher {
	topic := TopicName(queueName)
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		topic: topic,
	}
}

// Publish записывает сообщение в топик.
func (p *KafkaPublisher) Publish(ctx context.Context, job Job) error {
	data, err := job.encode()
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(job.FileID),
		Value: data,
	}); err != nil {
		return fmt.Errorf("ошибка записи в топик %q: %w", p.topic, err)
	}
	return nil
}

// Close сбрасывает буферы и закрывает writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// TopicName заменяет символы, недопустимые в имени топика Kafka
// (разрешены [a-zA-Z0-9._-]), на подчёркивание.
func TopicName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			return r
		}
		return '_'
	}, name)
}
