package queue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// amqpChannel — подмножество *amqp.Channel, используемое publisher'ом.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// amqpSession — открытые соединение и канал с объявленной очередью.
// closed получает уведомление (или закрывается), когда брокер закрыл канал.
type amqpSession struct {
	ch     amqpChannel
	conn   io.Closer
	closed <-chan *amqp.Error
}

// amqpDialFunc открывает новую сессию.
type amqpDialFunc func() (*amqpSession, error)

// errPublisherClosed — публикация после Close.
var errPublisherClosed = errors.New("publisher RabbitMQ закрыт")

// AMQPPublisher — публикация заданий в durable-очередь RabbitMQ
// через default exchange.
// После закрытия канала брокером (рестарт, сетевой сбой) следующая
// публикация открывает новую сессию.
type AMQPPublisher struct {
	dial  amqpDialFunc
	queue string

	// mu сериализует публикацию: канал AMQP не предназначен
	// для одновременной записи из нескольких горутин
	mu   sync.Mutex
	sess *amqpSession
	shut bool
}

// NewAMQPPublisher подключается к RabbitMQ и объявляет durable-очередь.
func NewAMQPPublisher(url, queueName string) (*AMQPPublisher, error) {
	return newAMQPPublisherWithDialer(func() (*amqpSession, error) {
		return dialAMQP(url, queueName)
	}, queueName)
}

// newAMQPPublisherWithDialer создаёт publisher и открывает первую сессию.
func newAMQPPublisherWithDialer(dial amqpDialFunc, queueName string) (*AMQPPublisher, error) {
	sess, err := dial()
	if err != nil {
		return nil, err
	}
	return &AMQPPublisher{dial: dial, queue: queueName, sess: sess}, nil
}

func dialAMQP(url, queueName string) (*amqpSession, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ошибка открытия канала RabbitMQ: %w", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("ошибка объявления очереди %q: %w", queueName, err)
	}

	closed := ch.NotifyClose(make(chan *amqp.Error, 1))
	return &amqpSession{ch: ch, conn: conn, closed: closed}, nil
}

// alive сообщает, открыта ли текущая сессия. Вызывается под mu.
func (p *AMQPPublisher) alive() bool {
	if p.sess == nil {
		return false
	}
	select {
	case <-p.sess.closed:
		return false
	default:
		return true
	}
}

// drop закрывает текущую сессию, ошибки закрытия игнорируются. Вызывается под mu.
func (p *AMQPPublisher) drop() {
	if p.sess == nil {
		return
	}
	_ = p.sess.ch.Close()
	if p.sess.conn != nil {
		_ = p.sess.conn.Close()
	}
	p.sess = nil
}

// Publish отправляет persistent JSON-сообщение.
func (p *AMQPPublisher) Publish(ctx context.Context, job Job) error {
	data, err := job.encode()
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.shut {
		return errPublisherClosed
	}
	if !p.alive() {
		p.drop()
		sess, err := p.dial()
		if err != nil {
			return fmt.Errorf("переподключение к RabbitMQ: %w", err)
		}
		p.sess = sess
	}

	err = p.sess.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    job.FileID,
		Timestamp:    time.Now().UTC(),
		Body:         data,
	})
	if err != nil {
		// Канал закрыт между проверкой и публикацией: следующая попытка переподключится
		if errors.Is(err, amqp.ErrClosed) {
			p.drop()
		}
		return fmt.Errorf("ошибка публикации в очередь %q: %w", p.queue, err)
	}
	return nil
}

// Close закрывает канал и соединение.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.shut = true
	if p.sess == nil {
		return nil
	}
	err := p.sess.ch.Close()
	if p.sess.conn != nil {
		if cerr := p.sess.conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	p.sess = nil
	return err
}
