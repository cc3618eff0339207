package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// messageWriter часть kafka.Writer, которую использует издатель
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher публикует события бронирований в топик Kafka.
// Ключ сообщения: unix слота, чтобы события одного слота попадали в одну партицию.
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
	logger  Logger
}

// NewKafkaPublisher создает издателя для brokers/topic
func NewKafkaPublisher(brokers []string, topic string, logger Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchTimeout: 10 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger:  kafka.LoggerFunc(logger.Error),
	}

	return &KafkaPublisher{writer: writer, timeout: 5 * time.Second, logger: logger}
}

// Publish отправляет события синхронно
func (p *KafkaPublisher) Publish(ctx context.Context, events ...domain.BookingEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		value, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMarshal, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(strconv.FormatInt(event.Unix, 10)),
			Value: value,
			Headers: []kafka.Header{
				{Key: "type", Value: []byte(event.Type)},
			},
		})
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	p.logger.Info("Events: published %d event(s), first=%s unix=%d", len(events), events[0].Type, events[0].Unix)
	return nil
}

// Close сбрасывает буфер и закрывает соединения
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher используется, когда Kafka выключена
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ...domain.BookingEvent) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}
