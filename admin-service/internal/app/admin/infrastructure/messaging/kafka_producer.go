package messaging

import (
	"context"
	"fmt"
	"time"

	"shopadmin/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// KafkaProducer публикует доменные события товаров и заказов
type KafkaProducer struct {
	writer  *kafka.Writer
	topic   string
	service string
}

func NewKafkaProducer(brokers []string, topic, service string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{}, // события одной сущности попадают в одну партицию
		BatchSize:              100,
		BatchTimeout:           50 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	return &KafkaProducer{writer: writer, topic: topic, service: service}
}

func (p *KafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	timer := metrics.NewKafkaProduceTimer(p.service, p.topic)

	message := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		timer.Error()
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	timer.Success()
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
