package events

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/dinehub/resto-api/models"
)

// Producer publishes order lifecycle events to Kafka for downstream
// consumers (reporting, kitchen displays). A nil Producer is a no-op, so the
// service runs without a broker when KAFKA_BROKERS is unset.
type Producer struct {
	writer *kafka.Writer
}

// NewProducerFromEnv builds a producer from KAFKA_BROKERS / KAFKA_TOPIC,
// returning nil when no brokers are configured.
func NewProducerFromEnv() *Producer {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return nil
	}

	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = "resto.order-events"
	}

	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(strings.Split(brokers, ",")...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

type orderEvent struct {
	Event     string             `json:"event"`
	OrderID   uint               `json:"order_id"`
	Status    models.OrderStatus `json:"status"`
	Total     float64            `json:"total"`
	Timestamp time.Time          `json:"timestamp"`
}

// PublishOrderEvent sends one event keyed by order id. Delivery failures are
// returned to the caller for logging; they never fail the request itself.
func (p *Producer) PublishOrderEvent(ctx context.Context, event string, order models.Order) error {
	if p == nil || p.writer == nil {
		return nil
	}

	data, err := json.Marshal(orderEvent{
		Event:     event,
		OrderID:   order.ID,
		Status:    order.Status,
		Total:     order.Total,
		Timestamp: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(fmt.Sprintf("order-%d", order.ID)),
		Value: data,
	}); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
