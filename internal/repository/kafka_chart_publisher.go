package repository

import (
	"context"
	"fmt"
	"time"

	"TrueArk/internal/domain/models"
	pkgkafka "TrueArk/pkg/kafka"
	applogger "TrueArk/pkg/logger"
)

// StoredChartEvent is the wire payload published after a chart is persisted.
// Positions stay in the store; the event only carries identity and linkage so
// consumers decide whether to fetch the full chart.
type StoredChartEvent struct {
	Event       string `json:"event"`
	ID          string `json:"id"`
	DatetimeUTC string `json:"datetime_utc"`
	EntityID    string `json:"entity_id,omitempty"`
	EntityType  string `json:"entity_type,omitempty"`
	Mode        string `json:"ephemeris_mode"`
	CreatedAt   string `json:"created_at"`
}

// KafkaChartPublisher implements ChartPublisher on a Kafka topic. Messages are
// keyed by chart id so per-chart ordering holds under the hash balancer.
type KafkaChartPublisher struct {
	producer *pkgkafka.Producer
	topic    string
	l        *applogger.Logger
}

func NewKafkaChartPublisher(producer *pkgkafka.Producer, topic string, l *applogger.Logger) (*KafkaChartPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("kafka producer is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}
	return &KafkaChartPublisher{producer: producer, topic: topic, l: l}, nil
}

func (p *KafkaChartPublisher) PublishStored(ctx context.Context, c *models.StoredChart) error {
	event := StoredChartEvent{
		Event:       "chart.stored",
		ID:          c.ID,
		DatetimeUTC: c.DatetimeUTC,
		EntityID:    c.EntityID,
		EntityType:  c.EntityType,
		Mode:        string(c.Mode),
		CreatedAt:   c.CreatedAt.UTC().Format(time.RFC3339Nano),
	}

	if err := p.producer.Publish(ctx, p.topic, []byte(c.ID), event); err != nil {
		if p.l != nil {
			p.l.Error("kafka chart event publish error",
				applogger.String("topic", p.topic),
				applogger.String("id", c.ID),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("publish chart event: %w", err)
	}
	return nil
}

func (p *KafkaChartPublisher) Close() error {
	return p.producer.Close()
}
