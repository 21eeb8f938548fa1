package repository

import (
	"context"
	"fmt"

	"FinSight/internal/domain/models"
	pkgkafka "FinSight/pkg/kafka"
)

// KafkaPublisher emits recommendation events keyed by symbol, so consumers
// see per-symbol ordering.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) PublishRecommendation(ctx context.Context, event *models.RecommendationEvent) error {
	if event == nil {
		return fmt.Errorf("nil event")
	}
	return p.producer.Publish(ctx, p.topic, []byte(event.Symbol), event)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// LogSink adapts the producer to the log collector's publisher contract;
// aggregated error reports land on their own topic.
type LogSink struct {
	producer *pkgkafka.Producer
}

func NewLogSink(producer *pkgkafka.Producer) *LogSink {
	return &LogSink{producer: producer}
}

func (s *LogSink) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return s.producer.Publish(ctx, topic, nil, payload)
}
