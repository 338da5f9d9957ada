package repository

import (
	"context"

	"TrendScan/internal/domain/models"
)

// messagePublisher is satisfied by *kafka.Producer.
type messagePublisher interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
}

// KafkaCycleSink publishes each cycle record as JSON, keyed by cycle id.
type KafkaCycleSink struct {
	producer messagePublisher
	topic    string
}

func NewKafkaCycleSink(producer messagePublisher, topic string) *KafkaCycleSink {
	return &KafkaCycleSink{producer: producer, topic: topic}
}

func (s *KafkaCycleSink) Name() string { return "kafka" }

func (s *KafkaCycleSink) Publish(ctx context.Context, rec *models.CycleRecord) error {
	return s.producer.Publish(ctx, s.topic, []byte(rec.ID), rec)
}
