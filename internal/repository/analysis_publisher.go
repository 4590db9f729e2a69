package repository

import (
	"context"

	"MarketLens/internal/domain/models"
	domrepo "MarketLens/internal/domain/repository"
	pkgkafka "MarketLens/pkg/kafka"
)

// KafkaAnalysisPublisher pushes finished analyses to a Kafka topic for
// downstream prompt and dashboard consumers.
type KafkaAnalysisPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

var _ domrepo.Publisher = (*KafkaAnalysisPublisher)(nil)

func NewKafkaAnalysisPublisher(producer *pkgkafka.Producer, topic string) *KafkaAnalysisPublisher {
	return &KafkaAnalysisPublisher{producer: producer, topic: topic}
}

func (p *KafkaAnalysisPublisher) Publish(ctx context.Context, a *models.CombinedAnalysis) error {
	return p.producer.Publish(ctx, p.topic, []byte(a.Ticker), a)
}

func (p *KafkaAnalysisPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

var _ domrepo.Publisher = NoopPublisher{}

func (NoopPublisher) Publish(ctx context.Context, a *models.CombinedAnalysis) error { return nil }
func (NoopPublisher) Close() error                                                  { return nil }
