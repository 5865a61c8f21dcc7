package repository

import (
	"context"

	"github.com/gman-top/Tradepilotx/internal/domain/models"
	domrepo "github.com/gman-top/Tradepilotx/internal/domain/repository"
	pkgkafka "github.com/gman-top/Tradepilotx/pkg/kafka"
)

// KafkaScorePublisher emits score snapshots to a Kafka topic, keyed by symbol
// so consumers see per-asset ordering.
type KafkaScorePublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaScorePublisher(producer *pkgkafka.Producer, topic string) *KafkaScorePublisher {
	return &KafkaScorePublisher{producer: producer, topic: topic}
}

func (p *KafkaScorePublisher) Publish(ctx context.Context, snap *models.ScoreSnapshot) error {
	return p.producer.Publish(ctx, p.topic, []byte(snap.Symbol), snap)
}

func (p *KafkaScorePublisher) PublishBatch(ctx context.Context, snapshots []*models.ScoreSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(snapshots))
	for i, snap := range snapshots {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(snap.Symbol),
			Value: snap,
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaScorePublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

var _ domrepo.ScorePublisher = (*KafkaScorePublisher)(nil)
