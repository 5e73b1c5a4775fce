package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/profitpulse/shop-sync-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type SyncEventPublisher struct {
	writer *kafka.Writer
}

func NewSyncEventPublisher(brokers []string, topic string) *SyncEventPublisher {
	return &SyncEventPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *SyncEventPublisher) Publish(event domain.SyncEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.StoreID),
		Value: msg,
		Time:  time.Now(),
	})
}

func (p *SyncEventPublisher) Close() error {
	return p.writer.Close()
}
