package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"

	"github.com/zapshift/parcel-service/internal/domain"
)

// Producer publishes parcel status events to Kafka.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducer creates a new Producer. Returns nil when brokers are not
// configured so callers can fall back to a nop publisher.
func NewProducer(brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 || topic == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Timeout = 5 * time.Second

	p, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka: new producer: %w", err)
	}
	return &Producer{producer: p, topic: topic}, nil
}

// Publish sends one event, keyed by parcel id so per-parcel ordering holds.
func (p *Producer) Publish(_ context.Context, ev domain.ParcelEvent) error {
	payload, err := json.Marshal(FromDomain(ev))
	if err != nil {
		return fmt.Errorf("kafka: encode event: %w", err)
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(ev.ParcelID, 10)),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("kafka: send event: %w", err)
	}
	return nil
}

// Close shuts the underlying producer down.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
