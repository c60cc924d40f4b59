package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Delivery is a dispatched notification handed to a sink. Payload is the
// serialized tagged form, discriminator included.
type Delivery struct {
	ID          string
	Type        string
	Destination string
	Payload     map[string]any
}

// Sink receives dispatched notifications.
type Sink interface {
	Deliver(ctx context.Context, d Delivery) error
	Close() error
}

// MemorySink collects deliveries in memory. Used in development and tests.
type MemorySink struct {
	mu         sync.Mutex
	deliveries []Delivery
}

// NewMemorySink creates an empty memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Deliver(ctx context.Context, d Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliveries = append(s.deliveries, d)
	return nil
}

// Deliveries returns a snapshot of everything delivered so far.
func (s *MemorySink) Deliveries() []Delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Delivery, len(s.deliveries))
	copy(out, s.deliveries)
	return out
}

func (s *MemorySink) Close() error { return nil }

// KafkaSink publishes deliveries to a Kafka topic, keyed by notification id
// so retries and reprocessing stay per-notification ordered.
type KafkaSink struct {
	client *kgo.Client
	topic  string
}

// NewKafkaSink connects a producer to the given brokers.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("connect kafka: %w", err)
	}
	return &KafkaSink{client: client, topic: topic}, nil
}

func (s *KafkaSink) Deliver(ctx context.Context, d Delivery) error {
	value, err := json.Marshal(d.Payload)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(d.ID),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "type", Value: []byte(d.Type)},
		},
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

func (s *KafkaSink) Close() error {
	s.client.Close()
	return nil
}
