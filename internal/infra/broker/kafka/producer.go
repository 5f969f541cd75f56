package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"stayhub/internal/domain/shared/events"
)

// Producer publishes committed domain events to Kafka. One topic per
// aggregate, derived from the event name prefix.
type Producer struct {
	producer    sarama.SyncProducer
	topicPrefix string
	source      string
}

func NewProducer(brokers []string, topicPrefix string, cfg *sarama.Config) (*Producer, error) {
	if cfg == nil {
		cfg = sarama.NewConfig()
	}
	cfg.Version = sarama.V2_5_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Return.Successes = true
	cfg.Net.MaxOpenRequests = 1
	p, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &Producer{producer: p, topicPrefix: topicPrefix, source: "app://stayhub"}, nil
}

func (p *Producer) Publish(ctx context.Context, batch []events.DomainEvent) error {
	for _, event := range batch {
		payload, err := p.envelope(event)
		if err != nil {
			return err
		}
		msg := &sarama.ProducerMessage{
			Topic: p.topicFor(event.EventName()),
			Key:   sarama.StringEncoder(event.AggregateID()),
			Value: sarama.ByteEncoder(payload),
			Headers: []sarama.RecordHeader{
				{Key: []byte("content-type"), Value: []byte("application/cloudevents+json")},
			},
		}
		if _, _, err := p.producer.SendMessage(msg); err != nil {
			return err
		}
	}
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}

func (p *Producer) envelope(event events.DomainEvent) ([]byte, error) {
	return json.Marshal(map[string]any{
		"specversion":     "1.0",
		"id":              uuid.NewString(),
		"type":            event.EventName() + ".v1",
		"source":          p.source,
		"time":            event.OccurredAt().UTC().Format(time.RFC3339Nano),
		"datacontenttype": "application/json",
		"data":            event,
	})
}

func (p *Producer) topicFor(name string) string {
	base := name
	if idx := strings.IndexRune(name, '.'); idx > 0 {
		base = name[:idx]
	}
	topic := base + ".events.v1"
	if p.topicPrefix != "" {
		topic = p.topicPrefix + topic
	}
	return topic
}
