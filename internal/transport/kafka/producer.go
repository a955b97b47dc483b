package kafka

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/IBM/sarama"

	"transportmarket/internal/service/orders"
)

// Producer publishes record-creation events to the topic the worker consumes.
// It satisfies the event sink contract of the services, so the HTTP binary
// can swap it in for the in-process sink when Kafka is configured.
type Producer struct {
	sp    sarama.SyncProducer
	topic string
}

// NewProducer creates a new Kafka producer. Returns nil when Kafka is not
// configured, which keeps event processing in-process.
func NewProducer(brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true

	sp, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}

	return &Producer{sp: sp, topic: topic}, nil
}

// Emit publishes the event keyed by order ID. Delivery failures are logged
// and never surfaced; the pipeline stays best-effort for the request that
// triggered it.
func (p *Producer) Emit(_ context.Context, e orders.Event) {
	if p == nil {
		return
	}

	value, err := json.Marshal(FromDomain(e))
	if err != nil {
		log.Printf("kafka: encode event failed: type=%s order_id=%s err=%v", e.Type, e.OrderID, err)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(e.OrderID),
		Value: sarama.ByteEncoder(value),
	}
	if _, _, err := p.sp.SendMessage(msg); err != nil {
		log.Printf("kafka: publish failed: type=%s order_id=%s err=%v", e.Type, e.OrderID, err)
	}
}

func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.sp.Close()
}

var _ orders.EventSink = (*Producer)(nil)
