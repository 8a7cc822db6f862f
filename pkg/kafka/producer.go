package kafka

import (
	"fmt"

	"github.com/IBM/sarama"
)

// Message is one record for the producer's topic.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// IProducer is safe for concurrent use.
type IProducer interface {
	Publish(msg Message) error
	Close() error
}

type implProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducer returns a synchronous producer bound to cfg.Topic.
func NewProducer(cfg Config) (IProducer, error) {
	if err := validateProducerConfig(cfg); err != nil {
		return nil, err
	}

	producer, err := sarama.NewSyncProducer(cfg.Brokers, newProducerConfig())
	if err != nil {
		return nil, err
	}
	return &implProducer{producer: producer, topic: cfg.Topic}, nil
}

// Publish blocks until every in-sync replica has the record.
func (p *implProducer) Publish(msg Message) error {
	record := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.ByteEncoder(msg.Key),
		Value: sarama.ByteEncoder(msg.Value),
	}
	for k, v := range msg.Headers {
		record.Headers = append(record.Headers, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	if _, _, err := p.producer.SendMessage(record); err != nil {
		return fmt.Errorf("kafka: publish to %s: %w", p.topic, err)
	}
	return nil
}

func (p *implProducer) Close() error {
	return p.producer.Close()
}
