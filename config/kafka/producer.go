// Package kafka owns the process-wide producer that publishes report events.
package kafka

import (
	"fmt"
	"strings"
	"sync"

	"report-srv/config"
	"report-srv/pkg/kafka"
)

var (
	mu       sync.Mutex
	producer kafka.IProducer
)

// ConnectProducer returns the shared producer for cfg.Topic, creating it on
// first use. A failed attempt is not cached.
func ConnectProducer(cfg config.KafkaConfig) (kafka.IProducer, error) {
	mu.Lock()
	defer mu.Unlock()

	if producer != nil {
		return producer, nil
	}

	p, err := kafka.NewProducer(producerConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("config.kafka.ConnectProducer [%s] topic=%s: %w",
			strings.Join(cfg.Brokers, ","), cfg.Topic, err)
	}

	producer = p
	return producer, nil
}

// DisconnectProducer flushes and closes the shared producer.
func DisconnectProducer() error {
	mu.Lock()
	defer mu.Unlock()

	if producer == nil {
		return nil
	}
	err := producer.Close()
	producer = nil
	return err
}

func producerConfig(cfg config.KafkaConfig) kafka.Config {
	return kafka.Config{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
	}
}
