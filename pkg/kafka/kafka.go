// Package kafka wraps sarama's sync producer and consumer group.
package kafka

import (
	"errors"
	"time"

	"github.com/IBM/sarama"
)

const (
	producerTimeout  = 10 * time.Second
	producerRetryMax = 5
)

var protocolVersion = sarama.V2_6_0_0

var (
	ErrNoBrokers = errors.New("kafka: at least one broker is required")
	ErrNoTopic   = errors.New("kafka: topic is required")
	ErrNoGroup   = errors.New("kafka: group id is required")
)

// Config addresses the topic a producer writes to.
type Config struct {
	Brokers []string
	Topic   string
}

// ConsumerConfig addresses a consumer group.
type ConsumerConfig struct {
	Brokers []string
	GroupID string
}

func validateProducerConfig(cfg Config) error {
	if len(cfg.Brokers) == 0 {
		return ErrNoBrokers
	}
	if cfg.Topic == "" {
		return ErrNoTopic
	}
	return nil
}

func validateConsumerConfig(cfg ConsumerConfig) error {
	if len(cfg.Brokers) == 0 {
		return ErrNoBrokers
	}
	if cfg.GroupID == "" {
		return ErrNoGroup
	}
	return nil
}

func newProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = protocolVersion
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = producerRetryMax
	config.Producer.Timeout = producerTimeout
	return config
}

func newConsumerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = protocolVersion
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	// A new group must not skip requests queued before it joined.
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Consumer.Return.Errors = true
	return config
}
