package consumer

import (
	"fmt"
	"time"

	"report-srv/internal/report"
	kafkaDelivery "report-srv/internal/report/delivery/kafka"
	pkgKafka "report-srv/pkg/kafka"
	"report-srv/pkg/log"
)

// Config holds the configuration for report consumer
type Config struct {
	Logger  log.Logger
	Brokers []string
	// Topic and GroupID default to the constants in the kafka delivery package.
	Topic   string
	GroupID string
	UseCase report.UseCase
}

// Consumer manages the Kafka consumer group for queue-triggered generations
type Consumer struct {
	l       log.Logger
	brokers []string
	topic   string
	groupID string
	uc      report.UseCase
	now     func() time.Time

	generateGroup pkgKafka.IConsumer
}

// New creates a new report consumer
func New(cfg Config) (*Consumer, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg.UseCase == nil {
		return nil, fmt.Errorf("usecase is required")
	}
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	topic := cfg.Topic
	if topic == "" {
		topic = kafkaDelivery.TopicGenerateRequests
	}
	groupID := cfg.GroupID
	if groupID == "" {
		groupID = kafkaDelivery.GroupIDGenerateRequests
	}

	return &Consumer{
		l:       cfg.Logger,
		brokers: cfg.Brokers,
		topic:   topic,
		groupID: groupID,
		uc:      cfg.UseCase,
		now:     time.Now,
	}, nil
}

// Close closes the consumer group
func (c *Consumer) Close() error {
	if c.generateGroup != nil {
		if err := c.generateGroup.Close(); err != nil {
			return fmt.Errorf("failed to close generate requests group: %w", err)
		}
	}
	return nil
}
