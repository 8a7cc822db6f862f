package kafka

import (
	"context"

	"github.com/IBM/sarama"
)

// IConsumer is one consumer group membership.
type IConsumer interface {
	// ConsumeWithContext joins the group for topics and blocks until the
	// session ends, for example on a rebalance.
	ConsumeWithContext(ctx context.Context, topics []string, handler sarama.ConsumerGroupHandler) error
	Errors() <-chan error
	Close() error
}

type implConsumer struct {
	group sarama.ConsumerGroup
}

func NewConsumer(cfg ConsumerConfig) (IConsumer, error) {
	if err := validateConsumerConfig(cfg); err != nil {
		return nil, err
	}

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, newConsumerConfig())
	if err != nil {
		return nil, err
	}
	return &implConsumer{group: group}, nil
}

func (c *implConsumer) ConsumeWithContext(ctx context.Context, topics []string, handler sarama.ConsumerGroupHandler) error {
	return c.group.Consume(ctx, topics, handler)
}

func (c *implConsumer) Errors() <-chan error {
	return c.group.Errors()
}

func (c *implConsumer) Close() error {
	return c.group.Close()
}
