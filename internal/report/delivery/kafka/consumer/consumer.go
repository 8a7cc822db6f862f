package consumer

import (
	"context"
	"fmt"

	pkgKafka "report-srv/pkg/kafka"
)

// ConsumeGenerateRequests joins the consumer group in the background and
// returns once the group is created.
func (c *Consumer) ConsumeGenerateRequests(ctx context.Context) error {
	group, err := pkgKafka.NewConsumer(pkgKafka.ConsumerConfig{
		Brokers: c.brokers,
		GroupID: c.groupID,
	})
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrCreateConsumerGroupFailed, c.groupID, err)
	}
	c.generateGroup = group

	handler := &generateRequestHandler{consumer: c}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if err := group.ConsumeWithContext(ctx, []string{c.topic}, handler); err != nil {
					c.l.Errorf(ctx, "report.delivery.kafka.consumer.ConsumeGenerateRequests: %v", err)
				}
			}
		}
	}()

	go func() {
		for err := range group.Errors() {
			c.l.Errorf(ctx, "report.delivery.kafka.consumer: consumer group error: %v", err)
		}
	}()

	c.l.Infof(ctx, "Consuming %s", c.topic)
	return nil
}
