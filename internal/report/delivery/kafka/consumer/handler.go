package consumer

import (
	"github.com/IBM/sarama"
)

type generateRequestHandler struct {
	consumer *Consumer
}

func (h *generateRequestHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *generateRequestHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim marks every message. A message that fails is logged and
// dropped: replaying it would run GenerateInternal again and create a
// second job.
func (h *generateRequestHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		if err := h.consumer.handleGenerateRequestMessage(session.Context(), msg); err != nil {
			h.consumer.l.Errorf(session.Context(), "report.delivery.kafka.consumer.ConsumeClaim: Dropping message at partition %d offset %d: %v",
				msg.Partition, msg.Offset, err)
		}
		session.MarkMessage(msg, "")
	}
	return nil
}
