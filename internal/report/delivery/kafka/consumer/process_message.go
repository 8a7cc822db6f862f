package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"report-srv/internal/report"
	kafkaDelivery "report-srv/internal/report/delivery/kafka"
	"report-srv/pkg/log"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

func (c *Consumer) handleGenerateRequestMessage(ctx context.Context, msg *sarama.ConsumerMessage) error {
	ctx = log.SetRequestIDToContext(ctx, uuid.NewString())
	c.l.Infof(ctx, "report.delivery.kafka.consumer.handleGenerateRequestMessage: Processing message from partition %d, offset %d",
		msg.Partition, msg.Offset)
	return c.handleGenerateRequest(ctx, msg.Value)
}

// handleGenerateRequest runs one queued generation. Malformed messages and
// generations that end FAILED are not retried. Only a failed bookkeeping write
// is returned as an error.
func (c *Consumer) handleGenerateRequest(ctx context.Context, value []byte) error {
	var message kafkaDelivery.GenerateRequestMessage
	if err := json.Unmarshal(value, &message); err != nil {
		c.l.Warnf(ctx, "report.delivery.kafka.consumer.handleGenerateRequest: Invalid message format (skipping): %v", err)
		return nil
	}
	if strings.TrimSpace(message.ReportTypeID) == "" {
		c.l.Warnf(ctx, "report.delivery.kafka.consumer.handleGenerateRequest: Missing report_type_id (skipping)")
		return nil
	}

	output, genErr := c.uc.GenerateInternal(ctx, toGenerateInput(message))
	if genErr != nil {
		c.l.Warnf(ctx, "report.delivery.kafka.consumer.handleGenerateRequest: generation of %s failed: %v", message.ReportTypeID, genErr)
	} else {
		c.l.Infof(ctx, "report.delivery.kafka.consumer.handleGenerateRequest: report %s is %s", output.ReportID, output.Status)
	}

	if message.ScheduleID == "" {
		return nil
	}

	runAt := message.RequestedAt
	if runAt.IsZero() {
		runAt = c.now()
	}
	err := c.uc.RecordScheduleRun(ctx, report.RecordScheduleRunInput{
		ScheduleID: message.ScheduleID,
		JobID:      output.ReportID,
		RunAt:      runAt,
		Err:        genErr,
	})
	if errors.Is(err, report.ErrScheduleNotFound) {
		c.l.Warnf(ctx, "report.delivery.kafka.consumer.handleGenerateRequest: schedule %s not found (skipping)", message.ScheduleID)
		return nil
	}
	return err
}
