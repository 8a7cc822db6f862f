package producer

import (
	"context"
	"encoding/json"
	"fmt"

	"report-srv/internal/report"
	kafkaDelivery "report-srv/internal/report/delivery/kafka"
	pkgKafka "report-srv/pkg/kafka"
)

// PublishJobFinished publishes a job finished event keyed by report id.
func (p *implProducer) PublishJobFinished(ctx context.Context, evt report.JobFinishedEvent) error {
	msg := kafkaDelivery.JobFinishedMessage{
		EventType:    kafkaDelivery.EventTypeJobFinished,
		ReportID:     evt.ReportID,
		ReportTypeID: evt.ReportTypeID,
		Status:       string(evt.Status),
		RequestedBy:  evt.RequestedBy,
		FileID:       evt.FileID,
		Checksum:     evt.Checksum,
		ErrorMessage: evt.ErrorMessage,
		FinishedAt:   evt.FinishedAt,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal job finished event: %w", err)
	}

	err = p.producer.Publish(pkgKafka.Message{
		Key:     []byte(evt.ReportID),
		Value:   body,
		Headers: map[string]string{kafkaDelivery.HeaderEventType: msg.EventType},
	})
	if err != nil {
		return fmt.Errorf("failed to publish job finished event: %w", err)
	}

	p.l.Infof(ctx, "Published job finished event for report %s: %s", evt.ReportID, evt.Status)
	return nil
}
