package producer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"report-srv/internal/model"
	"report-srv/internal/report"
	kafkaDelivery "report-srv/internal/report/delivery/kafka"
	pkgKafka "report-srv/pkg/kafka"
	"report-srv/pkg/log"

	"github.com/stretchr/testify/require"
)

type fakeKafkaProducer struct {
	sent []pkgKafka.Message
	err  error
}

func (f *fakeKafkaProducer) Publish(msg pkgKafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeKafkaProducer) Close() error { return nil }

func TestPublishJobFinished(t *testing.T) {
	kp := &fakeKafkaProducer{}
	p := New(log.NewNop(), kp)

	finished := time.Date(2025, time.July, 2, 9, 30, 0, 0, time.UTC)
	err := p.PublishJobFinished(context.Background(), report.JobFinishedEvent{
		ReportID:     "job-1",
		ReportTypeID: "PERSONAL_SUMMARY_PDF",
		Status:       model.JobStatusReady,
		RequestedBy:  "2",
		FileID:       "file-1",
		Checksum:     "abc",
		FinishedAt:   finished,
	})
	require.NoError(t, err)
	require.Len(t, kp.sent, 1)
	require.Equal(t, "job-1", string(kp.sent[0].Key))
	require.Equal(t, kafkaDelivery.EventTypeJobFinished, kp.sent[0].Headers[kafkaDelivery.HeaderEventType])

	var msg kafkaDelivery.JobFinishedMessage
	require.NoError(t, json.Unmarshal(kp.sent[0].Value, &msg))
	require.Equal(t, kafkaDelivery.EventTypeJobFinished, msg.EventType)
	require.Equal(t, "READY", msg.Status)
	require.Equal(t, "file-1", msg.FileID)
	require.Empty(t, msg.ErrorMessage)
	require.True(t, finished.Equal(msg.FinishedAt))
}

func TestPublishJobFinished_Error(t *testing.T) {
	boom := errors.New("broker down")
	p := New(log.NewNop(), &fakeKafkaProducer{err: boom})

	err := p.PublishJobFinished(context.Background(), report.JobFinishedEvent{ReportID: "job-1", Status: model.JobStatusFailed})
	require.ErrorIs(t, err, boom)
}
