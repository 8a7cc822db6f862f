package kafka

import (
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	assert.ErrorIs(t, validateProducerConfig(Config{Topic: "t"}), ErrNoBrokers)
	assert.ErrorIs(t, validateProducerConfig(Config{Brokers: []string{"localhost:9092"}}), ErrNoTopic)
	assert.NoError(t, validateProducerConfig(Config{Brokers: []string{"localhost:9092"}, Topic: "t"}))

	assert.ErrorIs(t, validateConsumerConfig(ConsumerConfig{Brokers: []string{"localhost:9092"}}), ErrNoGroup)
	assert.NoError(t, validateConsumerConfig(ConsumerConfig{Brokers: []string{"localhost:9092"}, GroupID: "g"}))
}

func TestConsumerStartsFromOldest(t *testing.T) {
	assert.Equal(t, sarama.OffsetOldest, newConsumerConfig().Consumer.Offsets.Initial)
	assert.True(t, newConsumerConfig().Consumer.Return.Errors)
}

func TestPublish(t *testing.T) {
	sp := mocks.NewSyncProducer(t, newProducerConfig())
	sp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "report.events" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, _ := msg.Key.Encode()
		if string(key) != "job-1" {
			return errors.New("unexpected key " + string(key))
		}
		if len(msg.Headers) != 1 || string(msg.Headers[0].Key) != "event_type" || string(msg.Headers[0].Value) != "report.job.finished" {
			return errors.New("unexpected headers")
		}
		return nil
	})
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := &implProducer{producer: sp, topic: "report.events"}
	require.NoError(t, p.Publish(Message{
		Key:     []byte("job-1"),
		Value:   []byte(`{}`),
		Headers: map[string]string{"event_type": "report.job.finished"},
	}))
	require.ErrorIs(t, p.Publish(Message{Key: []byte("job-2"), Value: []byte(`{}`)}), sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}
