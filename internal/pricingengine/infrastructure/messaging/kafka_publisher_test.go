package messaging

import (
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKafkaEventPublisherDefaults(t *testing.T) {
	p := NewKafkaEventPublisher(KafkaConfig{
		Brokers: []string{"localhost:9092"},
		Topic:   "pricing.quotes",
	})
	defer p.Close()

	require.NotNil(t, p.writer)
	assert.Equal(t, "pricing.quotes", p.writer.Topic)
	assert.Equal(t, 3, p.writer.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, p.writer.WriteBackoffMin)
	assert.Equal(t, kafka.RequireAll, p.writer.RequiredAcks)
}
