// Package messaging 提供基于 Kafka 的领域事件发布实现
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/wyfcoding/pkg/logging"
)

// KafkaConfig Kafka 配置
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	MaxRetries   int
	RetryBackoff int // 毫秒
}

// KafkaEventPublisher Kafka 事件发布器
// 实现 domain.EventPublisher；发布失败由调用方决定如何处理，定价请求不受影响
type KafkaEventPublisher struct {
	writer *kafka.Writer
	topic  string
}

// NewKafkaEventPublisher 创建 Kafka 事件发布器
func NewKafkaEventPublisher(cfg KafkaConfig) *KafkaEventPublisher {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 100
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		AllowAutoTopicCreation: true,
		Compression:            kafka.Gzip,
		RequiredAcks:           kafka.RequireAll, // 等待所有副本确认
		MaxAttempts:            cfg.MaxRetries,
		WriteBackoffMin:        time.Duration(cfg.RetryBackoff) * time.Millisecond,
		WriteBackoffMax:        time.Duration(cfg.RetryBackoff*10) * time.Millisecond,
	}

	logging.Info(context.Background(), "Kafka event publisher created", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return &KafkaEventPublisher{writer: writer, topic: cfg.Topic}
}

// Publish 发布单条领域事件
func (p *KafkaEventPublisher) Publish(ctx context.Context, eventType string, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logging.Error(ctx, "Failed to publish event",
			"topic", p.topic,
			"event_type", eventType,
			"key", key,
			"error", err,
		)
		return err
	}

	logging.Debug(ctx, "Event published",
		"topic", p.topic,
		"event_type", eventType,
		"key", key,
	)
	return nil
}

// Close 关闭底层 writer
func (p *KafkaEventPublisher) Close() error {
	return p.writer.Close()
}
