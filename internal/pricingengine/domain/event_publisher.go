package domain

import "context"

// EventPublisher 领域事件发布接口
// 发布失败不影响定价请求本身
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, key string, payload any) error
}
