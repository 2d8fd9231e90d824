package application

import (
	"context"
	"time"

	"github.com/wyfcoding/pkg/logging"

	"github.com/quantcrux/pricingengine/internal/pricingengine/domain"
)

// PricingService 定价应用服务
// 按请求的操作选择解析定价或蒙特卡洛定价，定价完成后发布领域事件
type PricingService struct {
	analytic  *domain.AnalyticPricer
	engine    *domain.MonteCarloEngine
	publisher domain.EventPublisher
}

// NewPricingService 创建定价应用服务实例
// publisher 可以为 nil，此时跳过事件发布
func NewPricingService(analytic *domain.AnalyticPricer, engine *domain.MonteCarloEngine, publisher domain.EventPublisher) *PricingService {
	return &PricingService{
		analytic:  analytic,
		engine:    engine,
		publisher: publisher,
	}
}

// CalculatePrice 解析定价（快速报价路径）
func (s *PricingService) CalculatePrice(ctx context.Context, cmd PriceProductCommand) (*PricingResultDTO, error) {
	req := cmd.toRequest()
	result, err := s.analytic.Price(ctx, req)
	if err != nil {
		s.publishError(ctx, req, domain.MethodAnalytic, err)
		return nil, err
	}
	s.publishPriced(ctx, req, result)
	return toDTO(result), nil
}

// MonteCarloPrice 蒙特卡洛定价（模拟路径）
func (s *PricingService) MonteCarloPrice(ctx context.Context, cmd PriceProductCommand) (*PricingResultDTO, error) {
	req := cmd.toRequest()
	result, err := s.engine.Price(ctx, req)
	if err != nil {
		s.publishError(ctx, req, domain.MethodMonteCarlo, err)
		return nil, err
	}
	s.publishPriced(ctx, req, result)
	return toDTO(result), nil
}

// publishPriced 发布报价完成事件，失败仅记录日志
func (s *PricingService) publishPriced(ctx context.Context, req domain.PricingRequest, result *domain.PricingResult) {
	if s.publisher == nil {
		return
	}
	now := time.Now()
	event := domain.QuotePricedEvent{
		ProductType:        req.ProductType,
		SpotPrice:          req.SpotPrice,
		Strike:             req.Strike,
		Barrier:            req.Barrier,
		Coupon:             req.Coupon,
		Volatility:         req.Volatility,
		RiskFreeRate:       req.RiskFreeRate,
		TimeToMaturity:     req.TimeToMaturity,
		Price:              result.Price,
		Greeks:             result.Greeks,
		ConfidenceInterval: result.ConfidenceInterval,
		NumSimulations:     result.NumSimulations,
		PricingMethod:      result.Method,
		CalculatedAt:       now.Unix(),
		OccurredOn:         now,
	}
	if err := s.publisher.Publish(ctx, domain.QuotePricedEventType, string(req.ProductType), event); err != nil {
		logging.Error(ctx, "Failed to publish quote priced event",
			"product_type", req.ProductType,
			"error", err,
		)
	}
}

// publishError 发布定价失败事件，失败仅记录日志
func (s *PricingService) publishError(ctx context.Context, req domain.PricingRequest, method domain.PricingMethod, cause error) {
	if s.publisher == nil {
		return
	}
	now := time.Now()
	event := domain.PricingErrorEvent{
		ProductType: req.ProductType,
		Method:      method,
		Error:       cause.Error(),
		OccurredAt:  now.Unix(),
		OccurredOn:  now,
	}
	if err := s.publisher.Publish(ctx, domain.PricingErrorEventType, string(req.ProductType), event); err != nil {
		logging.Error(ctx, "Failed to publish pricing error event",
			"product_type", req.ProductType,
			"error", err,
		)
	}
}
