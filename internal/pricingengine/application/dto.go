package application

import (
	"github.com/shopspring/decimal"

	"github.com/quantcrux/pricingengine/internal/pricingengine/domain"
)

// PriceProductCommand 定价命令
// 数值字段均为可选，缺失时解析为领域缺省值，绝不报错
type PriceProductCommand struct {
	ProductType    string
	SpotPrice      *float64
	Strike         *float64
	Barrier        *float64
	Coupon         *float64
	Volatility     *float64
	RiskFreeRate   *float64
	TimeToMaturity *float64
	NumSimulations *int
	Seed           *uint64
}

// PricingResultDTO 定价结果传输对象
type PricingResultDTO struct {
	Price              decimal.Decimal            `json:"price"`
	Greeks             map[string]decimal.Decimal `json:"greeks"`
	ConfidenceInterval *decimal.Decimal           `json:"confidence_interval,omitempty"`
	NumSimulations     int                        `json:"num_simulations,omitempty"`
	PricingMethod      string                     `json:"pricing_method"`
}

// toRequest 解析命令为领域请求，填充缺省值
func (cmd PriceProductCommand) toRequest() domain.PricingRequest {
	req := domain.DefaultRequest()
	req.ProductType = domain.ParseProductType(cmd.ProductType)
	if cmd.SpotPrice != nil {
		req.SpotPrice = *cmd.SpotPrice
	}
	if cmd.Strike != nil {
		req.Strike = *cmd.Strike
	}
	if cmd.Barrier != nil {
		req.Barrier = *cmd.Barrier
	}
	if cmd.Coupon != nil {
		req.Coupon = *cmd.Coupon
	}
	if cmd.Volatility != nil {
		req.Volatility = *cmd.Volatility
	}
	if cmd.RiskFreeRate != nil {
		req.RiskFreeRate = *cmd.RiskFreeRate
	}
	if cmd.TimeToMaturity != nil {
		req.TimeToMaturity = *cmd.TimeToMaturity
	}
	if cmd.NumSimulations != nil {
		req.NumSimulations = *cmd.NumSimulations
	}
	if cmd.Seed != nil {
		req.Seed = *cmd.Seed
	}
	return req
}

func toDTO(result *domain.PricingResult) *PricingResultDTO {
	return &PricingResultDTO{
		Price:              result.Price,
		Greeks:             result.Greeks,
		ConfidenceInterval: result.ConfidenceInterval,
		NumSimulations:     result.NumSimulations,
		PricingMethod:      string(result.Method),
	}
}
