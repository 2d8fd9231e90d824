package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	QuotePricedEventType  = "QuotePriced"
	PricingErrorEventType = "PricingError"
)

// QuotePricedEvent 报价完成事件
type QuotePricedEvent struct {
	ProductType        ProductType                `json:"product_type"`
	SpotPrice          float64                    `json:"spot_price"`
	Strike             float64                    `json:"strike"`
	Barrier            float64                    `json:"barrier"`
	Coupon             float64                    `json:"coupon"`
	Volatility         float64                    `json:"volatility"`
	RiskFreeRate       float64                    `json:"risk_free_rate"`
	TimeToMaturity     float64                    `json:"time_to_maturity"`
	Price              decimal.Decimal            `json:"price"`
	Greeks             map[string]decimal.Decimal `json:"greeks"`
	ConfidenceInterval *decimal.Decimal           `json:"confidence_interval,omitempty"`
	NumSimulations     int                        `json:"num_simulations,omitempty"`
	PricingMethod      PricingMethod              `json:"pricing_method"`
	CalculatedAt       int64                      `json:"calculated_at"`
	OccurredOn         time.Time                  `json:"occurred_on"`
}

// PricingErrorEvent 定价失败事件
type PricingErrorEvent struct {
	ProductType ProductType   `json:"product_type"`
	Method      PricingMethod `json:"method"`
	Error       string        `json:"error"`
	OccurredAt  int64         `json:"occurred_at"`
	OccurredOn  time.Time     `json:"occurred_on"`
}
