// 包 结构化产品定价引擎的领域模型
package domain

import (
	"errors"
	"strings"
)

// ProductType 结构化产品类型
type ProductType string

const (
	ProductTypeDigitalOption ProductType = "DIGITAL_OPTION" // 数字期权
	ProductTypeBarrierOption ProductType = "BARRIER_OPTION" // 障碍期权
	ProductTypeAutocallable  ProductType = "AUTOCALLABLE"   // 自动赎回票据
	ProductTypeGeneric       ProductType = "GENERIC"        // 通用产品
)

// PricingMethod 定价方法
type PricingMethod string

const (
	MethodAnalytic   PricingMethod = "analytic"
	MethodMonteCarlo PricingMethod = "monte_carlo"
)

var (
	ErrInvalidVolatility     = errors.New("volatility must be non-negative")
	ErrInvalidTimeToMaturity = errors.New("time to maturity must be positive")
	ErrInvalidNumSimulations = errors.New("number of simulations must be at least 1")
)

// 缺省市场参数
// 请求中缺失的字段解析为这些缺省值，而不是报错
const (
	DefaultSpotPrice      = 100.0
	DefaultStrike         = 100.0
	DefaultBarrier        = 80.0
	DefaultCoupon         = 0.1
	DefaultVolatility     = 0.2
	DefaultRiskFreeRate   = 0.05
	DefaultTimeToMaturity = 1.0
	DefaultNumSimulations = 100000
)

// ParseProductType 解析产品类型（大小写不敏感）
// 未识别的类型回退到 GENERIC 分支
func ParseProductType(s string) ProductType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(ProductTypeDigitalOption):
		return ProductTypeDigitalOption
	case string(ProductTypeBarrierOption):
		return ProductTypeBarrierOption
	case string(ProductTypeAutocallable):
		return ProductTypeAutocallable
	default:
		return ProductTypeGeneric
	}
}

// PricingRequest 定价请求（不可变值对象）
// 所有字段均已解析缺省值；扰动重定价通过 With* 方法产生副本
type PricingRequest struct {
	ProductType    ProductType
	SpotPrice      float64
	Strike         float64
	Barrier        float64
	Coupon         float64
	Volatility     float64
	RiskFreeRate   float64
	TimeToMaturity float64
	NumSimulations int
	// Seed 为随机数种子；0 表示每次请求使用时间派生的种子
	Seed uint64
}

// DefaultRequest 返回填充全部缺省值的请求
func DefaultRequest() PricingRequest {
	return PricingRequest{
		ProductType:    ProductTypeGeneric,
		SpotPrice:      DefaultSpotPrice,
		Strike:         DefaultStrike,
		Barrier:        DefaultBarrier,
		Coupon:         DefaultCoupon,
		Volatility:     DefaultVolatility,
		RiskFreeRate:   DefaultRiskFreeRate,
		TimeToMaturity: DefaultTimeToMaturity,
		NumSimulations: DefaultNumSimulations,
	}
}

// Validate 校验请求不变量
func (r PricingRequest) Validate() error {
	if r.Volatility < 0 {
		return ErrInvalidVolatility
	}
	if r.TimeToMaturity <= 0 {
		return ErrInvalidTimeToMaturity
	}
	if r.NumSimulations < 1 {
		return ErrInvalidNumSimulations
	}
	return nil
}

// WithSpotPrice 返回替换标的价格后的副本
func (r PricingRequest) WithSpotPrice(spot float64) PricingRequest {
	r.SpotPrice = spot
	return r
}

// WithVolatility 返回替换波动率后的副本
func (r PricingRequest) WithVolatility(vol float64) PricingRequest {
	r.Volatility = vol
	return r
}

// WithTimeToMaturity 返回替换到期时间后的副本
func (r PricingRequest) WithTimeToMaturity(t float64) PricingRequest {
	r.TimeToMaturity = t
	return r
}
