package domain

import "github.com/shopspring/decimal"

// 希腊字母名称，用作 Greeks 映射的键
const (
	GreekDelta = "delta"
	GreekGamma = "gamma"
	GreekVega  = "vega"
	GreekTheta = "theta"
)

const (
	priceScale = 4 // 价格保留 4 位小数
	greekScale = 6 // 敏感度保留 6 位小数
)

// PricingResult 定价结果（不可变值对象）
// 价格与置信区间保留 4 位小数，希腊字母保留 6 位小数
type PricingResult struct {
	Price              decimal.Decimal
	Greeks             map[string]decimal.Decimal
	ConfidenceInterval *decimal.Decimal // 蒙特卡洛 95% 置信区间半宽；解析定价为 nil
	NumSimulations     int
	Method             PricingMethod
}

// RoundPrice 将价格按展示精度取整（四舍五入）
func RoundPrice(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(priceScale)
}

// RoundGreek 将敏感度按展示精度取整（四舍五入）
func RoundGreek(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(greekScale)
}
