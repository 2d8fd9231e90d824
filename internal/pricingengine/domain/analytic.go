package domain

import (
	"context"
	"math"
)

// AnalyticPricer 闭式/准闭式近似定价器
// 用于无需模拟的即时报价；每次请求使用独立的随机数源
type AnalyticPricer struct{}

// NewAnalyticPricer 创建解析定价器
func NewAnalyticPricer() *AnalyticPricer {
	return &AnalyticPricer{}
}

// Price 计算解析价格与希腊字母
func (p *AnalyticPricer) Price(ctx context.Context, req PricingRequest) (*PricingResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	base, err := p.Value(ctx, req)
	if err != nil {
		return nil, err
	}

	greeks, err := ComputeGreeks(ctx, req, base, p.Value)
	if err != nil {
		return nil, err
	}

	return &PricingResult{
		Price:  RoundPrice(base),
		Greeks: greeks,
		Method: MethodAnalytic,
	}, nil
}

// Value 返回按展示精度取整的解析价格
// 作为希腊字母计算的基础估值函数复用
func (p *AnalyticPricer) Value(ctx context.Context, req PricingRequest) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var price float64
	switch req.ProductType {
	case ProductTypeDigitalOption:
		price = p.digitalPrice(req)
	case ProductTypeBarrierOption:
		price = p.barrierPrice(req)
	case ProductTypeAutocallable:
		price = p.autocallPrice(req)
	default:
		price = p.genericPrice(req)
	}
	return RoundPrice(price).InexactFloat64(), nil
}

// digitalPrice 数字期权的风险中性闭式价格
// price = exp(-rT) · Φ(d2) · 100
func (p *AnalyticPricer) digitalPrice(req PricingRequest) float64 {
	spot, strike := req.SpotPrice, req.Strike
	rate, vol := req.RiskFreeRate, req.Volatility
	horizon := math.Max(req.TimeToMaturity, 0)

	discount := math.Exp(-rate * horizon)
	volTerm := vol * math.Sqrt(horizon)
	if volTerm == 0 {
		// 退化情形：终端价格确定为远期价，二元支付退化为指示函数
		forward := spot * math.Exp(rate*horizon)
		if forward > strike {
			return discount * 100
		}
		return 0
	}

	d2 := (math.Log(spot/strike) + (rate-0.5*vol*vol)*horizon) / volTerm
	return discount * normCdf(d2) * 100
}

// barrierPrice 障碍期权的启发式近似
// 以数字期权为基础价，乘以惩罚远离障碍价的衰减因子；非严格障碍期权公式
func (p *AnalyticPricer) barrierPrice(req PricingRequest) float64 {
	base := RoundPrice(p.digitalPrice(req)).InexactFloat64()
	decay := math.Exp(-math.Pow((req.SpotPrice-req.Barrier)/req.SpotPrice, 2))
	return base * decay
}

// autocallPrice 自动赎回票据的启发式近似
// 以数字期权为基础价，按自动赎回概率放大
func (p *AnalyticPricer) autocallPrice(req PricingRequest) float64 {
	base := RoundPrice(p.digitalPrice(req)).InexactFloat64()
	autocallProb := 0.3
	if req.SpotPrice > req.Strike*autocallTrigger {
		autocallProb = 0.8
	}
	return base * (1 + autocallProb*0.2)
}

// genericPrice 通用产品估值
// 该分支有意保留随机扰动，与其余确定性分支不同
func (p *AnalyticPricer) genericPrice(req PricingRequest) float64 {
	src := NewVariateSource(req.Seed, 0)
	eps := src.NormFloat64()
	horizon := math.Max(req.TimeToMaturity, 0)
	return req.SpotPrice * (1 + eps*req.Volatility*math.Sqrt(horizon)*0.1)
}

// normCdf 标准正态分布累积分布函数
func normCdf(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// normPdf 标准正态分布概率密度函数
func normPdf(x float64) float64 {
	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
}
