package domain

import "math"

// Payoff 计算单个终端价格下的产品收益（纯函数）
// 按产品类型分支：
//   - 数字期权：终端价高于行权价支付 coupon*100
//   - 障碍期权：需同时高于障碍价与行权价
//   - 自动赎回：提前赎回档 >= strike*1.1，票息档 >= barrier，否则本金风险档
//   - 通用产品：欧式看涨内在价值
func Payoff(terminalPrice float64, req PricingRequest) float64 {
	switch req.ProductType {
	case ProductTypeDigitalOption:
		if terminalPrice > req.Strike {
			return req.Coupon * 100
		}
		return 0
	case ProductTypeBarrierOption:
		if terminalPrice > req.Barrier && terminalPrice > req.Strike {
			return req.Coupon * 100
		}
		return 0
	case ProductTypeAutocallable:
		if terminalPrice >= req.Strike*autocallTrigger {
			return req.Coupon * 100 // 提前赎回
		}
		if terminalPrice >= req.Barrier {
			return req.Coupon * 100 // 正常票息
		}
		return math.Max(0, terminalPrice-req.Strike) // 本金风险
	default:
		return math.Max(0, terminalPrice-req.Strike)
	}
}

// autocallTrigger 自动赎回触发水平相对行权价的比例
const autocallTrigger = 1.1
