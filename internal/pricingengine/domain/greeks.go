package domain

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// 有限差分扰动步长
const (
	spotShift  = 0.01        // 标的价格相对扰动
	volShift   = 0.01        // 波动率绝对扰动
	thetaShift = 1.0 / 365.0 // 一个日历日
)

// Valuator 基础估值函数
// 由解析定价器或蒙特卡洛引擎提供，对扰动后的请求副本完整重定价
type Valuator func(ctx context.Context, req PricingRequest) (float64, error)

// ComputeGreeks 通过有限差分重定价计算 delta、gamma、vega、theta
// 四次扰动重定价相互独立，并发执行：
//   - delta：spot 上调 1%，前向差分
//   - gamma：复用 delta 的上调价，加 spot 下调 1%，中心二阶差分
//   - vega： 波动率加 0.01，前向差分
//   - theta：到期时间回退一个日历日，前向差分
//
// theta 的时间回退方向与常规符号约定相反，按参考行为保留
func ComputeGreeks(ctx context.Context, req PricingRequest, basePrice float64, valuate Valuator) (map[string]decimal.Decimal, error) {
	var priceUp, priceDown, priceVol, priceTheta float64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		priceUp, err = valuate(gctx, req.WithSpotPrice(req.SpotPrice*(1+spotShift)))
		return err
	})
	g.Go(func() (err error) {
		priceDown, err = valuate(gctx, req.WithSpotPrice(req.SpotPrice*(1-spotShift)))
		return err
	})
	g.Go(func() (err error) {
		priceVol, err = valuate(gctx, req.WithVolatility(req.Volatility+volShift))
		return err
	})
	g.Go(func() (err error) {
		priceTheta, err = valuate(gctx, req.WithTimeToMaturity(req.TimeToMaturity-thetaShift))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	h := req.SpotPrice * spotShift
	delta := (priceUp - basePrice) / h
	gamma := (priceUp - 2*basePrice + priceDown) / (h * h)
	vega := (priceVol - basePrice) / volShift
	theta := (priceTheta - basePrice) / thetaShift

	return map[string]decimal.Decimal{
		GreekDelta: RoundGreek(delta),
		GreekGamma: RoundGreek(gamma),
		GreekVega:  RoundGreek(vega),
		GreekTheta: RoundGreek(theta),
	}, nil
}
