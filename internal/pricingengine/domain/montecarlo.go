package domain

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// mcStreams 蒙特卡洛试验划分的固定流数
// 每个流持有独立的 PCG 子流，固定流数保证同一种子下结果可逐位复现，
// 与实际并发度无关（求和归约满足交换律与结合律）
const mcStreams = 8

// ctxCheckInterval 试验循环内检查取消的间隔
const ctxCheckInterval = 4096

// MonteCarloEngine 蒙特卡洛定价引擎
// N 次独立 模拟→收益 试验，对样本均值贴现并给出抽样置信区间
type MonteCarloEngine struct {
	workers int
}

// NewMonteCarloEngine 创建引擎，并发度默认为可用 CPU 数
func NewMonteCarloEngine() *MonteCarloEngine {
	return &MonteCarloEngine{workers: runtime.GOMAXPROCS(0)}
}

// NewMonteCarloEngineWithWorkers 创建指定并发度的引擎
func NewMonteCarloEngineWithWorkers(workers int) *MonteCarloEngine {
	if workers < 1 {
		workers = 1
	}
	return &MonteCarloEngine{workers: workers}
}

// Price 计算蒙特卡洛价格、希腊字母与置信区间
func (e *MonteCarloEngine) Price(ctx context.Context, req PricingRequest) (*PricingResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	base, halfWidth, err := e.estimate(ctx, req)
	if err != nil {
		return nil, err
	}

	greeks, err := ComputeGreeks(ctx, req, RoundPrice(base).InexactFloat64(), e.Value)
	if err != nil {
		return nil, err
	}

	ci := RoundPrice(halfWidth)
	return &PricingResult{
		Price:              RoundPrice(base),
		Greeks:             greeks,
		ConfidenceInterval: &ci,
		NumSimulations:     req.NumSimulations,
		Method:             MethodMonteCarlo,
	}, nil
}

// Value 返回按展示精度取整的蒙特卡洛价格
// 希腊字母的每次扰动重定价都执行一批全新的 N 次模拟
func (e *MonteCarloEngine) Value(ctx context.Context, req PricingRequest) (float64, error) {
	price, _, err := e.estimate(ctx, req)
	if err != nil {
		return 0, err
	}
	return RoundPrice(price).InexactFloat64(), nil
}

// estimate 运行 N 次试验，返回贴现后的均值价格与 95% 置信区间半宽
func (e *MonteCarloEngine) estimate(ctx context.Context, req PricingRequest) (price, halfWidth float64, err error) {
	n := req.NumSimulations
	if n < 1 {
		return 0, 0, ErrInvalidNumSimulations
	}
	horizon := math.Max(req.TimeToMaturity, 0)

	seed := req.Seed
	if seed == 0 {
		seed = randomSeed()
	}

	streams := mcStreams
	if n < streams {
		streams = n
	}

	// 每个流独立累加 sum 与 sumSq，归约与执行顺序无关
	sums := make([]float64, streams)
	sumSqs := make([]float64, streams)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	per := n / streams
	extra := n % streams
	for i := range streams {
		trials := per
		if i < extra {
			trials++
		}
		g.Go(func() error {
			sim := NewSimulator(NewVariateSource(seed, uint64(i)+1))
			var sum, sumSq float64
			for t := range trials {
				if t%ctxCheckInterval == 0 {
					if err := gctx.Err(); err != nil {
						return fmt.Errorf("monte carlo aborted: %w", err)
					}
				}
				terminal := sim.TerminalPrice(req.SpotPrice, req.RiskFreeRate, req.Volatility, horizon)
				payoff := Payoff(terminal, req)
				sum += payoff
				sumSq += payoff * payoff
			}
			sums[i] = sum
			sumSqs[i] = sumSq
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}

	var sum, sumSq float64
	for i := range streams {
		sum += sums[i]
		sumSq += sumSqs[i]
	}

	mean := sum / float64(n)
	discount := math.Exp(-req.RiskFreeRate * horizon)
	price = mean * discount

	// 样本方差（除以 N-1）；单次试验时置信区间无定义，记为 0
	if n > 1 {
		variance := (sumSq - float64(n)*mean*mean) / float64(n-1)
		if variance < 0 {
			variance = 0 // 浮点抵消
		}
		standardError := math.Sqrt(variance / float64(n))
		halfWidth = 1.96 * standardError * discount
	}
	return price, halfWidth, nil
}
