package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gamma 的二阶中心差分应与 delta 对 spot 的数值导数一致（有限差分步长误差内）
func TestGammaConsistentWithDeltaDerivative(t *testing.T) {
	pricer := NewAnalyticPricer()
	ctx := context.Background()
	req := digitalRequest()

	base, err := pricer.Value(ctx, req)
	require.NoError(t, err)

	greeks, err := ComputeGreeks(ctx, req, base, pricer.Value)
	require.NoError(t, err)

	deltaAt := func(spot float64) float64 {
		r := req.WithSpotPrice(spot)
		p0, err := pricer.Value(ctx, r)
		require.NoError(t, err)
		p1, err := pricer.Value(ctx, r.WithSpotPrice(spot*(1+spotShift)))
		require.NoError(t, err)
		return (p1 - p0) / (spot * spotShift)
	}

	h := req.SpotPrice * spotShift
	numericGamma := (deltaAt(req.SpotPrice) - deltaAt(req.SpotPrice*(1-spotShift))) / h
	assert.InDelta(t, numericGamma, greeks[GreekGamma].InexactFloat64(), 1e-3)
}

// theta 按日历日回退到期时间做前向差分；方向与常规符号约定相反，按参考行为保留
func TestThetaUsesBackwardTimeBump(t *testing.T) {
	pricer := NewAnalyticPricer()
	ctx := context.Background()
	req := digitalRequest()

	base, err := pricer.Value(ctx, req)
	require.NoError(t, err)

	greeks, err := ComputeGreeks(ctx, req, base, pricer.Value)
	require.NoError(t, err)

	shorter, err := pricer.Value(ctx, req.WithTimeToMaturity(req.TimeToMaturity-thetaShift))
	require.NoError(t, err)
	want := (shorter - base) / thetaShift
	assert.InDelta(t, want, greeks[GreekTheta].InexactFloat64(), 1e-6)
}

func TestComputeGreeksPropagatesValuatorError(t *testing.T) {
	wantErr := errors.New("valuation blew up")
	valuate := func(ctx context.Context, req PricingRequest) (float64, error) {
		return 0, wantErr
	}

	_, err := ComputeGreeks(context.Background(), DefaultRequest(), 0, valuate)
	assert.ErrorIs(t, err, wantErr)
}

// 扰动使用请求副本，原请求保持不变
func TestWithMethodsCopyRequest(t *testing.T) {
	req := DefaultRequest()
	bumped := req.WithSpotPrice(123).WithVolatility(0.5).WithTimeToMaturity(2)

	assert.Equal(t, DefaultSpotPrice, req.SpotPrice)
	assert.Equal(t, DefaultVolatility, req.Volatility)
	assert.Equal(t, DefaultTimeToMaturity, req.TimeToMaturity)
	assert.Equal(t, 123.0, bumped.SpotPrice)
	assert.Equal(t, 0.5, bumped.Volatility)
	assert.Equal(t, 2.0, bumped.TimeToMaturity)
}
