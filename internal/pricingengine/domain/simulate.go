package domain

import (
	"crypto/rand"
	"encoding/binary"
	"math"
	mathrand "math/rand/v2"
)

// VariateSource 标准正态随机数源
type VariateSource interface {
	NormFloat64() float64
}

// NewVariateSource 创建独立的可播种随机数源
// seed 为 0 时使用 crypto/rand 派生种子；stream 区分并行流，
// 保证并发试验之间的抽样互不相关
func NewVariateSource(seed, stream uint64) VariateSource {
	if seed == 0 {
		seed = randomSeed()
	}
	return mathrand.New(mathrand.NewPCG(seed, stream))
}

func randomSeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 1
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Simulator 风险中性 GBM 终端价格模拟器
// 单步采样到期价格，不做全路径离散化；障碍条件仅在终端价格上判定
type Simulator struct {
	src VariateSource
}

// NewSimulator 创建模拟器
func NewSimulator(src VariateSource) *Simulator {
	return &Simulator{src: src}
}

// TerminalPrice 模拟一次到期时的标的价格
// S_T = S * exp((r - σ²/2)·T + σ·√T·Z)
func (s *Simulator) TerminalPrice(spot, rate, vol, horizon float64) float64 {
	if horizon <= 0 {
		return spot
	}
	drift := (rate - 0.5*vol*vol) * horizon
	diffusion := vol * math.Sqrt(horizon) * s.src.NormFloat64()
	return spot * math.Exp(drift+diffusion)
}
