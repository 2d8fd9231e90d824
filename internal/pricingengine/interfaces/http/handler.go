package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/logging"

	"github.com/quantcrux/pricingengine/internal/pricingengine/application"
)

// HTTP 处理器
// 负责处理与结构化产品定价相关的 HTTP 请求
type PricingHandler struct {
	app *application.PricingService
	// simulationTimeout 限制蒙特卡洛请求的执行时间；N 由调用方控制且无上界
	simulationTimeout time.Duration
}

// 创建 HTTP 处理器实例
func NewPricingHandler(app *application.PricingService, simulationTimeout time.Duration) *PricingHandler {
	return &PricingHandler{app: app, simulationTimeout: simulationTimeout}
}

// 注册路由
// 将处理器方法绑定到 Gin 路由引擎
func (h *PricingHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/pricing")
	{
		api.POST("/calculate", h.CalculatePrice)
		api.POST("/monte-carlo", h.MonteCarloPrice)
		api.GET("/health", h.Health)
	}
}

// PricingRequest 定价请求
// 数值字段均可缺省，缺省值在应用层解析；未知产品类型回退到 GENERIC
type PricingRequest struct {
	ProductType    string   `json:"product_type"`
	SpotPrice      *float64 `json:"spot_price"`
	Strike         *float64 `json:"strike"`
	Barrier        *float64 `json:"barrier"`
	Coupon         *float64 `json:"coupon"`
	Volatility     *float64 `json:"volatility"`
	RiskFreeRate   *float64 `json:"risk_free_rate"`
	TimeToMaturity *float64 `json:"time_to_maturity"`
	NumSimulations *int     `json:"num_simulations"`
	Seed           *uint64  `json:"seed"`
}

func (r PricingRequest) toCommand() application.PriceProductCommand {
	return application.PriceProductCommand{
		ProductType:    r.ProductType,
		SpotPrice:      r.SpotPrice,
		Strike:         r.Strike,
		Barrier:        r.Barrier,
		Coupon:         r.Coupon,
		Volatility:     r.Volatility,
		RiskFreeRate:   r.RiskFreeRate,
		TimeToMaturity: r.TimeToMaturity,
		NumSimulations: r.NumSimulations,
		Seed:           r.Seed,
	}
}

// CalculatePrice 解析定价
func (h *PricingHandler) CalculatePrice(c *gin.Context) {
	var req PricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.app.CalculatePrice(c.Request.Context(), req.toCommand())
	if err != nil {
		logging.Error(c.Request.Context(), "Pricing calculation failed", "product_type", req.ProductType, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// MonteCarloPrice 蒙特卡洛定价
func (h *PricingHandler) MonteCarloPrice(c *gin.Context) {
	var req PricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if h.simulationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.simulationTimeout)
		defer cancel()
	}

	result, err := h.app.MonteCarloPrice(ctx, req.toCommand())
	if err != nil {
		logging.Error(c.Request.Context(), "Monte Carlo pricing failed", "product_type", req.ProductType, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Health 存活探针
func (h *PricingHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "Pricing engine is running")
}
