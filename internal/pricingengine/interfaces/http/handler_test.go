package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantcrux/pricingengine/internal/pricingengine/application"
	"github.com/quantcrux/pricingengine/internal/pricingengine/domain"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := application.NewPricingService(domain.NewAnalyticPricer(), domain.NewMonteCarloEngine(), nil)
	handler := NewPricingHandler(svc, 30*time.Second)

	router := gin.New()
	handler.RegisterRoutes(router)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCalculateDigitalOptionScenario(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/pricing/calculate", `{
		"product_type": "DIGITAL_OPTION",
		"spot_price": 100,
		"strike": 100,
		"volatility": 0.2,
		"risk_free_rate": 0.05,
		"time_to_maturity": 1.0
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Price              string            `json:"price"`
		Greeks             map[string]string `json:"greeks"`
		ConfidenceInterval *string           `json:"confidence_interval"`
		PricingMethod      string            `json:"pricing_method"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "53.2325", body.Price)
	assert.Equal(t, "analytic", body.PricingMethod)
	assert.Nil(t, body.ConfidenceInterval)
	for _, greek := range []string{"delta", "gamma", "vega", "theta"} {
		assert.Contains(t, body.Greeks, greek)
	}
}

func TestMonteCarloEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/pricing/monte-carlo", `{
		"product_type": "digital_option",
		"num_simulations": 5000,
		"seed": 11
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Price              string            `json:"price"`
		Greeks             map[string]string `json:"greeks"`
		ConfidenceInterval *string           `json:"confidence_interval"`
		NumSimulations     int               `json:"num_simulations"`
		PricingMethod      string            `json:"pricing_method"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "monte_carlo", body.PricingMethod)
	assert.Equal(t, 5000, body.NumSimulations)
	require.NotNil(t, body.ConfidenceInterval)
	assert.NotEmpty(t, body.Price)
	assert.Len(t, body.Greeks, 4)
}

// 所有字段缺省：解析为文档化缺省值，未知类型回退 GENERIC，绝不报错
func TestCalculateEmptyBodyUsesDefaults(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/pricing/calculate", `{}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "analytic", body["pricing_method"])
}

func TestCalculateMalformedBody(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/pricing/calculate", `{"spot_price": "not a number"`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculateInvalidVolatility(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/pricing/calculate", `{"product_type": "DIGITAL_OPTION", "volatility": -0.5}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "error")
}

func TestMonteCarloInvalidNumSimulations(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/pricing/monte-carlo", `{"num_simulations": 0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/pricing/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Pricing engine is running", w.Body.String())
}
