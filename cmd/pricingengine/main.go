package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/wyfcoding/pkg/metrics"
	"github.com/wyfcoding/pkg/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/quantcrux/pricingengine/internal/pricingengine/application"
	"github.com/quantcrux/pricingengine/internal/pricingengine/domain"
	"github.com/quantcrux/pricingengine/internal/pricingengine/infrastructure/messaging"
	http_server "github.com/quantcrux/pricingengine/internal/pricingengine/interfaces/http"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/pricingengine/config.toml", "path to config file")
	flag.Parse()

	// 1. Config
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Sprintf("read config failed: %v", err))
	}

	// 2. Logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 3. Messaging (optional)
	var publisher domain.EventPublisher
	var kafkaPublisher *messaging.KafkaEventPublisher
	if viper.GetBool("messaging.enabled") {
		kafkaPublisher = messaging.NewKafkaEventPublisher(messaging.KafkaConfig{
			Brokers:      viper.GetStringSlice("messaging.brokers"),
			Topic:        viper.GetString("messaging.topic"),
			MaxRetries:   viper.GetInt("messaging.max_retries"),
			RetryBackoff: viper.GetInt("messaging.retry_backoff_ms"),
		})
		publisher = kafkaPublisher
	}

	// 4. Domain & Application
	analytic := domain.NewAnalyticPricer()
	engine := domain.NewMonteCarloEngine()
	appService := application.NewPricingService(analytic, engine, publisher)

	// 5. HTTP
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// 添加中间件
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.HttpMetricsMiddleware(metrics.NewMetrics("pricingengine")))

	simulationTimeout := time.Duration(viper.GetInt("pricing.simulation_timeout_ms")) * time.Millisecond
	handler := http_server.NewPricingHandler(appService, simulationTimeout)
	handler.RegisterRoutes(router)

	// 6. Start
	g, ctx := errgroup.WithContext(context.Background())

	httpPort := viper.GetString("server.http_port")
	if httpPort == "" {
		httpPort = "8085"
	}
	server := &http.Server{Addr: fmt.Sprintf(":%s", httpPort), Handler: router}
	g.Go(func() error {
		slog.Info("HTTP server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// 7. Graceful Shutdown
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			slog.Info("shutting down server...")
		case <-ctx.Done():
			slog.Info("context cancelled, shutting down...")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
		if kafkaPublisher != nil {
			if err := kafkaPublisher.Close(); err != nil {
				slog.Error("kafka publisher close failed", "error", err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("server exited with error", "error", err)
	}
}
