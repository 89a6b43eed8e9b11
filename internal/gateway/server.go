package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	ordersclient "github.com/vladislavdragonenkov/orders/internal/clients/orders"
)

const (
	envHTTPAddr      = "GATEWAY_HTTP_ADDR"
	envOrdersAddr    = "ORDERS_MICROSERVICE_ADDR"
	envOrdersTimeout = "ORDERS_RPC_TIMEOUT"

	shutdownTimeout = 5 * time.Second
)

// Config: настройки шлюза.
type Config struct {
	HTTPAddr      string
	OrdersAddr    string
	OrdersTimeout time.Duration
}

// DefaultConfig возвращает адреса для локального запуска.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:      ":3000",
		OrdersAddr:    "localhost:50051",
		OrdersTimeout: ordersclient.DefaultTimeout,
	}
}

// ConfigFromEnv читает настройки из окружения поверх DefaultConfig.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()
	if v := getenv(envHTTPAddr); v != "" {
		cfg.HTTPAddr = v
	}
	if v := getenv(envOrdersAddr); v != "" {
		cfg.OrdersAddr = v
	}
	if v := getenv(envOrdersTimeout); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", envOrdersTimeout, err)
		}
		if timeout <= 0 {
			return Config{}, fmt.Errorf("%s must be positive", envOrdersTimeout)
		}
		cfg.OrdersTimeout = timeout
	}
	return cfg, nil
}

// Run поднимает HTTP-шлюз и блокируется до отмены ctx.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "gateway")
	gin.SetMode(gin.ReleaseMode)

	conn, err := grpc.NewClient(cfg.OrdersAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("dial orders service: %w", err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			logger.WithError(closeErr).Warn("failed to close orders connection")
		}
	}()

	router := NewRouter(ordersclient.NewClient(conn, cfg.OrdersTimeout), logger.WithField("layer", "http"))
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP шлюз слушает %s", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP шлюз")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
