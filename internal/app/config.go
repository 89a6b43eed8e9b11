package app

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/clients/products"
	"github.com/vladislavdragonenkov/orders/internal/messaging/kafka"
)

const (
	// StorageDriverMemory хранит заказы в памяти процесса.
	StorageDriverMemory = "memory"
	// StorageDriverPostgres хранит заказы в PostgreSQL.
	StorageDriverPostgres = "postgres"
)

const (
	envGRPCAddr            = "ORDERS_GRPC_ADDR"
	envMetricsAddr         = "ORDERS_METRICS_ADDR"
	envStorageDriver       = "ORDERS_STORAGE_DRIVER"
	envPostgresDSN         = "ORDERS_POSTGRES_DSN"
	envPostgresAutoMigrate = "ORDERS_POSTGRES_AUTO_MIGRATE"
	envProductsHost        = "PRODUCT_MICROSERVICE_HOST"
	envProductsPort        = "PRODUCT_MICROSERVICE_PORT"
	envProductsTimeout     = "PRODUCTS_RPC_TIMEOUT"
	envKafkaBrokers        = "KAFKA_BROKERS"
	envKafkaTopic          = "KAFKA_ORDER_TOPIC"
	envLogLevel            = "ORDERS_LOG_LEVEL"
)

// Config описывает настройки запуска сервиса заказов.
type Config struct {
	GRPCAddr            string
	MetricsAddr         string
	StorageDriver       string
	PostgresDSN         string
	PostgresAutoMigrate bool
	ProductsAddr        string
	ProductsTimeout     time.Duration
	KafkaBrokers        string
	KafkaTopic          string
	LogLevel            string
}

// DefaultConfig возвращает настройки для локального запуска.
func DefaultConfig() Config {
	return Config{
		GRPCAddr:            ":50051",
		MetricsAddr:         ":9090",
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
		ProductsAddr:        "localhost:50052",
		ProductsTimeout:     products.DefaultTimeout,
		KafkaTopic:          kafka.TopicOrderEvents,
		LogLevel:            log.InfoLevel.String(),
	}
}

// ConfigFromEnv накладывает переменные окружения на DefaultConfig.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()
	lookup := func(key string) string { return strings.TrimSpace(getenv(key)) }

	if v := lookup(envGRPCAddr); v != "" {
		cfg.GRPCAddr = v
	}
	if v := lookup(envMetricsAddr); v != "" {
		cfg.MetricsAddr = v
	}
	if v := lookup(envStorageDriver); v != "" {
		cfg.StorageDriver = strings.ToLower(v)
	}
	if v := lookup(envPostgresDSN); v != "" {
		cfg.PostgresDSN = v
	}
	if v := lookup(envPostgresAutoMigrate); v != "" {
		autoMigrate, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", envPostgresAutoMigrate, err)
		}
		cfg.PostgresAutoMigrate = autoMigrate
	}

	host, port := lookup(envProductsHost), lookup(envProductsPort)
	switch {
	case host != "" && port != "":
		cfg.ProductsAddr = net.JoinHostPort(host, port)
	case host != "" || port != "":
		return Config{}, fmt.Errorf("%s and %s must be set together", envProductsHost, envProductsPort)
	}

	if v := lookup(envProductsTimeout); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", envProductsTimeout, err)
		}
		cfg.ProductsTimeout = timeout
	}
	if v := lookup(envKafkaBrokers); v != "" {
		cfg.KafkaBrokers = v
	}
	if v := lookup(envKafkaTopic); v != "" {
		cfg.KafkaTopic = v
	}
	if v := lookup(envLogLevel); v != "" {
		cfg.LogLevel = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек.
func (c Config) Validate() error {
	var errs []error
	if c.GRPCAddr == "" {
		errs = append(errs, errors.New("grpc address is required"))
	}
	if c.ProductsAddr == "" {
		errs = append(errs, errors.New("products service address is required"))
	}
	if c.ProductsTimeout <= 0 {
		errs = append(errs, errors.New("products timeout must be positive"))
	}
	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if c.PostgresDSN == "" {
			errs = append(errs, fmt.Errorf("%s is required for postgres storage", envPostgresDSN))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported storage driver %q", c.StorageDriver))
	}
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ConfigureLogging выставляет формат и уровень глобального логгера.
func ConfigureLogging(level string) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}

// brokerList разбирает список брокеров через запятую.
func brokerList(raw string) []string {
	var brokers []string
	for _, broker := range strings.Split(raw, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}
