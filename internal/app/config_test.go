package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestDefaultConfig_Values(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, ":50051", cfg.GRPCAddr)
	require.Equal(t, ":9090", cfg.MetricsAddr)
	require.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	require.True(t, cfg.PostgresAutoMigrate)
	require.Equal(t, "localhost:50052", cfg.ProductsAddr)
	require.Equal(t, 5*time.Second, cfg.ProductsTimeout)
	require.Equal(t, "orders.events", cfg.KafkaTopic)
	require.Empty(t, cfg.KafkaBrokers)
	require.NoError(t, cfg.Validate())
}

func TestConfigFromEnv_Empty(t *testing.T) {
	cfg, err := ConfigFromEnv(envMap(nil))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	cfg, err := ConfigFromEnv(envMap(map[string]string{
		"ORDERS_GRPC_ADDR":             ":6000",
		"ORDERS_METRICS_ADDR":          ":9100",
		"ORDERS_STORAGE_DRIVER":        " Postgres ",
		"ORDERS_POSTGRES_DSN":          "postgres://orders:orders@db:5432/orders?sslmode=disable",
		"ORDERS_POSTGRES_AUTO_MIGRATE": "false",
		"PRODUCT_MICROSERVICE_HOST":    "products",
		"PRODUCT_MICROSERVICE_PORT":    "3001",
		"PRODUCTS_RPC_TIMEOUT":         "750ms",
		"KAFKA_BROKERS":                "k1:9092,k2:9092",
		"KAFKA_ORDER_TOPIC":            "orders.audit",
		"ORDERS_LOG_LEVEL":             "debug",
	}))
	require.NoError(t, err)

	require.Equal(t, Config{
		GRPCAddr:            ":6000",
		MetricsAddr:         ":9100",
		StorageDriver:       StorageDriverPostgres,
		PostgresDSN:         "postgres://orders:orders@db:5432/orders?sslmode=disable",
		PostgresAutoMigrate: false,
		ProductsAddr:        "products:3001",
		ProductsTimeout:     750 * time.Millisecond,
		KafkaBrokers:        "k1:9092,k2:9092",
		KafkaTopic:          "orders.audit",
		LogLevel:            "debug",
	}, cfg)
}

func TestConfigFromEnv_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		env     map[string]string
		message string
	}{
		{
			name:    "postgres without dsn",
			env:     map[string]string{"ORDERS_STORAGE_DRIVER": "postgres"},
			message: "ORDERS_POSTGRES_DSN is required",
		},
		{
			name:    "unknown driver",
			env:     map[string]string{"ORDERS_STORAGE_DRIVER": "sqlite"},
			message: "unsupported storage driver",
		},
		{
			name:    "host without port",
			env:     map[string]string{"PRODUCT_MICROSERVICE_HOST": "products"},
			message: "must be set together",
		},
		{
			name:    "bad timeout",
			env:     map[string]string{"PRODUCTS_RPC_TIMEOUT": "soon"},
			message: "PRODUCTS_RPC_TIMEOUT",
		},
		{
			name:    "negative timeout",
			env:     map[string]string{"PRODUCTS_RPC_TIMEOUT": "-1s"},
			message: "products timeout must be positive",
		},
		{
			name:    "bad auto migrate flag",
			env:     map[string]string{"ORDERS_POSTGRES_AUTO_MIGRATE": "sometimes"},
			message: "ORDERS_POSTGRES_AUTO_MIGRATE",
		},
		{
			name:    "bad log level",
			env:     map[string]string{"ORDERS_LOG_LEVEL": "loud"},
			message: "not a valid logrus Level",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ConfigFromEnv(envMap(tc.env))
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestConfig_Comparison(t *testing.T) {
	cfg1 := DefaultConfig()
	cfg2 := DefaultConfig()
	require.True(t, cfg1 == cfg2)

	cfg2.GRPCAddr = ":8080"
	require.False(t, cfg1 == cfg2)
}

func TestBrokerList(t *testing.T) {
	require.Equal(t, []string{"broker1:9092", "broker2:9092"}, brokerList(" broker1:9092, ,broker2:9092 "))
	require.Empty(t, brokerList(""))
	require.Empty(t, brokerList(" , "))
}
