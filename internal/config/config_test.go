package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"service-lastmile/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "OPERATION_TIMEOUT",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"DRIVER_SERVICE_URL", "DRIVER_SERVICE_TIMEOUT",
		"DRIVER_RETRY_MAX_ATTEMPTS", "DRIVER_RETRY_BASE_DELAY", "DRIVER_RETRY_MAX_DELAY",
		"KAFKA_BROKERS", "KAFKA_GROUP_ID", "KAFKA_ORDERS_TOPIC",
		"KAFKA_DEPARTED_TOPIC", "KAFKA_COMPLETED_TOPIC",
		"TRACING_ENABLED", "TRACING_SERVICE_NAME",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.LoadArgs(nil)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	require.Equal(t, config.DefaultPort(), cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 8*time.Second, cfg.OperationTimeout)
	require.LessOrEqual(t, cfg.DriverGateway.RetryBudget(), cfg.OperationTimeout)
	require.Equal(t, config.DefaultDB(), cfg.DB)
	require.Equal(t, config.DefaultDriverGateway(), cfg.DriverGateway)
	require.False(t, cfg.Kafka.Enabled())
	require.Equal(t, "last-mile-departed", cfg.Kafka.DepartedTopic)
	require.Equal(t, "last-mile-completed", cfg.Kafka.CompletedTopic)
	require.False(t, cfg.Tracing.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)

	t.Setenv("PORT", "9090")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "15432")
	t.Setenv("POSTGRES_USER", "u")
	t.Setenv("POSTGRES_PASSWORD", "p")
	t.Setenv("POSTGRES_DB", "service")
	t.Setenv("DRIVER_SERVICE_URL", "http://driver:8080")
	t.Setenv("DRIVER_RETRY_MAX_ATTEMPTS", "5")
	t.Setenv("OPERATION_TIMEOUT", "15s")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("TRACING_ENABLED", "true")

	cfg, err := config.LoadArgs(nil)
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, config.DB{Host: "db", Port: "15432", User: "u", Pass: "p", Name: "service"}, cfg.DB)
	require.Equal(t, "http://driver:8080", cfg.DriverGateway.BaseURL)
	require.Equal(t, 5, cfg.DriverGateway.MaxAttempts)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	require.True(t, cfg.Tracing.Enabled)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")

	cfg, err := config.LoadArgs([]string{"-p", "7070", "--kafka-brokers=k:9092", "--log-level=debug"})
	require.NoError(t, err)
	require.Equal(t, 7070, cfg.Port)
	require.Equal(t, []string{"k:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"port out of range":   {"PORT": "70000"},
		"port not a number":   {"PORT": "abc"},
		"postgres port":       {"POSTGRES_PORT": "not-a-number"},
		"operation timeout":   {"OPERATION_TIMEOUT": "soon"},
		"driver url":          {"DRIVER_SERVICE_URL": "driver"},
		"driver attempts":     {"DRIVER_RETRY_MAX_ATTEMPTS": "0"},
		"driver delays":       {"DRIVER_RETRY_BASE_DELAY": "1s", "DRIVER_RETRY_MAX_DELAY": "10ms"},
		"tracing flag":        {"TRACING_ENABLED": "sometimes"},
		"negative op timeout": {"OPERATION_TIMEOUT": "-1s"},
		"short op timeout":    {"OPERATION_TIMEOUT": "3s"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			cfg, err := config.LoadArgs(nil)
			require.Error(t, err)
			require.Nil(t, cfg)
		})
	}
}

func TestLoad_FlagsParseError(t *testing.T) {
	clearEnv(t)

	cfg, err := config.LoadArgs([]string{"--port=not-a-number"})
	require.Error(t, err)
	require.Nil(t, cfg)
	require.Contains(t, err.Error(), "parse flags")
}

func TestDB_DSN(t *testing.T) {
	t.Parallel()

	db := config.DB{Host: "db", Port: "5432", User: "u", Pass: "p@ss", Name: "lastmile"}
	require.Equal(t, "postgres://u:p%40ss@db:5432/lastmile?sslmode=disable", db.DSN())
}

func TestDriverGateway_RetryBudget(t *testing.T) {
	t.Parallel()

	gw := config.DriverGateway{
		Timeout:     2 * time.Second,
		MaxAttempts: 4,
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    300 * time.Millisecond,
	}
	// 4 attempts of 2s plus backoffs of 100ms, 200ms and 300ms (capped).
	require.Equal(t, 8600*time.Millisecond, gw.RetryBudget())

	gw.MaxAttempts = 1
	require.Equal(t, 2*time.Second, gw.RetryBudget())
}
