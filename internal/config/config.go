package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port             int
	LogLevel         string
	OperationTimeout time.Duration
	DB               DB
	DriverGateway    DriverGateway
	Kafka            Kafka
	Tracing          Tracing
}

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN returns a pgx connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// DriverGateway stores the driver service client settings.
type DriverGateway struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Kafka stores broker and topic settings.
type Kafka struct {
	Brokers        []string
	GroupID        string
	OrdersTopic    string
	DepartedTopic  string
	CompletedTopic string
}

// Enabled reports whether any broker is configured.
func (k Kafka) Enabled() bool { return len(k.Brokers) > 0 }

// Tracing stores OpenTelemetry settings.
type Tracing struct {
	Enabled     bool
	ServiceName string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	return LoadArgs(os.Args[1:])
}

// LoadArgs is Load with explicit command line arguments.
func LoadArgs(args []string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := defaults()
	if err := cfg.fromEnv(); err != nil {
		return nil, err
	}

	brokers := strings.Join(cfg.Kafka.Brokers, ",")

	fs := pflag.NewFlagSet("service-lastmile", pflag.ContinueOnError)
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.DurationVar(&cfg.OperationTimeout, "operation-timeout", cfg.OperationTimeout, "timeout of a single delivery operation")
	fs.StringVar(&cfg.DriverGateway.BaseURL, "driver-service-url", cfg.DriverGateway.BaseURL, "driver service base URL")
	fs.StringVar(&brokers, "kafka-brokers", brokers, "comma separated kafka brokers, empty disables kafka")
	fs.BoolVar(&cfg.Tracing.Enabled, "tracing", cfg.Tracing.Enabled, "export traces to stdout")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	cfg.Kafka.Brokers = splitList(brokers)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) fromEnv() error {
	var err error
	if c.Port, err = envInt("PORT", c.Port); err != nil {
		return err
	}
	c.LogLevel = envString("LOG_LEVEL", c.LogLevel)
	if c.OperationTimeout, err = envDuration("OPERATION_TIMEOUT", c.OperationTimeout); err != nil {
		return err
	}

	c.DB.Host = envString("POSTGRES_HOST", c.DB.Host)
	c.DB.Port = envString("POSTGRES_PORT", c.DB.Port)
	if _, err := strconv.Atoi(c.DB.Port); err != nil {
		return fmt.Errorf("invalid POSTGRES_PORT %q: %w", c.DB.Port, err)
	}
	c.DB.User = envString("POSTGRES_USER", c.DB.User)
	c.DB.Pass = envString("POSTGRES_PASSWORD", c.DB.Pass)
	c.DB.Name = envString("POSTGRES_DB", c.DB.Name)

	gw := &c.DriverGateway
	gw.BaseURL = envString("DRIVER_SERVICE_URL", gw.BaseURL)
	if gw.Timeout, err = envDuration("DRIVER_SERVICE_TIMEOUT", gw.Timeout); err != nil {
		return err
	}
	if gw.MaxAttempts, err = envInt("DRIVER_RETRY_MAX_ATTEMPTS", gw.MaxAttempts); err != nil {
		return err
	}
	if gw.BaseDelay, err = envDuration("DRIVER_RETRY_BASE_DELAY", gw.BaseDelay); err != nil {
		return err
	}
	if gw.MaxDelay, err = envDuration("DRIVER_RETRY_MAX_DELAY", gw.MaxDelay); err != nil {
		return err
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitList(v)
	}
	c.Kafka.GroupID = envString("KAFKA_GROUP_ID", c.Kafka.GroupID)
	c.Kafka.OrdersTopic = envString("KAFKA_ORDERS_TOPIC", c.Kafka.OrdersTopic)
	c.Kafka.DepartedTopic = envString("KAFKA_DEPARTED_TOPIC", c.Kafka.DepartedTopic)
	c.Kafka.CompletedTopic = envString("KAFKA_COMPLETED_TOPIC", c.Kafka.CompletedTopic)

	if v := os.Getenv("TRACING_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid TRACING_ENABLED %q: %w", v, err)
		}
		c.Tracing.Enabled = enabled
	}
	c.Tracing.ServiceName = envString("TRACING_SERVICE_NAME", c.Tracing.ServiceName)
	return nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.OperationTimeout <= 0 {
		return fmt.Errorf("invalid operation timeout: %s", c.OperationTimeout)
	}
	gw := c.DriverGateway
	if u, err := url.Parse(gw.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid driver service url: %q", gw.BaseURL)
	}
	if gw.Timeout <= 0 {
		return fmt.Errorf("invalid driver service timeout: %s", gw.Timeout)
	}
	if gw.MaxAttempts < 1 || gw.MaxAttempts > 10 {
		return fmt.Errorf("invalid driver retry max attempts: %d", gw.MaxAttempts)
	}
	if gw.BaseDelay < 0 || gw.MaxDelay < gw.BaseDelay {
		return fmt.Errorf("invalid driver retry delays: base=%s max=%s", gw.BaseDelay, gw.MaxDelay)
	}
	if budget := gw.RetryBudget(); c.OperationTimeout < budget {
		return fmt.Errorf("operation timeout %s is shorter than driver retry budget %s", c.OperationTimeout, budget)
	}
	if c.Kafka.Enabled() && (c.Kafka.DepartedTopic == "" || c.Kafka.CompletedTopic == "") {
		return fmt.Errorf("kafka topics must not be empty")
	}
	return nil
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// RetryBudget is the worst-case time of one gateway call: every attempt times out
// and every backoff is slept in full.
func (g DriverGateway) RetryBudget() time.Duration {
	budget := time.Duration(g.MaxAttempts) * g.Timeout
	for attempt := 1; attempt < g.MaxAttempts; attempt++ {
		d := g.BaseDelay << (attempt - 1)
		if d > g.MaxDelay || d < 0 {
			d = g.MaxDelay
		}
		budget += d
	}
	return budget
}
