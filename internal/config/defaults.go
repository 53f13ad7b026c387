package config

import "time"

const defaultPort = 8080

const defaultLogLevel = "info"

// defaultOperationTimeout covers the default driver retry budget.
const defaultOperationTimeout = 8 * time.Second

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "lastmile",
}

var defaultDriverGateway = DriverGateway{
	BaseURL:     "http://localhost:8081",
	Timeout:     2 * time.Second,
	MaxAttempts: 3,
	BaseDelay:   100 * time.Millisecond,
	MaxDelay:    500 * time.Millisecond,
}

var defaultKafka = Kafka{
	GroupID:        "service-lastmile",
	OrdersTopic:    "order-events",
	DepartedTopic:  "last-mile-departed",
	CompletedTopic: "last-mile-completed",
}

var defaultTracing = Tracing{
	ServiceName: "service-lastmile",
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultDriverGateway returns the default driver service client settings.
func DefaultDriverGateway() DriverGateway {
	return defaultDriverGateway
}

// DefaultKafka returns the default Kafka settings. Brokers are empty, Kafka is off.
func DefaultKafka() Kafka {
	return defaultKafka
}

func defaults() *Config {
	return &Config{
		Port:             defaultPort,
		LogLevel:         defaultLogLevel,
		OperationTimeout: defaultOperationTimeout,
		DB:               defaultDB,
		DriverGateway:    defaultDriverGateway,
		Kafka:            defaultKafka,
		Tracing:          defaultTracing,
	}
}
