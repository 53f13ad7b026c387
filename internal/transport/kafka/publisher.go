package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/IBM/sarama"
	"github.com/prometheus/client_golang/prometheus"

	"service-lastmile/internal/domain"
	"service-lastmile/internal/logx"
)

var newAsyncProducer = sarama.NewAsyncProducer

// PublisherConfig holds the outbound topics
type PublisherConfig struct {
	Brokers        []string
	DepartedTopic  string
	CompletedTopic string
}

// Publisher emits delivery events through a sarama async producer.
// Delivery results are observed in background goroutines.
type Publisher struct {
	producer  sarama.AsyncProducer
	logger    logx.Logger
	published *prometheus.CounterVec
	cfg       PublisherConfig

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewPublisher connects a producer to the brokers. It returns nil when no brokers are configured.
func NewPublisher(logger logx.Logger, cfg PublisherConfig, published *prometheus.CounterVec) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}
	producer, err := newAsyncProducer(cfg.Brokers, ProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return newPublisher(producer, logger, cfg, published), nil
}

// ProducerConfig is the sarama configuration used by the publisher
func ProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Partitioner = sarama.NewHashPartitioner
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	return cfg
}

func newPublisher(producer sarama.AsyncProducer, logger logx.Logger, cfg PublisherConfig, published *prometheus.CounterVec) *Publisher {
	p := &Publisher{
		producer:  producer,
		logger:    logger,
		published: published,
		cfg:       cfg,
	}
	p.wg.Add(2)
	go p.watchSuccesses()
	go p.watchErrors()
	return p
}

// PublishDeparted enqueues a departed event keyed by order id
func (p *Publisher) PublishDeparted(ctx context.Context, ev domain.DepartedEvent) error {
	return p.publish(ctx, p.cfg.DepartedTopic, domain.DepartedEventType, ev.OrderID, departedFromDomain(ev))
}

// PublishCompleted enqueues a completed event keyed by order id
func (p *Publisher) PublishCompleted(ctx context.Context, ev domain.CompletedEvent) error {
	return p.publish(ctx, p.cfg.CompletedTopic, domain.CompletedEventType, ev.OrderID, completedFromDomain(ev))
}

func (p *Publisher) publish(ctx context.Context, topic, eventType, key string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", eventType, err)
	}
	msg := &sarama.ProducerMessage{
		Topic:    topic,
		Key:      sarama.StringEncoder(key),
		Value:    sarama.ByteEncoder(b),
		Metadata: eventType,
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.producer.Input() <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Publisher) watchSuccesses() {
	defer p.wg.Done()
	for msg := range p.producer.Successes() {
		eventType, _ := msg.Metadata.(string)
		p.count(eventType, "ok")
		p.logger.Debug("kafka event published",
			logx.String("event_type", eventType),
			logx.String("topic", msg.Topic),
			logx.Int("partition", int(msg.Partition)),
			logx.Int64("offset", msg.Offset),
		)
	}
}

func (p *Publisher) watchErrors() {
	defer p.wg.Done()
	for perr := range p.producer.Errors() {
		var eventType, topic string
		if perr.Msg != nil {
			eventType, _ = perr.Msg.Metadata.(string)
			topic = perr.Msg.Topic
		}
		p.count(eventType, "error")
		p.logger.Error("kafka event publish failed",
			logx.String("event_type", eventType),
			logx.String("topic", topic),
			logx.Err(perr.Err),
		)
	}
}

func (p *Publisher) count(eventType, result string) {
	if p.published == nil {
		return
	}
	p.published.WithLabelValues(eventType, result).Inc()
}

// Close flushes buffered messages and stops the producer
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	p.producer.AsyncClose()
	p.wg.Wait()
	return nil
}

// NopPublisher discards events when Kafka is not configured
type NopPublisher struct {
	logger logx.Logger
}

// NewNopPublisher returns a publisher that only logs
func NewNopPublisher(logger logx.Logger) NopPublisher {
	return NopPublisher{logger: logger}
}

// PublishDeparted logs and drops the event
func (n NopPublisher) PublishDeparted(_ context.Context, ev domain.DepartedEvent) error {
	n.logger.Debug("event publishing disabled",
		logx.String("event_type", domain.DepartedEventType),
		logx.String("order_id", ev.OrderID),
	)
	return nil
}

// PublishCompleted logs and drops the event
func (n NopPublisher) PublishCompleted(_ context.Context, ev domain.CompletedEvent) error {
	n.logger.Debug("event publishing disabled",
		logx.String("event_type", domain.CompletedEventType),
		logx.String("order_id", ev.OrderID),
	)
	return nil
}
