package driver

import (
	"context"
	"time"

	"service-lastmile/internal/apperr"
	"service-lastmile/internal/domain"
	"service-lastmile/internal/logx"
)

type gateway interface {
	Assign(ctx context.Context, hubID, deliveryID string) (domain.AgentAssignment, error)
	NotifyComplete(ctx context.Context, agentID string, durationMinutes *int64) error
	NotifyCancel(ctx context.Context, agentID string) error
}

type counter interface {
	Inc()
}

// RetryConfig describes RetryingGateway behaviour
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingGateway retries transient driver service failures with exponential backoff
type RetryingGateway struct {
	next    gateway
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingGateway wraps next; it returns nil when next is nil
func NewRetryingGateway(next gateway, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingGateway {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryingGateway{next: next, logger: logger, retries: retries, cfg: cfg}
}

// Assign implements the driver gateway
func (g *RetryingGateway) Assign(ctx context.Context, hubID, deliveryID string) (domain.AgentAssignment, error) {
	return retry(ctx, g, "Assign", func(ctx context.Context) (domain.AgentAssignment, error) {
		return g.next.Assign(ctx, hubID, deliveryID)
	})
}

// NotifyComplete implements the driver gateway
func (g *RetryingGateway) NotifyComplete(ctx context.Context, agentID string, durationMinutes *int64) error {
	_, err := retry(ctx, g, "NotifyComplete", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, g.next.NotifyComplete(ctx, agentID, durationMinutes)
	})
	return err
}

// NotifyCancel implements the driver gateway
func (g *RetryingGateway) NotifyCancel(ctx context.Context, agentID string) error {
	_, err := retry(ctx, g, "NotifyCancel", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, g.next.NotifyCancel(ctx, agentID)
	})
	return err
}

func retry[T any](ctx context.Context, g *RetryingGateway, method string, call func(context.Context) (T, error)) (T, error) {
	var (
		res     T
		lastErr error
	)
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		out, err := call(ctx)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("driver gateway retry",
			logx.String("method", method),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return res, lastErr
}

// только недоступность сервиса имеет смысл повторять
func isRetryable(err error) bool {
	kind, ok := apperr.GatewayKindOf(err)
	return ok && kind == apperr.GatewayUnavailable
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
