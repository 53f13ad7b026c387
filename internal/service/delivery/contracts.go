//go:generate mockgen -source=contracts.go -destination=delivery_mocks_test.go -package=delivery_test

package delivery

import (
	"context"

	"service-lastmile/internal/domain"
	"service-lastmile/internal/ports/deliverytx"
)

// deliveryRepository is the store: reads outside a transaction plus the tx runner.
type deliveryRepository interface {
	WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) error
	Get(ctx context.Context, id string) (*domain.Delivery, error)
	GetByOrderID(ctx context.Context, orderID string) (*domain.Delivery, error)
}

// DriverGateway allocates agents and receives advisory lifecycle notifications.
type DriverGateway interface {
	Assign(ctx context.Context, hubID, deliveryID string) (domain.AgentAssignment, error)
	NotifyComplete(ctx context.Context, agentID string, durationMinutes *int64) error
	NotifyCancel(ctx context.Context, agentID string) error
}

// EventEmitter publishes delivery lifecycle events.
type EventEmitter interface {
	PublishDeparted(ctx context.Context, ev domain.DepartedEvent) error
	PublishCompleted(ctx context.Context, ev domain.CompletedEvent) error
}
