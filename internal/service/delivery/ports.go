package delivery

import (
	"context"

	"service-lastmile/internal/domain"
)

// Usecase is the orchestrator surface used by the transports.
type Usecase interface {
	CreateDelivery(ctx context.Context, in CreateInput) (domain.CreateResult, error)
	RegisterDelivery(ctx context.Context, agentID, agentName string, in RegisterInput) (*domain.Delivery, error)
	AssignDriver(ctx context.Context, deliveryID string) (domain.AssignResult, error)
	UpdateStatus(ctx context.Context, deliveryID string, requested domain.Status) error
	CancelDelivery(ctx context.Context, deliveryID string) error
	SoftDeleteDelivery(ctx context.Context, deliveryID, actor string) error
	FindByOrderID(ctx context.Context, orderID string) (*domain.Delivery, error)
	GetDelivery(ctx context.Context, deliveryID string) (*domain.Delivery, error)
}

var _ Usecase = (*Service)(nil)
