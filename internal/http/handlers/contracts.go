package handlers

import (
	"context"

	"service-lastmile/internal/domain"
	"service-lastmile/internal/service/delivery"
)

type deliveryUsecase interface {
	CreateDelivery(ctx context.Context, in delivery.CreateInput) (domain.CreateResult, error)
	RegisterDelivery(ctx context.Context, agentID, agentName string, in delivery.RegisterInput) (*domain.Delivery, error)
	AssignDriver(ctx context.Context, deliveryID string) (domain.AssignResult, error)
	UpdateStatus(ctx context.Context, deliveryID string, requested domain.Status) error
	CancelDelivery(ctx context.Context, deliveryID string) error
	SoftDeleteDelivery(ctx context.Context, deliveryID, actor string) error
	FindByOrderID(ctx context.Context, orderID string) (*domain.Delivery, error)
	GetDelivery(ctx context.Context, deliveryID string) (*domain.Delivery, error)
}

// NewDeliveryUsecase wires the (traced) orchestrator into a deliveryUsecase.
func NewDeliveryUsecase(uc delivery.Usecase) deliveryUsecase {
	return uc
}
