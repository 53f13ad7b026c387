//go:generate mockgen -source=contracts.go -destination=orders_mocks_test.go -package=orders_test

package orders

import (
	"context"

	"service-lastmile/internal/domain"
	"service-lastmile/internal/service/delivery"
)

// DeliveryPort abstracts the subset of delivery service operations
// needed by orders Processor when handling order events
type DeliveryPort interface {
	CreateDelivery(ctx context.Context, in delivery.CreateInput) (domain.CreateResult, error)
	FindByOrderID(ctx context.Context, orderID string) (*domain.Delivery, error)
	CancelDelivery(ctx context.Context, deliveryID string) error
}
