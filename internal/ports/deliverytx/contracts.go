package deliverytx

import (
	"context"

	"service-lastmile/internal/domain"
)

// Repository is the delivery store as seen inside a transaction.
// Get and GetByOrderID lock the returned row until the transaction ends.
// Both return a nil delivery when nothing matches.
type Repository interface {
	Get(ctx context.Context, id string) (*domain.Delivery, error)
	GetByOrderID(ctx context.Context, orderID string) (*domain.Delivery, error)
	Save(ctx context.Context, d *domain.Delivery) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
