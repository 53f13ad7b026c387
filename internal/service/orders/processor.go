package orders

import (
	"context"
	"errors"

	"service-lastmile/internal/apperr"
	"service-lastmile/internal/logx"
	"service-lastmile/internal/service/delivery"
)

// Processor processes orders events
type Processor struct {
	delivery DeliveryPort
	logger   logx.Logger
	factory  *actionFactory
}

// NewProcessor creates a new orders.Processor
func NewProcessor(deliverySvc DeliveryPort, logger logx.Logger) *Processor {
	p := &Processor{
		delivery: deliverySvc,
		logger:   logger,
	}
	p.factory = newActionFactory(p.onCreated, p.onCanceled)
	return p
}

// Handle processes a single orders.Event. Unknown statuses are ignored.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if p.factory == nil {
		return nil
	}
	fn, ok := p.factory.get(e.Status)
	if !ok {
		p.logger.Debug("order event ignored",
			logx.String("order_id", e.OrderID),
			logx.String("status", e.Status),
		)
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onCreated(ctx context.Context, e Event) error {
	_, err := p.delivery.CreateDelivery(ctx, delivery.CreateInput{
		OrderID:          e.OrderID,
		HubID:            e.HubID,
		DeliveryAddress:  e.DeliveryAddress,
		RecipientName:    e.RecipientName,
		RecipientContact: e.RecipientContact,
		ExpectedTime:     e.ExpectedTime,
	})
	// повторное событие по тому же заказу
	if errors.Is(err, apperr.ErrAlreadyExists) {
		return nil
	}
	return err
}

func (p *Processor) onCanceled(ctx context.Context, e Event) error {
	d, err := p.delivery.FindByOrderID(ctx, e.OrderID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	err = p.delivery.CancelDelivery(ctx, d.ID)
	switch {
	case errors.Is(err, apperr.ErrNotFound),
		errors.Is(err, apperr.ErrAlreadyCanceled),
		errors.Is(err, apperr.ErrAlreadyCompleted):
		return nil
	default:
		return err
	}
}
