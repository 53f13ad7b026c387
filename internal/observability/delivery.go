package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"service-lastmile/internal/domain"
	"service-lastmile/internal/service/delivery"
)

const tracerName = "service-lastmile/internal/observability"

// TracedDeliveries decorates the delivery orchestrator with one span per operation.
type TracedDeliveries struct {
	next   delivery.Usecase
	tracer trace.Tracer
}

// NewTracedDeliveries wraps next with spans from tp.
func NewTracedDeliveries(next delivery.Usecase, tp trace.TracerProvider) *TracedDeliveries {
	return &TracedDeliveries{next: next, tracer: tp.Tracer(tracerName)}
}

var _ delivery.Usecase = (*TracedDeliveries)(nil)

func (t *TracedDeliveries) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "Delivery."+op, trace.WithAttributes(attrs...))
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// CreateDelivery implements delivery.Usecase
func (t *TracedDeliveries) CreateDelivery(ctx context.Context, in delivery.CreateInput) (res domain.CreateResult, err error) {
	ctx, span := t.start(ctx, "CreateDelivery", attribute.String("order.id", in.OrderID))
	defer func() { finish(span, err) }()

	res, err = t.next.CreateDelivery(ctx, in)
	span.SetAttributes(attribute.String("delivery.id", res.DeliveryID))
	return res, err
}

// RegisterDelivery implements delivery.Usecase
func (t *TracedDeliveries) RegisterDelivery(ctx context.Context, agentID, agentName string, in delivery.RegisterInput) (d *domain.Delivery, err error) {
	ctx, span := t.start(ctx, "RegisterDelivery",
		attribute.String("order.id", in.OrderID),
		attribute.String("agent.id", agentID),
	)
	defer func() { finish(span, err) }()

	return t.next.RegisterDelivery(ctx, agentID, agentName, in)
}

// AssignDriver implements delivery.Usecase
func (t *TracedDeliveries) AssignDriver(ctx context.Context, deliveryID string) (res domain.AssignResult, err error) {
	ctx, span := t.start(ctx, "AssignDriver", attribute.String("delivery.id", deliveryID))
	defer func() { finish(span, err) }()

	res, err = t.next.AssignDriver(ctx, deliveryID)
	if err == nil {
		span.SetAttributes(attribute.String("agent.id", res.AgentID))
	}
	return res, err
}

// UpdateStatus implements delivery.Usecase
func (t *TracedDeliveries) UpdateStatus(ctx context.Context, deliveryID string, requested domain.Status) (err error) {
	ctx, span := t.start(ctx, "UpdateStatus",
		attribute.String("delivery.id", deliveryID),
		attribute.String("delivery.status", requested.String()),
	)
	defer func() { finish(span, err) }()

	return t.next.UpdateStatus(ctx, deliveryID, requested)
}

// CancelDelivery implements delivery.Usecase
func (t *TracedDeliveries) CancelDelivery(ctx context.Context, deliveryID string) (err error) {
	ctx, span := t.start(ctx, "CancelDelivery", attribute.String("delivery.id", deliveryID))
	defer func() { finish(span, err) }()

	return t.next.CancelDelivery(ctx, deliveryID)
}

// SoftDeleteDelivery implements delivery.Usecase
func (t *TracedDeliveries) SoftDeleteDelivery(ctx context.Context, deliveryID, actor string) (err error) {
	ctx, span := t.start(ctx, "SoftDeleteDelivery", attribute.String("delivery.id", deliveryID))
	defer func() { finish(span, err) }()

	return t.next.SoftDeleteDelivery(ctx, deliveryID, actor)
}

// FindByOrderID implements delivery.Usecase
func (t *TracedDeliveries) FindByOrderID(ctx context.Context, orderID string) (d *domain.Delivery, err error) {
	ctx, span := t.start(ctx, "FindByOrderID", attribute.String("order.id", orderID))
	defer func() { finish(span, err) }()

	return t.next.FindByOrderID(ctx, orderID)
}

// GetDelivery implements delivery.Usecase
func (t *TracedDeliveries) GetDelivery(ctx context.Context, deliveryID string) (d *domain.Delivery, err error) {
	ctx, span := t.start(ctx, "GetDelivery", attribute.String("delivery.id", deliveryID))
	defer func() { finish(span, err) }()

	return t.next.GetDelivery(ctx, deliveryID)
}
