package delivery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"service-lastmile/internal/apperr"
	"service-lastmile/internal/domain"
	"service-lastmile/internal/logx"
	"service-lastmile/internal/ports/deliverytx"
)

const (
	defaultOperationTimeout = 3 * time.Second
	defaultAdvisoryTimeout  = 10 * time.Second
)

// Service - orchestrates the final-mile delivery lifecycle.
type Service struct {
	repo             deliveryRepository
	gateway          DriverGateway
	events           EventEmitter
	operationTimeout time.Duration
	advisoryTimeout  time.Duration
	logger           logx.Logger
	failures         *prometheus.CounterVec
	now              func() time.Time
	newID            func() string
}

// NewDeliveryService - creates a new delivery Service. failures may be nil.
func NewDeliveryService(
	r deliveryRepository,
	gw DriverGateway,
	events EventEmitter,
	timeout time.Duration,
	logger logx.Logger,
	failures *prometheus.CounterVec,
) *Service {
	if timeout <= 0 {
		timeout = defaultOperationTimeout
	}
	return &Service{
		repo:             r,
		gateway:          gw,
		events:           events,
		operationTimeout: timeout,
		advisoryTimeout:  defaultAdvisoryTimeout,
		logger:           logger,
		failures:         failures,
		now:              func() time.Time { return time.Now().UTC() },
		newID:            uuid.NewString,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// CreateDelivery registers a PENDING delivery for an order.
func (s *Service) CreateDelivery(ctx context.Context, in CreateInput) (domain.CreateResult, error) {
	d, err := domain.NewPending(domain.Details(in), s.now())
	if err != nil {
		return domain.CreateResult{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.insert(ctx, d); err != nil {
		return domain.CreateResult{}, err
	}

	s.logger.Info("delivery created",
		logx.String("event", "delivery_created"),
		logx.String("delivery_id", d.ID),
		logx.String("order_id", d.OrderID),
		logx.String("hub_id", d.HubID),
	)

	return domain.CreateResult{
		DeliveryID: d.ID,
		OrderID:    d.OrderID,
		HubID:      d.HubID,
		Status:     d.Status,
	}, nil
}

// RegisterDelivery records a delivery already picked up by a known agent.
func (s *Service) RegisterDelivery(ctx context.Context, agentID, agentName string, in RegisterInput) (*domain.Delivery, error) {
	d, err := domain.NewPickedUp(domain.Details(in), agentID, agentName, s.now())
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.insert(ctx, d); err != nil {
		return nil, err
	}

	s.logger.Info("delivery registered",
		logx.String("event", "delivery_registered"),
		logx.String("delivery_id", d.ID),
		logx.String("order_id", d.OrderID),
		logx.String("agent_id", d.AgentID),
	)
	return d, nil
}

func (s *Service) insert(ctx context.Context, d *domain.Delivery) error {
	return s.repo.WithTx(ctx, func(tx deliverytx.Repository) error {
		existing, err := tx.GetByOrderID(ctx, d.OrderID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: order %s", apperr.ErrAlreadyExists, d.OrderID)
		}
		return tx.Save(ctx, d)
	})
}

// AssignDriver asks the driver service for an agent and dispatches the delivery.
// The departed event is published once the new state is committed.
func (s *Service) AssignDriver(ctx context.Context, deliveryID string) (domain.AssignResult, error) {
	deliveryID, err := requireID(deliveryID)
	if err != nil {
		return domain.AssignResult{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		d          *domain.Delivery
		assignment domain.AgentAssignment
	)
	err = s.repo.WithTx(ctx, func(tx deliverytx.Repository) error {
		cur, err := loadActive(ctx, tx, deliveryID)
		if err != nil {
			return err
		}
		if cur.HasAgent() {
			return fmt.Errorf("%w: delivery %s", apperr.ErrAlreadyAssigned, cur.ID)
		}
		if _, err := domain.Next(cur.Status, domain.ActionAssign); err != nil {
			return err
		}

		assignment, err = s.gateway.Assign(ctx, cur.HubID, cur.ID)
		if err != nil {
			return fmt.Errorf("assign driver: %w", err)
		}

		now := s.now()
		if err := cur.Assign(assignment.AgentID, assignment.AgentName, now); err != nil {
			return err
		}
		if err := cur.PickUp(now); err != nil {
			return err
		}
		if err := cur.Depart(now); err != nil {
			return err
		}
		if err := tx.Save(ctx, cur); err != nil {
			return err
		}
		d = cur
		return nil
	})
	if err != nil {
		return domain.AssignResult{}, err
	}

	s.logger.Info("driver assigned",
		logx.String("event", "driver_assigned"),
		logx.String("delivery_id", d.ID),
		logx.String("order_id", d.OrderID),
		logx.String("agent_id", d.AgentID),
	)

	ev := domain.NewDepartedEvent(d, s.newID(), s.now())
	s.bestEffort(ctx, "publish_departed", d, func(ctx context.Context) error {
		return s.events.PublishDeparted(ctx, ev)
	})

	return domain.AssignResult{
		DeliveryID: d.ID,
		OrderID:    d.OrderID,
		AgentID:    d.AgentID,
		AgentName:  d.AgentName,
		Status:     d.Status,
		AssignedAt: assignment.AssignedAt,
	}, nil
}

// UpdateStatus moves the delivery to the requested status.
// PENDING and ASSIGNED cannot be requested directly.
func (s *Service) UpdateStatus(ctx context.Context, deliveryID string, requested domain.Status) error {
	deliveryID, err := requireID(deliveryID)
	if err != nil {
		return err
	}
	if !requested.Valid() {
		return fmt.Errorf("%w: unknown status %q", apperr.ErrInvalid, requested)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		d    *domain.Delivery
		from domain.Status
	)
	err = s.repo.WithTx(ctx, func(tx deliverytx.Repository) error {
		cur, err := loadActive(ctx, tx, deliveryID)
		if err != nil {
			return err
		}
		action, ok := domain.ActionFor(requested)
		if !ok {
			return &domain.TransitionError{From: cur.Status, Action: "set_status", To: requested}
		}
		from = cur.Status
		if err := cur.Apply(action, s.now()); err != nil {
			return err
		}
		if err := tx.Save(ctx, cur); err != nil {
			return err
		}
		d = cur
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("delivery status updated",
		logx.String("event", "delivery_status_updated"),
		logx.String("delivery_id", d.ID),
		logx.String("order_id", d.OrderID),
		logx.String("from", from.String()),
		logx.String("to", d.Status.String()),
	)

	switch d.Status {
	case domain.StatusDelivered:
		s.afterDelivered(ctx, d)
	case domain.StatusCanceled:
		s.releaseAgent(ctx, d)
	}
	return nil
}

func (s *Service) afterDelivered(ctx context.Context, d *domain.Delivery) {
	minutes := d.CompletionMinutes()
	s.bestEffort(ctx, "notify_complete", d, func(ctx context.Context) error {
		return s.gateway.NotifyComplete(ctx, d.AgentID, minutes)
	})

	ev := domain.NewCompletedEvent(d, s.newID(), s.now())
	s.bestEffort(ctx, "publish_completed", d, func(ctx context.Context) error {
		return s.events.PublishCompleted(ctx, ev)
	})
}

func (s *Service) releaseAgent(ctx context.Context, d *domain.Delivery) {
	if !d.HasAgent() {
		return
	}
	s.bestEffort(ctx, "notify_cancel", d, func(ctx context.Context) error {
		return s.gateway.NotifyCancel(ctx, d.AgentID)
	})
}

// CancelDelivery cancels a delivery that is neither delivered nor canceled.
// The agent, if any, is released after the cancellation is committed.
func (s *Service) CancelDelivery(ctx context.Context, deliveryID string) error {
	deliveryID, err := requireID(deliveryID)
	if err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var d *domain.Delivery
	err = s.repo.WithTx(ctx, func(tx deliverytx.Repository) error {
		cur, err := loadActive(ctx, tx, deliveryID)
		if err != nil {
			return err
		}
		switch cur.Status {
		case domain.StatusDelivered:
			return fmt.Errorf("%w: delivery %s", apperr.ErrAlreadyCompleted, cur.ID)
		case domain.StatusCanceled:
			return fmt.Errorf("%w: delivery %s", apperr.ErrAlreadyCanceled, cur.ID)
		}
		if err := cur.Cancel(s.now()); err != nil {
			return err
		}
		if err := tx.Save(ctx, cur); err != nil {
			return err
		}
		d = cur
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("delivery canceled",
		logx.String("event", "delivery_canceled"),
		logx.String("delivery_id", d.ID),
		logx.String("order_id", d.OrderID),
	)

	s.releaseAgent(ctx, d)
	return nil
}

// SoftDeleteDelivery marks a delivery deleted by actor. Delivered records cannot be deleted.
func (s *Service) SoftDeleteDelivery(ctx context.Context, deliveryID, actor string) error {
	deliveryID, err := requireID(deliveryID)
	if err != nil {
		return err
	}
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return fmt.Errorf("%w: actor is required", apperr.ErrInvalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var d *domain.Delivery
	err = s.repo.WithTx(ctx, func(tx deliverytx.Repository) error {
		cur, err := loadActive(ctx, tx, deliveryID)
		if err != nil {
			return err
		}
		if err := cur.SoftDelete(actor, s.now()); err != nil {
			return err
		}
		if err := tx.Save(ctx, cur); err != nil {
			return err
		}
		d = cur
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("delivery soft deleted",
		logx.String("event", "delivery_soft_deleted"),
		logx.String("delivery_id", d.ID),
		logx.String("order_id", d.OrderID),
		logx.String("deleted_by", actor),
	)
	return nil
}

// FindByOrderID returns the live delivery of an order.
func (s *Service) FindByOrderID(ctx context.Context, orderID string) (*domain.Delivery, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, fmt.Errorf("%w: order id is required", apperr.ErrInvalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if d == nil || d.IsDeleted {
		return nil, fmt.Errorf("%w: order %s", apperr.ErrNotFound, orderID)
	}
	return d, nil
}

// GetDelivery returns a live delivery by id.
func (s *Service) GetDelivery(ctx context.Context, deliveryID string) (*domain.Delivery, error) {
	deliveryID, err := requireID(deliveryID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.repo.Get(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if d == nil || d.IsDeleted {
		return nil, fmt.Errorf("%w: delivery %s", apperr.ErrNotFound, deliveryID)
	}
	return d, nil
}

// bestEffort runs an advisory call. Its failure is logged and counted, never returned.
// The call keeps the values of ctx but not its cancellation: it has its own deadline
// and outlives the orchestration call that started it.
func (s *Service) bestEffort(ctx context.Context, op string, d *domain.Delivery, fn func(ctx context.Context) error) {
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.advisoryTimeout)
	defer cancel()

	err := fn(callCtx)
	if err == nil {
		return
	}
	s.logger.Warn("best-effort call failed",
		logx.String("event", op),
		logx.String("delivery_id", d.ID),
		logx.String("order_id", d.OrderID),
		logx.Err(err),
	)
	if s.failures != nil {
		s.failures.WithLabelValues(op).Inc()
	}
}

// loadActive locks the row; soft-deleted records count as missing.
func loadActive(ctx context.Context, tx deliverytx.Repository, id string) (*domain.Delivery, error) {
	d, err := tx.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil || d.IsDeleted {
		return nil, fmt.Errorf("%w: delivery %s", apperr.ErrNotFound, id)
	}
	return d, nil
}

func requireID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", fmt.Errorf("%w: delivery id is required", apperr.ErrInvalid)
	}
	return id, nil
}
