package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"service-lastmile/internal/apperr"
)

// DeletionMarker records a soft deletion.
type DeletionMarker struct {
	IsDeleted bool
	DeletedAt *time.Time
	DeletedBy string
}

// Details is the delivery target metadata fixed at creation.
type Details struct {
	OrderID          string
	HubID            string
	DeliveryAddress  string
	RecipientName    string
	RecipientContact string
	ExpectedTime     *time.Time
}

// Delivery is a single final-mile delivery record.
type Delivery struct {
	ID               string
	OrderID          string
	HubID            string
	AgentID          string
	AgentName        string
	Status           Status
	DeliveryAddress  string
	RecipientName    string
	RecipientContact string
	ExpectedTime     *time.Time
	StartedAt        *time.Time
	DepartedAt       *time.Time
	DeliveredAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletionMarker
}

// AgentAssignment is the agent confirmed by the driver service.
type AgentAssignment struct {
	AgentID    string
	AgentName  string
	AssignedAt time.Time
}

func (d Details) normalize() (Details, error) {
	d.OrderID = strings.TrimSpace(d.OrderID)
	d.HubID = strings.TrimSpace(d.HubID)
	d.DeliveryAddress = strings.TrimSpace(d.DeliveryAddress)
	d.RecipientName = strings.TrimSpace(d.RecipientName)
	d.RecipientContact = strings.TrimSpace(d.RecipientContact)

	switch {
	case d.OrderID == "":
		return d, fmt.Errorf("%w: order id is required", apperr.ErrInvalid)
	case d.HubID == "":
		return d, fmt.Errorf("%w: hub id is required", apperr.ErrInvalid)
	case d.DeliveryAddress == "":
		return d, fmt.Errorf("%w: delivery address is required", apperr.ErrInvalid)
	case d.RecipientName == "":
		return d, fmt.Errorf("%w: recipient name is required", apperr.ErrInvalid)
	}
	return d, nil
}

// NewPending creates a delivery waiting for an agent. The identifier is generated here.
func NewPending(details Details, now time.Time) (*Delivery, error) {
	details, err := details.normalize()
	if err != nil {
		return nil, err
	}
	return &Delivery{
		ID:               uuid.NewString(),
		OrderID:          details.OrderID,
		HubID:            details.HubID,
		Status:           StatusPending,
		DeliveryAddress:  details.DeliveryAddress,
		RecipientName:    details.RecipientName,
		RecipientContact: details.RecipientContact,
		ExpectedTime:     details.ExpectedTime,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// NewPickedUp creates a delivery already carried by a known agent.
func NewPickedUp(details Details, agentID, agentName string, now time.Time) (*Delivery, error) {
	agentID = strings.TrimSpace(agentID)
	if agentID == "" {
		return nil, fmt.Errorf("%w: agent id is required", apperr.ErrInvalid)
	}
	d, err := NewPending(details, now)
	if err != nil {
		return nil, err
	}
	d.AgentID = agentID
	d.AgentName = strings.TrimSpace(agentName)
	d.Status = StatusPickedUp
	d.StartedAt = timePtr(now)
	return d, nil
}

// HasAgent reports whether an agent is assigned.
func (d *Delivery) HasAgent() bool { return d.AgentID != "" }

// Assign records the agent and moves PENDING -> ASSIGNED.
func (d *Delivery) Assign(agentID, agentName string, now time.Time) error {
	agentID = strings.TrimSpace(agentID)
	if agentID == "" {
		return fmt.Errorf("%w: agent id is required", apperr.ErrInvalid)
	}
	next, err := Next(d.Status, ActionAssign)
	if err != nil {
		return err
	}
	d.AgentID = agentID
	d.AgentName = strings.TrimSpace(agentName)
	d.Status = next
	d.UpdatedAt = now
	return nil
}

// PickUp moves the delivery to PICKED_UP. StartedAt keeps its first value.
func (d *Delivery) PickUp(now time.Time) error {
	next, err := Next(d.Status, ActionPickUp)
	if err != nil {
		return err
	}
	if !d.HasAgent() {
		return &TransitionError{From: d.Status, Action: ActionPickUp, To: StatusPickedUp}
	}
	if next == d.Status {
		return nil
	}
	d.Status = next
	if d.StartedAt == nil {
		d.StartedAt = timePtr(now)
	}
	d.UpdatedAt = now
	return nil
}

// Depart moves the delivery to ON_THE_WAY. DepartedAt keeps its first value.
func (d *Delivery) Depart(now time.Time) error {
	next, err := Next(d.Status, ActionDepart)
	if err != nil {
		return err
	}
	if next == d.Status {
		return nil
	}
	d.Status = next
	if d.DepartedAt == nil {
		d.DepartedAt = timePtr(now)
	}
	d.UpdatedAt = now
	return nil
}

// Deliver moves the delivery to DELIVERED.
func (d *Delivery) Deliver(now time.Time) error {
	next, err := Next(d.Status, ActionDeliver)
	if err != nil {
		return err
	}
	d.Status = next
	d.DeliveredAt = timePtr(now)
	d.UpdatedAt = now
	return nil
}

// Fail moves the delivery to FAILED. DeliveredAt holds the terminal timestamp.
func (d *Delivery) Fail(now time.Time) error {
	next, err := Next(d.Status, ActionFail)
	if err != nil {
		return err
	}
	d.Status = next
	d.DeliveredAt = timePtr(now)
	d.UpdatedAt = now
	return nil
}

// Cancel moves the delivery to CANCELED.
func (d *Delivery) Cancel(now time.Time) error {
	next, err := Next(d.Status, ActionCancel)
	if err != nil {
		return err
	}
	d.Status = next
	d.UpdatedAt = now
	return nil
}

// Apply runs the named action. Assign is excluded, it needs an agent.
func (d *Delivery) Apply(action Action, now time.Time) error {
	switch action {
	case ActionPickUp:
		return d.PickUp(now)
	case ActionDepart:
		return d.Depart(now)
	case ActionDeliver:
		return d.Deliver(now)
	case ActionFail:
		return d.Fail(now)
	case ActionCancel:
		return d.Cancel(now)
	default:
		return &TransitionError{From: d.Status, Action: action, To: targets[action]}
	}
}

// SoftDelete marks the delivery as deleted by actor. A repeated call keeps the first marker.
func (d *Delivery) SoftDelete(actor string, now time.Time) error {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return fmt.Errorf("%w: actor is required", apperr.ErrInvalid)
	}
	if err := CanSoftDelete(d.Status); err != nil {
		return err
	}
	if d.IsDeleted {
		return nil
	}
	d.DeletionMarker = DeletionMarker{
		IsDeleted: true,
		DeletedAt: timePtr(now),
		DeletedBy: actor,
	}
	d.UpdatedAt = now
	return nil
}

// CompletionMinutes is the elapsed delivery time reported to the driver service:
// departure to delivery, else pickup to delivery, else unknown.
func (d *Delivery) CompletionMinutes() *int64 {
	if d.DeliveredAt == nil {
		return nil
	}
	from := d.DepartedAt
	if from == nil {
		from = d.StartedAt
	}
	if from == nil {
		return nil
	}
	minutes := int64(d.DeliveredAt.Sub(*from) / time.Minute)
	return &minutes
}

func timePtr(t time.Time) *time.Time { return &t }
