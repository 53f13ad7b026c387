package domain

import "time"

// Event type tags carried in the published envelope.
const (
	DepartedEventType  = "LastMileDepartedEvent"
	CompletedEventType = "LastMileCompletedEvent"
)

// DepartedEvent announces that an agent left the hub with the parcel.
type DepartedEvent struct {
	EventID    string
	EventTime  time.Time
	OrderID    string
	DeliveryID string
	HubID      string
	AgentID    string
	AgentName  string
	DepartedAt time.Time
}

// CompletedEvent announces that the parcel reached the recipient.
type CompletedEvent struct {
	EventID       string
	EventTime     time.Time
	OrderID       string
	DeliveryID    string
	HubID         string
	AgentID       string
	AgentName     string
	RecipientName string
	CompletedAt   time.Time
}

// NewDepartedEvent builds the departed event of d.
func NewDepartedEvent(d *Delivery, eventID string, now time.Time) DepartedEvent {
	departedAt := now
	if d.DepartedAt != nil {
		departedAt = *d.DepartedAt
	}
	return DepartedEvent{
		EventID:    eventID,
		EventTime:  now,
		OrderID:    d.OrderID,
		DeliveryID: d.ID,
		HubID:      d.HubID,
		AgentID:    d.AgentID,
		AgentName:  d.AgentName,
		DepartedAt: departedAt,
	}
}

// NewCompletedEvent builds the completed event of d.
func NewCompletedEvent(d *Delivery, eventID string, now time.Time) CompletedEvent {
	completedAt := now
	if d.DeliveredAt != nil {
		completedAt = *d.DeliveredAt
	}
	return CompletedEvent{
		EventID:       eventID,
		EventTime:     now,
		OrderID:       d.OrderID,
		DeliveryID:    d.ID,
		HubID:         d.HubID,
		AgentID:       d.AgentID,
		AgentName:     d.AgentName,
		RecipientName: d.RecipientName,
		CompletedAt:   completedAt,
	}
}
