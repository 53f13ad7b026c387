package domain

import "time"

// CreateResult - result of registering a pending delivery.
type CreateResult struct {
	DeliveryID string
	OrderID    string
	HubID      string
	Status     Status
}

// AssignResult - result of assigning a driver to a delivery.
type AssignResult struct {
	DeliveryID string
	OrderID    string
	AgentID    string
	AgentName  string
	Status     Status
	AssignedAt time.Time
}
