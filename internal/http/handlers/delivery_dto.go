package handlers

import (
	"time"

	"service-lastmile/internal/domain"
	"service-lastmile/internal/jsontime"
	"service-lastmile/internal/service/delivery"
)

type createDeliveryRequest struct {
	OrderID          string         `json:"orderId"`
	HubID            string         `json:"hubId"`
	DeliveryAddress  string         `json:"deliveryAddress"`
	RecipientName    string         `json:"recipientName"`
	RecipientContact string         `json:"recipientContact"`
	RecipientSlackID string         `json:"recipientSlackId"`
	ExpectedTime     *jsontime.Time `json:"expectedTime,omitempty"`
}

func (r createDeliveryRequest) details() domain.Details {
	contact := r.RecipientContact
	if contact == "" {
		contact = r.RecipientSlackID
	}
	return domain.Details{
		OrderID:          r.OrderID,
		HubID:            r.HubID,
		DeliveryAddress:  r.DeliveryAddress,
		RecipientName:    r.RecipientName,
		RecipientContact: contact,
		ExpectedTime:     r.ExpectedTime.Ptr(),
	}
}

func (r createDeliveryRequest) toCreateInput() delivery.CreateInput {
	return delivery.CreateInput(r.details())
}

func (r createDeliveryRequest) toRegisterInput() delivery.RegisterInput {
	return delivery.RegisterInput(r.details())
}

type createDeliveryResponse struct {
	DeliveryID string `json:"deliveryId"`
	OrderID    string `json:"orderId"`
	HubID      string `json:"hubId"`
	Status     string `json:"status"`
}

func createResultToResponse(res domain.CreateResult) createDeliveryResponse {
	return createDeliveryResponse{
		DeliveryID: res.DeliveryID,
		OrderID:    res.OrderID,
		HubID:      res.HubID,
		Status:     res.Status.String(),
	}
}

type assignDriverResponse struct {
	DeliveryID string    `json:"deliveryId"`
	OrderID    string    `json:"orderId"`
	DriverID   string    `json:"driverId"`
	DriverName string    `json:"driverName"`
	Status     string    `json:"status"`
	AssignedAt time.Time `json:"assignedAt"`
}

func assignResultToResponse(res domain.AssignResult) assignDriverResponse {
	return assignDriverResponse{
		DeliveryID: res.DeliveryID,
		OrderID:    res.OrderID,
		DriverID:   res.AgentID,
		DriverName: res.AgentName,
		Status:     res.Status.String(),
		AssignedAt: res.AssignedAt.UTC(),
	}
}

type updateStatusRequest struct {
	NewStatus string `json:"newStatus"`
}

type deliveryResponse struct {
	ID               string     `json:"id"`
	OrderID          string     `json:"orderId"`
	HubID            string     `json:"hubId"`
	DriverID         string     `json:"driverId,omitempty"`
	DriverName       string     `json:"driverName,omitempty"`
	Status           string     `json:"status"`
	DeliveryAddress  string     `json:"deliveryAddress"`
	RecipientName    string     `json:"recipientName"`
	RecipientContact string     `json:"recipientContact,omitempty"`
	ExpectedTime     *time.Time `json:"expectedTime,omitempty"`
	StartedAt        *time.Time `json:"startedAt,omitempty"`
	DepartedAt       *time.Time `json:"departedAt,omitempty"`
	DeliveredAt      *time.Time `json:"deliveredAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func deliveryToResponse(d *domain.Delivery) deliveryResponse {
	return deliveryResponse{
		ID:               d.ID,
		OrderID:          d.OrderID,
		HubID:            d.HubID,
		DriverID:         d.AgentID,
		DriverName:       d.AgentName,
		Status:           d.Status.String(),
		DeliveryAddress:  d.DeliveryAddress,
		RecipientName:    d.RecipientName,
		RecipientContact: d.RecipientContact,
		ExpectedTime:     utcPtr(d.ExpectedTime),
		StartedAt:        utcPtr(d.StartedAt),
		DepartedAt:       utcPtr(d.DepartedAt),
		DeliveredAt:      utcPtr(d.DeliveredAt),
		CreatedAt:        d.CreatedAt.UTC(),
		UpdatedAt:        d.UpdatedAt.UTC(),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
