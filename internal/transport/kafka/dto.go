package kafka

import (
	"strings"
	"time"

	"service-lastmile/internal/domain"
	"service-lastmile/internal/service/orders"
)

// EventDTO is a data transfer object for orders.Event
type EventDTO struct {
	OrderID          string     `json:"order_id"`
	Status           string     `json:"status"`
	HubID            string     `json:"hub_id,omitempty"`
	DeliveryAddress  string     `json:"delivery_address,omitempty"`
	RecipientName    string     `json:"recipient_name,omitempty"`
	RecipientContact string     `json:"recipient_contact,omitempty"`
	ExpectedTime     *time.Time `json:"expected_time,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// ToDomain converts EventDTO to orders.Event
func ToDomain(dto EventDTO) orders.Event {
	var expected *time.Time
	if dto.ExpectedTime != nil {
		t := dto.ExpectedTime.UTC()
		expected = &t
	}
	return orders.Event{
		OrderID:          strings.TrimSpace(dto.OrderID),
		Status:           strings.TrimSpace(dto.Status),
		HubID:            strings.TrimSpace(dto.HubID),
		DeliveryAddress:  strings.TrimSpace(dto.DeliveryAddress),
		RecipientName:    strings.TrimSpace(dto.RecipientName),
		RecipientContact: strings.TrimSpace(dto.RecipientContact),
		ExpectedTime:     expected,
		CreatedAt:        dto.CreatedAt,
	}
}

type departedEventDTO struct {
	EventID            string    `json:"eventId"`
	EventType          string    `json:"eventType"`
	EventTime          time.Time `json:"eventTime"`
	OrderID            string    `json:"orderId"`
	LastMileDeliveryID string    `json:"lastMileDeliveryId"`
	HubID              string    `json:"hubId"`
	DriverID           string    `json:"driverId"`
	DriverName         string    `json:"driverName"`
	DepartedAt         time.Time `json:"departedAt"`
}

func departedFromDomain(ev domain.DepartedEvent) departedEventDTO {
	return departedEventDTO{
		EventID:            ev.EventID,
		EventType:          domain.DepartedEventType,
		EventTime:          ev.EventTime.UTC(),
		OrderID:            ev.OrderID,
		LastMileDeliveryID: ev.DeliveryID,
		HubID:              ev.HubID,
		DriverID:           ev.AgentID,
		DriverName:         ev.AgentName,
		DepartedAt:         ev.DepartedAt.UTC(),
	}
}

type completedEventDTO struct {
	EventID            string    `json:"eventId"`
	EventType          string    `json:"eventType"`
	EventTime          time.Time `json:"eventTime"`
	OrderID            string    `json:"orderId"`
	LastMileDeliveryID string    `json:"lastMileDeliveryId"`
	HubID              string    `json:"hubId"`
	DriverID           string    `json:"driverId"`
	DriverName         string    `json:"driverName"`
	RecipientName      string    `json:"recipientName"`
	CompletedAt        time.Time `json:"completedAt"`
}

func completedFromDomain(ev domain.CompletedEvent) completedEventDTO {
	return completedEventDTO{
		EventID:            ev.EventID,
		EventType:          domain.CompletedEventType,
		EventTime:          ev.EventTime.UTC(),
		OrderID:            ev.OrderID,
		LastMileDeliveryID: ev.DeliveryID,
		HubID:              ev.HubID,
		DriverID:           ev.AgentID,
		DriverName:         ev.AgentName,
		RecipientName:      ev.RecipientName,
		CompletedAt:        ev.CompletedAt.UTC(),
	}
}
