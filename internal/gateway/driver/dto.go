package driver

import "service-lastmile/internal/jsontime"

type assignRequest struct {
	HubID      string `json:"hubId"`
	DeliveryID string `json:"deliveryId"`
}

type assignResponse struct {
	DriverID   string         `json:"driverId"`
	UserID     string         `json:"userId"`
	HubID      string         `json:"hubId"`
	DriverName string         `json:"driverName"`
	Status     string         `json:"status"`
	AssignedAt *jsontime.Time `json:"assignedAt"`
}

type completeRequest struct {
	DeliveryTimeMin *int64 `json:"deliveryTimeMin,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
