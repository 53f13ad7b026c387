package domain

import "strings"

// Status is the lifecycle status of a final-mile delivery.
type Status string

// List of delivery statuses
const (
	StatusPending   Status = "PENDING"
	StatusAssigned  Status = "ASSIGNED"
	StatusPickedUp  Status = "PICKED_UP"
	StatusOnTheWay  Status = "ON_THE_WAY"
	StatusDelivered Status = "DELIVERED"
	StatusFailed    Status = "FAILED"
	StatusCanceled  Status = "CANCELED"
)

var allStatuses = [...]Status{
	StatusPending, StatusAssigned, StatusPickedUp, StatusOnTheWay,
	StatusDelivered, StatusFailed, StatusCanceled,
}

// Valid checks if the Status is one of the known statuses
func (s Status) Valid() bool {
	for _, v := range allStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseStatus normalizes raw input ("on_the_way", " DELIVERED ") into a Status.
func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	return s, s.Valid()
}

func (s Status) String() string { return string(s) }
