package orders

import (
	"time"
)

// Event is a single order event. Delivery fields are set on "created" only.
type Event struct {
	OrderID          string
	Status           string
	HubID            string
	DeliveryAddress  string
	RecipientName    string
	RecipientContact string
	ExpectedTime     *time.Time
	CreatedAt        time.Time
}
