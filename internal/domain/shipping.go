package domain

import "time"

// ShippingDetails is the durable record of where a completed checkout ships.
type ShippingDetails struct {
	FirstName            string    `json:"firstName"`
	LastName             string    `json:"lastName"`
	Email                string    `json:"email"`
	Phone                string    `json:"phone"`
	Address              string    `json:"address"`
	City                 string    `json:"city"`
	State                string    `json:"state"`
	ZipCode              string    `json:"zipCode"`
	Country              string    `json:"country"`
	DeliveryInstructions string    `json:"deliveryInstructions"`
	OrderDate            time.Time `json:"orderDate"`
	SessionID            *string   `json:"sessionId"`
}
