package entity

import "time"

type OrderState string

const (
	OrderStateIdle               OrderState = "idle"
	OrderStateValidating         OrderState = "validating"
	OrderStateSubmitting         OrderState = "submitting"
	OrderStateFallbackSimulating OrderState = "fallback_simulating"
	OrderStateConfirmed          OrderState = "confirmed"
	OrderStateRejected           OrderState = "rejected"
)

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Order is the submission payload. It is never persisted.
type Order struct {
	Items    []CartItem `json:"items"`
	Customer Customer   `json:"customer"`
	Delivery Delivery   `json:"delivery"`
	Shipping float64    `json:"shipping"`
	Subtotal float64    `json:"subtotal"`
	Total    float64    `json:"total"`
}

type OrderSummary struct {
	Items    []CartItem `json:"items"`
	Delivery Delivery   `json:"delivery"`
	Subtotal float64    `json:"subtotal"`
	Shipping float64    `json:"shipping"`
	Total    float64    `json:"total"`
}

type Confirmation struct {
	OrderNumber      string       `json:"order_number"`
	DeliveryEstimate string       `json:"delivery_estimate"`
	Delivery         Delivery     `json:"delivery"`
	Summary          OrderSummary `json:"summary"`
	Offline          bool         `json:"offline"`
	ConfirmedAt      time.Time    `json:"confirmed_at"`
}

// ReceivedOrder is an order accepted by the built-in order endpoint.
type ReceivedOrder struct {
	Reference  string    `json:"reference"`
	Order      Order     `json:"order"`
	ReceivedAt time.Time `json:"received_at"`
}
