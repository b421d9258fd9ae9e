package request

type DeliveryRequest struct {
	Delivery string `json:"delivery" validate:"required,oneof=standard express pickup"`
}

// CheckoutRequest mirrors the checkout form. Every field must be non-blank.
type CheckoutRequest struct {
	FullName   string `json:"full_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Delivery   string `json:"delivery" validate:"omitempty,oneof=standard express pickup"`
}

// OrderReceiveRequest is the body accepted by the built-in order endpoint.
type OrderReceiveRequest struct {
	Items    []OrderItem   `json:"items" validate:"required,min=1,dive"`
	Customer OrderCustomer `json:"customer"`
	Delivery string        `json:"delivery" validate:"required,oneof=standard express pickup"`
	Shipping float64       `json:"shipping" validate:"gte=0"`
	Subtotal float64       `json:"subtotal" validate:"gte=0"`
	Total    float64       `json:"total" validate:"gte=0"`
}

type OrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity" validate:"gte=1"`
}

type OrderCustomer struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}
