package entity

type Delivery string

const (
	DeliveryStandard Delivery = "standard"
	DeliveryExpress  Delivery = "express"
	DeliveryPickup   Delivery = "pickup"
)

var shippingRates = map[Delivery]float64{
	DeliveryStandard: 8.99,
	DeliveryExpress:  15.99,
	DeliveryPickup:   0,
}

var deliveryEstimates = map[Delivery]string{
	DeliveryStandard: "5-7 business days",
	DeliveryExpress:  "2-3 business days",
	DeliveryPickup:   "Ready in 24 hours for pickup",
}

func (d Delivery) Valid() bool {
	_, ok := shippingRates[d]
	return ok
}

// OrDefault maps anything unrecognized to standard delivery.
func (d Delivery) OrDefault() Delivery {
	if d.Valid() {
		return d
	}
	return DeliveryStandard
}

func (d Delivery) ShippingCost() float64 {
	return shippingRates[d.OrDefault()]
}

func (d Delivery) Estimate() string {
	return deliveryEstimates[d.OrDefault()]
}
