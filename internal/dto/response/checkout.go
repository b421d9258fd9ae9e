package response

import (
	"time"

	"art-shop/internal/data/entity"
	"art-shop/pkg/utils"
)

type SummaryResponse struct {
	Items           []CartItemResponse `json:"items"`
	Delivery        entity.Delivery    `json:"delivery"`
	Subtotal        float64            `json:"subtotal"`
	Shipping        float64            `json:"shipping"`
	Total           float64            `json:"total"`
	SubtotalDisplay string             `json:"subtotal_display"`
	ShippingDisplay string             `json:"shipping_display"`
	TotalDisplay    string             `json:"total_display"`
}

type ConfirmationResponse struct {
	OrderNumber      string          `json:"order_number"`
	DeliveryEstimate string          `json:"delivery_estimate"`
	Delivery         entity.Delivery `json:"delivery"`
	Summary          SummaryResponse `json:"summary"`
	Offline          bool            `json:"offline"`
	ConfirmedAt      time.Time       `json:"confirmed_at"`
}

type DeliveryResponse struct {
	Delivery        entity.Delivery `json:"delivery"`
	Shipping        float64         `json:"shipping"`
	ShippingDisplay string          `json:"shipping_display"`
	Estimate        string          `json:"estimate"`
}

type OrderReceiptResponse struct {
	Reference string  `json:"reference"`
	Items     int     `json:"items"`
	Total     float64 `json:"total"`
}

func SummaryToResponse(s entity.OrderSummary) SummaryResponse {
	items := make([]CartItemResponse, len(s.Items))
	for i, it := range s.Items {
		items[i] = CartItemToResponse(it)
	}
	return SummaryResponse{
		Items:           items,
		Delivery:        s.Delivery,
		Subtotal:        utils.RoundCents(s.Subtotal),
		Shipping:        utils.RoundCents(s.Shipping),
		Total:           utils.RoundCents(s.Total),
		SubtotalDisplay: utils.FormatMoney(s.Subtotal),
		ShippingDisplay: utils.FormatMoney(s.Shipping),
		TotalDisplay:    utils.FormatMoney(s.Total),
	}
}

func ConfirmationToResponse(c *entity.Confirmation) *ConfirmationResponse {
	if c == nil {
		return nil
	}
	return &ConfirmationResponse{
		OrderNumber:      c.OrderNumber,
		DeliveryEstimate: c.DeliveryEstimate,
		Delivery:         c.Delivery,
		Summary:          SummaryToResponse(c.Summary),
		Offline:          c.Offline,
		ConfirmedAt:      c.ConfirmedAt,
	}
}

func DeliveryToResponse(d entity.Delivery) DeliveryResponse {
	return DeliveryResponse{
		Delivery:        d,
		Shipping:        d.ShippingCost(),
		ShippingDisplay: utils.FormatMoney(d.ShippingCost()),
		Estimate:        d.Estimate(),
	}
}

func ReceivedOrderToResponse(o *entity.ReceivedOrder) *OrderReceiptResponse {
	if o == nil {
		return nil
	}
	count := 0
	for _, it := range o.Order.Items {
		count += it.Quantity
	}
	return &OrderReceiptResponse{
		Reference: o.Reference,
		Items:     count,
		Total:     utils.RoundCents(o.Order.Total),
	}
}
