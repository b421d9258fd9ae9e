package response

import (
	"art-shop/internal/data/entity"
	"art-shop/pkg/utils"
)

type CartItemResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	PriceDisplay string  `json:"price_display"`
	Image        string  `json:"image"`
	Quantity     int     `json:"quantity"`
	LineTotal    string  `json:"line_total"`
}

type CartResponse struct {
	Items           []CartItemResponse `json:"items"`
	Count           int                `json:"count"`
	Subtotal        float64            `json:"subtotal"`
	SubtotalDisplay string             `json:"subtotal_display"`
	Empty           bool               `json:"empty"`
}

func CartItemToResponse(item entity.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:           item.ID,
		Name:         item.Name,
		Price:        item.Price,
		PriceDisplay: utils.FormatMoney(item.Price),
		Image:        item.Image,
		Quantity:     item.Quantity,
		LineTotal:    utils.FormatMoney(item.LineTotal()),
	}
}

func CartToResponse(items []entity.CartItem, subtotal float64) CartResponse {
	resp := CartResponse{
		Items:           make([]CartItemResponse, len(items)),
		Subtotal:        utils.RoundCents(subtotal),
		SubtotalDisplay: utils.FormatMoney(subtotal),
		Empty:           len(items) == 0,
	}
	for i, it := range items {
		resp.Items[i] = CartItemToResponse(it)
		resp.Count += it.Quantity
	}
	return resp
}
