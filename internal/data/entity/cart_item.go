package entity

type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

// LineTotal is price x quantity at full precision.
func (c CartItem) LineTotal() float64 {
	return c.Price * float64(c.Quantity)
}

// Product is what the catalog hands to the cart when "Add to Cart" is clicked.
type Product struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

func CloneItems(items []CartItem) []CartItem {
	if items == nil {
		return []CartItem{}
	}
	out := make([]CartItem, len(items))
	copy(out, items)
	return out
}
