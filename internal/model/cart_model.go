package model

// CartItem is a single line in the visitor's cart. Price and Name are
// client-supplied until the cart passes validation against the catalog.
type CartItem struct {
	ProductKitID int64   `json:"productKitId"`
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	Subtotal     float64 `json:"subtotal"`
}

// Cart is the persisted per-visitor blob ({items, total})
type Cart struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

// EmptyCart is what callers get when no cart exists or the stored value
// fails to parse.
func EmptyCart() Cart {
	return Cart{Items: []CartItem{}, Total: 0}
}
