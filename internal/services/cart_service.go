package services

import (
	"github.com/damianGG/posadzki-zywiczne-sub001/internal/model"
)

// Cart mutations are pure value-in/value-out functions; the HTTP layer
// loads the cart from the store, applies one mutation and saves the
// result. The total is never carried over, it is recomputed from the
// line items after every mutation.

// AddToCart appends the item, or increments the quantity when an item
// with the same product kit already exists.
func AddToCart(cart model.Cart, item model.CartItem) model.Cart {
	items := make([]model.CartItem, len(cart.Items))
	copy(items, cart.Items)

	merged := false
	for i := range items {
		if items[i].ProductKitID == item.ProductKitID {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}
	return recalcCart(items)
}

// RemoveFromCart filters out the matching item.
func RemoveFromCart(cart model.Cart, productKitID int64) model.Cart {
	items := make([]model.CartItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		if it.ProductKitID != productKitID {
			items = append(items, it)
		}
	}
	return recalcCart(items)
}

// UpdateCartItemQuantity sets the quantity for an item; a quantity of
// zero or less removes the item entirely.
func UpdateCartItemQuantity(cart model.Cart, productKitID int64, quantity int) model.Cart {
	if quantity <= 0 {
		return RemoveFromCart(cart, productKitID)
	}
	items := make([]model.CartItem, len(cart.Items))
	copy(items, cart.Items)
	for i := range items {
		if items[i].ProductKitID == productKitID {
			items[i].Quantity = quantity
			break
		}
	}
	return recalcCart(items)
}

func recalcCart(items []model.CartItem) model.Cart {
	var total float64
	for i := range items {
		items[i].Subtotal = items[i].Price * float64(items[i].Quantity)
		total += items[i].Subtotal
	}
	return model.Cart{Items: items, Total: total}
}
