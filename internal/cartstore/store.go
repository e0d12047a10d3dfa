package cartstore

import (
	"time"

	"github.com/damianGG/posadzki-zywiczne-sub001/internal/model"

	"github.com/labstack/echo/v4"
)

// CartTTL is how long a saved cart survives without being touched.
const CartTTL = 7 * 24 * time.Hour

// Store persists the per-visitor cart. Implementations must treat a
// missing or malformed stored value as "no cart" and return the empty
// cart, never an error.
type Store interface {
	// Get returns the visitor's cart, or the empty cart.
	Get(c echo.Context) model.Cart
	// Save serializes and persists the cart, overwriting any prior value.
	Save(c echo.Context, cart model.Cart) error
	// Clear deletes the persisted cart entirely.
	Clear(c echo.Context)
}
