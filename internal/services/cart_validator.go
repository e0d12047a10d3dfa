package services

import (
	"context"
	"fmt"
	"math"

	"github.com/damianGG/posadzki-zywiczne-sub001/internal/model"
)

// priceTolerance absorbs one-cent rounding differences between the
// client's arithmetic and ours; anything beyond it is tampering.
const priceTolerance = 0.01

// KitFinder is the catalog boundary used for price re-derivation.
type KitFinder interface {
	FindByID(ctx context.Context, kitID int64) (*model.ProductKit, error)
}

// CartValidation is the outcome of validating a client-supplied cart.
// Cart is rebuilt entirely from catalog prices and names; client values
// are never trusted past this point.
type CartValidation struct {
	Valid  bool       `json:"valid"`
	Errors []string   `json:"errors,omitempty"`
	Cart   model.Cart `json:"cart"`
}

type CartValidator struct {
	Kits KitFinder
}

func NewCartValidator(kits KitFinder) *CartValidator {
	return &CartValidator{Kits: kits}
}

// ValidateCart re-fetches every kit from the catalog, recomputes the
// authoritative price and flags mismatches. Any per-item error makes the
// whole validation fail closed; a partially-valid cart never checks out.
func (v *CartValidator) ValidateCart(ctx context.Context, cart model.Cart) (*CartValidation, error) {
	result := &CartValidation{Valid: true}
	items := make([]model.CartItem, 0, len(cart.Items))

	for _, it := range cart.Items {
		if it.Quantity <= 0 {
			result.Valid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("invalid quantity %d for product %d", it.Quantity, it.ProductKitID))
			continue
		}
		kit, err := v.Kits.FindByID(ctx, it.ProductKitID)
		if err != nil {
			return nil, fmt.Errorf("catalog lookup for kit %d: %w", it.ProductKitID, err)
		}
		if kit == nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("product %d not found", it.ProductKitID))
			continue
		}

		authoritative := kit.AuthoritativePrice()
		if math.Abs(it.Price-authoritative) > priceTolerance {
			result.Valid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("price mismatch for %s: got %.2f, expected %.2f", kit.SKU, it.Price, authoritative))
		}

		items = append(items, model.CartItem{
			ProductKitID: kit.KitID,
			SKU:          kit.SKU,
			Name:         kit.Name,
			Price:        authoritative,
			Quantity:     it.Quantity,
		})
	}

	result.Cart = recalcCart(items)
	return result, nil
}
