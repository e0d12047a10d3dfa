package model

import "time"

// ProductKit represents an entry in the product_kits table.
// SKU is unique and is the join key for price re-derivation.
type ProductKit struct {
	KitID             int64      `json:"kitid"`
	SKU               string     `json:"sku"`
	Name              string     `json:"name"`
	BasePrice         float64    `json:"baseprice"`
	AntiSlipSurcharge float64    `json:"antislipsurcharge"`
	HasAntiSlip       bool       `json:"hasantislip"`
	BucketSize        string     `json:"bucketsize"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	DeletedAt         *time.Time `json:"deleted_at,omitempty"`
}

// AuthoritativePrice is what the kit actually costs, regardless of what
// the client claims in its cart.
func (k *ProductKit) AuthoritativePrice() float64 {
	if k.HasAntiSlip {
		return k.BasePrice + k.AntiSlipSurcharge
	}
	return k.BasePrice
}
