package repository

import (
	"context"
	"errors"

	"github.com/damianGG/posadzki-zywiczne-sub001/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type KitRepository struct {
	DB *pgxpool.Pool
}

func NewKitRepository(db *pgxpool.Pool) *KitRepository {
	return &KitRepository{DB: db}
}

const kitColumns = `kitid, sku, name, baseprice, antislipsurcharge, hasantislip, bucketsize, created_at, deleted_at`

// List returns all sellable kits.
func (r *KitRepository) List(ctx context.Context) ([]model.ProductKit, error) {
	query := `SELECT ` + kitColumns + ` FROM product_kits WHERE deleted_at IS NULL ORDER BY kitid`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ProductKit
	for rows.Next() {
		var k model.ProductKit
		if err := rows.Scan(&k.KitID, &k.SKU, &k.Name, &k.BasePrice, &k.AntiSlipSurcharge, &k.HasAntiSlip, &k.BucketSize, &k.CreatedAt, &k.DeletedAt); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// FindByID returns the kit or (nil, nil) when it does not exist.
func (r *KitRepository) FindByID(ctx context.Context, kitID int64) (*model.ProductKit, error) {
	query := `SELECT ` + kitColumns + ` FROM product_kits WHERE kitid=$1 AND deleted_at IS NULL`
	var k model.ProductKit
	err := r.DB.QueryRow(ctx, query, kitID).Scan(
		&k.KitID, &k.SKU, &k.Name, &k.BasePrice, &k.AntiSlipSurcharge, &k.HasAntiSlip, &k.BucketSize, &k.CreatedAt, &k.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &k, nil
}

// FindBySKU returns the kit or (nil, nil) when it does not exist.
func (r *KitRepository) FindBySKU(ctx context.Context, sku string) (*model.ProductKit, error) {
	query := `SELECT ` + kitColumns + ` FROM product_kits WHERE sku=$1 AND deleted_at IS NULL`
	var k model.ProductKit
	err := r.DB.QueryRow(ctx, query, sku).Scan(
		&k.KitID, &k.SKU, &k.Name, &k.BasePrice, &k.AntiSlipSurcharge, &k.HasAntiSlip, &k.BucketSize, &k.CreatedAt, &k.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &k, nil
}
