package repository

import (
	"context"
	"errors"
	"time"

	"github.com/damianGG/posadzki-zywiczne-sub001/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrOrderNumberTaken is returned when the generated order number collides
// with an existing row; callers regenerate and retry.
var ErrOrderNumberTaken = errors.New("order number already taken")

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

const orderColumns = `orderid, ordernumber, customername, customeremail, customerphone,
		customeraddress, customercity, customerzip, paymentmethod, paymentstatus,
		status, totalamount, currency, notes, p24token, created_at`

// CreateWithItems inserts the order row together with its item rows in one
// transaction, so an order is never visible without its items.
func (r *OrderRepository) CreateWithItems(ctx context.Context, o *model.Order, items []model.OrderItem) (int64, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var orderID int64
	query := `
		INSERT INTO orders
			(ordernumber, customername, customeremail, customerphone, customeraddress,
			 customercity, customerzip, paymentmethod, paymentstatus, status,
			 totalamount, currency, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING orderid
	`
	err = tx.QueryRow(ctx, query,
		o.OrderNumber, o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.CustomerAddress,
		o.CustomerCity, o.CustomerZip, o.PaymentMethod, o.PaymentStatus, o.Status,
		o.TotalAmount, o.Currency, o.Notes, time.Now(),
	).Scan(&orderID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrOrderNumberTaken
		}
		return 0, err
	}

	for _, it := range items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (orderid, productkitid, sku, name, priceatpurchase, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, orderID, it.ProductKitID, it.SKU, it.Name, it.PriceAtPurchase, it.Quantity)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return orderID, nil
}

// GetByID returns the order row or (nil, nil) when it does not exist.
func (r *OrderRepository) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE orderid=$1`
	return r.scanOne(r.DB.QueryRow(ctx, query, orderID))
}

// GetByNumber returns the order row or (nil, nil) when it does not exist.
func (r *OrderRepository) GetByNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE ordernumber=$1`
	return r.scanOne(r.DB.QueryRow(ctx, query, orderNumber))
}

func (r *OrderRepository) scanOne(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.OrderID, &o.OrderNumber, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.CustomerAddress, &o.CustomerCity, &o.CustomerZip, &o.PaymentMethod, &o.PaymentStatus,
		&o.Status, &o.TotalAmount, &o.Currency, &o.Notes, &o.P24Token, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// GetItems returns the immutable item rows for an order.
func (r *OrderRepository) GetItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	query := `
		SELECT orderitemid, orderid, productkitid, sku, name, priceatpurchase, quantity
		FROM order_items WHERE orderid=$1 ORDER BY orderitemid
	`
	rows, err := r.DB.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.OrderItemID, &it.OrderID, &it.ProductKitID, &it.SKU, &it.Name, &it.PriceAtPurchase, &it.Quantity); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// List returns orders newest first, optionally filtered by payment status.
func (r *OrderRepository) List(ctx context.Context, paymentStatus string) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []any{}
	if paymentStatus != "" {
		query += ` WHERE paymentstatus=$1`
		args = append(args, paymentStatus)
	}
	query += ` ORDER BY orderid DESC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(
			&o.OrderID, &o.OrderNumber, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
			&o.CustomerAddress, &o.CustomerCity, &o.CustomerZip, &o.PaymentMethod, &o.PaymentStatus,
			&o.Status, &o.TotalAmount, &o.Currency, &o.Notes, &o.P24Token, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// SetP24Token stores the gateway token returned by transaction registration.
func (r *OrderRepository) SetP24Token(ctx context.Context, orderID int64, token string) error {
	query := `UPDATE orders SET p24token=$2 WHERE orderid=$1`
	_, err := r.DB.Exec(ctx, query, orderID, token)
	return err
}

// UpdateStatus sets the fulfilment status.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	query := `UPDATE orders SET status=$2 WHERE orderid=$1`
	tag, err := r.DB.Exec(ctx, query, orderID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("order not found")
	}
	return nil
}
