package repository

import (
	"context"
	"errors"

	"github.com/damianGG/posadzki-zywiczne-sub001/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	DB *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{DB: db}
}

// Create inserts an admin account and returns its id.
func (r *AdminRepository) Create(ctx context.Context, a *model.Admin) (int64, error) {
	var adminID int64
	query := `
		INSERT INTO admins (email, passwordhash, role, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING adminid
	`
	err := r.DB.QueryRow(ctx, query, a.Email, a.PasswordHash, a.Role).Scan(&adminID)
	return adminID, err
}

// GetByEmail returns the admin account or (nil, nil) when none exists.
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var a model.Admin
	query := `SELECT adminid, email, passwordhash, role, created_at FROM admins WHERE email=$1`
	err := r.DB.QueryRow(ctx, query, email).Scan(&a.AdminID, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
