package services

import (
	"context"
	"errors"

	"github.com/damianGG/posadzki-zywiczne-sub001/internal/middleware"
	"github.com/damianGG/posadzki-zywiczne-sub001/internal/model"

	"golang.org/x/crypto/bcrypt"
)

// AdminStore is the persistence boundary for admin accounts.
type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	Create(ctx context.Context, a *model.Admin) (int64, error)
}

type AuthService struct {
	Admins AdminStore
}

func NewAuthService(admins AdminStore) *AuthService {
	return &AuthService{Admins: admins}
}

// Login verifies the password and issues a 24h admin token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	admin, err := s.Admins.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if admin == nil {
		return "", errors.New("invalid credentials")
	}
	if !CheckPassword(admin.PasswordHash, password) {
		return "", errors.New("invalid credentials")
	}
	return middleware.GenerateToken(admin.AdminID, admin.Email, admin.Role, 24)
}

// EnsureAdmin creates the admin account at startup when it does not exist
// yet. An existing account is left untouched, so rotating the env password
// requires deleting the row first.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	existing, err := s.Admins.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	_, err = s.Admins.Create(ctx, &model.Admin{
		Email:        email,
		PasswordHash: hash,
		Role:         "admin",
	})
	return err
}

// HashPassword creates a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a stored hash with a plaintext candidate.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
