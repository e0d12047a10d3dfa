package services

import (
	"context"
	"testing"

	"github.com/damianGG/posadzki-zywiczne-sub001/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAdminStore struct {
	admins  map[string]*model.Admin
	creates int
}

func newMockAdminStore() *mockAdminStore {
	return &mockAdminStore{admins: map[string]*model.Admin{}}
}

func (m *mockAdminStore) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	return m.admins[email], nil
}

func (m *mockAdminStore) Create(_ context.Context, a *model.Admin) (int64, error) {
	m.creates++
	stored := *a
	stored.AdminID = int64(m.creates)
	m.admins[a.Email] = &stored
	return stored.AdminID, nil
}

func TestEnsureAdmin_CreatesAccountWithHashedPassword(t *testing.T) {
	admins := newMockAdminStore()
	svc := NewAuthService(admins)

	err := svc.EnsureAdmin(context.Background(), "admin@posadzki.example", "s3cret")

	require.NoError(t, err)
	created := admins.admins["admin@posadzki.example"]
	require.NotNil(t, created)
	assert.Equal(t, "admin", created.Role)
	assert.NotEqual(t, "s3cret", created.PasswordHash, "plaintext must never be stored")
	assert.True(t, CheckPassword(created.PasswordHash, "s3cret"))
}

func TestEnsureAdmin_ExistingAccountUntouched(t *testing.T) {
	admins := newMockAdminStore()
	svc := NewAuthService(admins)

	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@posadzki.example", "first"))
	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@posadzki.example", "second"))

	assert.Equal(t, 1, admins.creates)
	assert.True(t, CheckPassword(admins.admins["admin@posadzki.example"].PasswordHash, "first"))
}

func TestLogin_BootstrappedAccount(t *testing.T) {
	admins := newMockAdminStore()
	svc := NewAuthService(admins)
	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@posadzki.example", "s3cret"))

	token, err := svc.Login(context.Background(), "admin@posadzki.example", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.Login(context.Background(), "admin@posadzki.example", "wrong")
	assert.Error(t, err)
}
