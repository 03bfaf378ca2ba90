package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/pkg/jwt"
)

type memUsers struct {
	mu   sync.Mutex
	byID map[string]*entity.User
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*entity.User{}} }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.byID {
		if x.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	c := *u
	m.byID[u.ID] = &c
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *u
	m.byID[u.ID] = &c
	return nil
}

func (m *memUsers) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.User
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, nil
}

const secret = "test-secret"

func newUC() (*AuthUseCase, *memUsers) {
	repo := newMemUsers()
	return NewAuthUseCase(repo, JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"}), repo
}

func TestRegisterAndLogin(t *testing.T) {
	uc, _ := newUC()
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: " Alice@Example.com ", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.Equal(t, "alice@example.com", u.Name)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, entity.RoleUser, role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newUC()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.fr", Password: "12345678"})
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "A@B.fr", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_Errores(t *testing.T) {
	uc, repo := newUC()
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.fr", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nobody@b.fr", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.fr", Password: "wrong-pass"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	stored, _ := repo.GetByID(ctx, u.ID)
	stored.Status = entity.UserStatusInactive
	require.NoError(t, repo.Update(ctx, stored))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.fr", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSetUserRoleAndStatus(t *testing.T) {
	uc, _ := newUC()
	ctx := context.Background()
	admin, _ := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "admin@b.fr", Password: "12345678"})
	other, _ := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "user@b.fr", Password: "12345678"})
	actor := dto.Actor{UserID: admin.ID, Role: entity.RoleAdmin}

	got, err := uc.SetUserRole(ctx, actor, other.ID, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, got.Role)

	got, err = uc.SetUserStatus(ctx, actor, other.ID, entity.UserStatusInactive)
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusInactive, got.Status)

	_, err = uc.SetUserStatus(ctx, actor, admin.ID, entity.UserStatusInactive)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.SetUserRole(ctx, actor, "missing", entity.RoleUser)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.SetUserRole(ctx, actor, other.ID, "superuser")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
