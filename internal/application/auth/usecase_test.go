package auth

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/stockledger-api/internal/application/dto"
	"github.com/invorya/stockledger-api/internal/domain"
	"github.com/invorya/stockledger-api/internal/domain/entity"
	"github.com/invorya/stockledger-api/internal/domain/repository"
	pkgjwt "github.com/invorya/stockledger-api/pkg/jwt"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User // por email
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *u
	r.users[u.Email] = &c
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		c := *u
		return &c, nil
	}
	return nil, nil
}

func newTestAuth() (*AuthUseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "stockledger-test"})
	return uc, repo
}

func TestRegisterUser_CreaYNoExponeElHash(t *testing.T) {
	uc, repo := newTestAuth()

	resp, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@acme.test",
		Password: "contraseña-larga",
		Name:     "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@acme.test", resp.Email)
	assert.Equal(t, "Ana", resp.Name)
	assert.Equal(t, "active", resp.Status)
	assert.NotEmpty(t, resp.ID)

	stored, _ := repo.FindByEmail("ana@acme.test")
	require.NotNil(t, stored)
	assert.NotEqual(t, "contraseña-larga", stored.PasswordHash)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, _ := newTestAuth()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@acme.test", Password: "contraseña-larga"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "ana@acme.test", Password: "otra-contraseña"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_TokenLlevaElUserIDComoOwner(t *testing.T) {
	uc, _ := newTestAuth()

	created, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@acme.test", Password: "contraseña-larga"})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "ana@acme.test", Password: "contraseña-larga"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, created.ID, resp.User.ID)

	userID, email, err := pkgjwt.Parse("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, "ana@acme.test", email)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, _ := newTestAuth()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@acme.test", Password: "contraseña-larga"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@acme.test", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := newTestAuth()
	_, err := uc.Login(dto.LoginRequest{Email: "nadie@acme.test", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
