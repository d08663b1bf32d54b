package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ratehub/ratehub/internal/auth"
	"github.com/ratehub/ratehub/internal/domain"
	"github.com/ratehub/ratehub/internal/repository"
)

type mockUserDirectory struct {
	mock.Mock
}

func (m *mockUserDirectory) Create(ctx context.Context, params repository.UserCreateParams) (domain.User, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserDirectory) CreateStoreOwner(ctx context.Context, params repository.UserCreateParams, storeName string) (domain.User, domain.Store, error) {
	args := m.Called(ctx, params, storeName)
	return args.Get(0).(domain.User), args.Get(1).(domain.Store), args.Error(2)
}

func (m *mockUserDirectory) GetByID(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserDirectory) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserDirectory) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *mockUserDirectory) List(ctx context.Context, filters repository.UserListFilters) ([]domain.User, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]domain.User), args.Error(1)
}

var testTokens = auth.Tokens{Secret: []byte("test-secret"), TTL: time.Hour}

func validSignUp() SignUpParams {
	return SignUpParams{
		Name:     "a perfectly ordinary customer",
		Email:    "customer@example.com",
		Password: "Sup3rSecret!",
		Address:  "12 example boulevard",
		Role:     domain.RoleUser,
	}
}

func TestSignUpValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*SignUpParams)
		wantField string
	}{
		{"name too short", func(p *SignUpParams) { p.Name = "shorty" }, "name"},
		{"name too long", func(p *SignUpParams) {
			long := make([]byte, 61)
			for i := range long {
				long[i] = 'a'
			}
			p.Name = string(long)
		}, "name"},
		{"bad email", func(p *SignUpParams) { p.Email = "not-an-email" }, "email"},
		{"password too short", func(p *SignUpParams) { p.Password = "Ab1!" }, "password"},
		{"password too long", func(p *SignUpParams) { p.Password = "Abcdefgh12345678!" }, "password"},
		{"password without uppercase", func(p *SignUpParams) { p.Password = "lowercase1!" }, "password"},
		{"password without special", func(p *SignUpParams) { p.Password = "NoSpecial1" }, "password"},
		{"empty address", func(p *SignUpParams) { p.Address = "   " }, "address"},
		{"address too long", func(p *SignUpParams) {
			long := make([]byte, 401)
			for i := range long {
				long[i] = 'x'
			}
			p.Address = string(long)
		}, "address"},
		{"store owner without store name", func(p *SignUpParams) {
			p.Role = domain.RoleStoreOwner
			p.StoreName = ""
		}, "storeName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mockUserDirectory)
			svc := NewAuthService(users, testTokens, bcrypt.MinCost, nil)

			params := validSignUp()
			tt.mutate(&params)

			_, err := svc.SignUp(context.Background(), params)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
			users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			users.AssertNotCalled(t, "CreateStoreOwner", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSignUpNormalizesAndHashes(t *testing.T) {
	users := new(mockUserDirectory)
	svc := NewAuthService(users, testTokens, bcrypt.MinCost, nil)

	var seen repository.UserCreateParams
	users.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			seen = args.Get(1).(repository.UserCreateParams)
		}).
		Return(domain.User{ID: "user-1", Role: domain.RoleUser}, nil)

	params := validSignUp()
	params.Email = "  Customer@Example.COM "
	_, err := svc.SignUp(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, "customer@example.com", seen.Email)
	assert.NotEqual(t, params.Password, seen.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(seen.PasswordHash), []byte(params.Password)))
}

func TestSignUpStoreOwnerCreatesStore(t *testing.T) {
	users := new(mockUserDirectory)
	svc := NewAuthService(users, testTokens, bcrypt.MinCost, nil)

	users.On("CreateStoreOwner", mock.Anything, mock.Anything, "corner books").
		Return(domain.User{ID: "owner-1", Role: domain.RoleStoreOwner}, domain.Store{ID: "store-1", OwnerID: "owner-1"}, nil)

	params := validSignUp()
	params.Role = domain.RoleStoreOwner
	params.StoreName = " Corner Books "

	user, err := svc.SignUp(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStoreOwner, user.Role)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	users.AssertExpectations(t)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	users := new(mockUserDirectory)
	svc := NewAuthService(users, testTokens, bcrypt.MinCost, nil)

	users.On("Create", mock.Anything, mock.Anything).Return(domain.User{}, repository.ErrConflict)

	_, err := svc.SignUp(context.Background(), validSignUp())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignIn(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3rSecret!"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := domain.User{ID: "user-1", Email: "customer@example.com", PasswordHash: string(hash), Role: domain.RoleUser}

	t.Run("unknown email", func(t *testing.T) {
		users := new(mockUserDirectory)
		svc := NewAuthService(users, testTokens, bcrypt.MinCost, nil)
		users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(domain.User{}, repository.ErrNotFound)

		_, _, err := svc.SignIn(context.Background(), "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(mockUserDirectory)
		svc := NewAuthService(users, testTokens, bcrypt.MinCost, nil)
		users.On("GetByEmail", mock.Anything, "customer@example.com").Return(stored, nil)

		_, _, err := svc.SignIn(context.Background(), "customer@example.com", "WrongPass1!")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("success issues a verifiable token", func(t *testing.T) {
		users := new(mockUserDirectory)
		svc := NewAuthService(users, testTokens, bcrypt.MinCost, nil)
		// The lookup email is normalized before it reaches the directory.
		users.On("GetByEmail", mock.Anything, "customer@example.com").Return(stored, nil)

		user, token, err := svc.SignIn(context.Background(), " Customer@Example.com ", "Sup3rSecret!")
		require.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)

		claims, err := testTokens.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, stored.ID, claims.Subject)
		assert.Equal(t, string(domain.RoleUser), claims.Role)
	})
}

func TestProfile(t *testing.T) {
	t.Run("returns the principal's account", func(t *testing.T) {
		users := new(mockUserDirectory)
		svc := NewAuthService(users, testTokens, bcrypt.MinCost, nil)

		stored := domain.User{ID: "user-1", Email: "customer@example.com", Role: domain.RoleUser}
		users.On("GetByID", mock.Anything, "user-1").Return(stored, nil)

		user, err := svc.Profile(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, stored, user)
	})

	t.Run("deleted account", func(t *testing.T) {
		users := new(mockUserDirectory)
		svc := NewAuthService(users, testTokens, bcrypt.MinCost, nil)
		users.On("GetByID", mock.Anything, "gone").Return(domain.User{}, repository.ErrNotFound)

		_, err := svc.Profile(context.Background(), "gone")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestUpdatePassword(t *testing.T) {
	t.Run("rejects weak password", func(t *testing.T) {
		users := new(mockUserDirectory)
		svc := NewAuthService(users, testTokens, bcrypt.MinCost, nil)

		err := svc.UpdatePassword(context.Background(), "user-1", "weak")
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stores a fresh hash", func(t *testing.T) {
		users := new(mockUserDirectory)
		svc := NewAuthService(users, testTokens, bcrypt.MinCost, nil)

		var seenHash string
		users.On("UpdatePassword", mock.Anything, "user-1", mock.Anything).
			Run(func(args mock.Arguments) {
				seenHash = args.String(2)
			}).
			Return(nil)

		err := svc.UpdatePassword(context.Background(), "user-1", "N3wSecret!")
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(seenHash), []byte("N3wSecret!")))
	})
}
