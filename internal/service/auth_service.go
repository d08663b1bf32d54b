package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ratehub/ratehub/internal/auth"
	"github.com/ratehub/ratehub/internal/domain"
	"github.com/ratehub/ratehub/internal/repository"
)

// UserDirectory is the slice of the user repository the service needs.
type UserDirectory interface {
	Create(ctx context.Context, params repository.UserCreateParams) (domain.User, error)
	CreateStoreOwner(ctx context.Context, params repository.UserCreateParams, storeName string) (domain.User, domain.Store, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	List(ctx context.Context, filters repository.UserListFilters) ([]domain.User, error)
}

// SignUpParams carries a signup request.
type SignUpParams struct {
	Name      string
	Email     string
	Password  string
	Address   string
	Role      domain.Role
	StoreName string
}

// AuthService handles account creation and credential checks.
type AuthService interface {
	SignUp(ctx context.Context, params SignUpParams) (domain.User, error)
	SignIn(ctx context.Context, email, password string) (domain.User, string, error)
	Profile(ctx context.Context, userID string) (domain.User, error)
	UpdatePassword(ctx context.Context, userID, newPassword string) error
	ListUsers(ctx context.Context, filters repository.UserListFilters) ([]domain.User, error)
}

type authService struct {
	users      UserDirectory
	tokens     auth.Tokens
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(users UserDirectory, tokens auth.Tokens, bcryptCost int, logger *zap.Logger) AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &authService{users: users, tokens: tokens, bcryptCost: bcryptCost, logger: logger}
}

// SignUp validates and creates an account. A STORE_OWNER signup also creates
// the owner's store, transactionally, from the signup payload.
func (s *authService) SignUp(ctx context.Context, params SignUpParams) (domain.User, error) {
	name := normalize(params.Name)
	email := normalize(params.Email)
	address := normalize(params.Address)
	storeName := normalize(params.StoreName)

	if err := validateName(name); err != nil {
		return domain.User{}, err
	}
	if err := validateEmail(email); err != nil {
		return domain.User{}, err
	}
	if err := validatePassword(params.Password); err != nil {
		return domain.User{}, err
	}
	if err := validateAddress(address); err != nil {
		return domain.User{}, err
	}
	if params.Role == domain.RoleStoreOwner && storeName == "" {
		return domain.User{}, &ValidationError{Field: "storeName", Reason: "is required"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.bcryptCost)
	if err != nil {
		return domain.User{}, err
	}

	createParams := repository.UserCreateParams{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Address:      address,
		Role:         params.Role,
	}

	var user domain.User
	if params.Role == domain.RoleStoreOwner {
		user, _, err = s.users.CreateStoreOwner(ctx, createParams, storeName)
	} else {
		user, err = s.users.Create(ctx, createParams)
	}
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	s.logger.Info("user signed up", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// SignIn checks credentials and returns the user with a signed token.
func (s *authService) SignIn(ctx context.Context, email, password string) (domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, normalize(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// Profile returns the account behind an authenticated principal. A deleted
// account surfaces as repository.ErrNotFound.
func (s *authService) Profile(ctx context.Context, userID string) (domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdatePassword validates and stores a new password for the user.
func (s *authService) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}

// ListUsers answers the admin user listing.
func (s *authService) ListUsers(ctx context.Context, filters repository.UserListFilters) ([]domain.User, error) {
	return s.users.List(ctx, filters)
}
