package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"notekeeper/internal/auth"
	apperrors "notekeeper/internal/errors"
	"notekeeper/internal/model"
	"notekeeper/internal/repository"
)

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, name, email, password string, age int) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	bcryptCost int
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, bcryptCost int) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user with a hashed password. Email uniqueness is
// enforced by the store's unique index, so a concurrent duplicate submission
// loses the insert race and surfaces as ErrEmailTaken rather than creating a
// second record.
func (s *authService) Register(ctx context.Context, name, email, password string, age int) (*model.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Age:          age,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a bearer token. An unknown email
// yields ErrUserNotFound; a wrong password yields ErrInvalidCredentials and
// never a token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user.ID.Hex())
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}
