package service

import (
	"context"
	"fmt"
	"strings"

	"planpulse/internal/model"
	"planpulse/pkg/auth"
	"planpulse/pkg/config"
	"planpulse/pkg/store/mysql"

	"github.com/google/uuid"
)

// AuthService handles login, registration and token issuance
type AuthService struct {
	userRepo *mysql.UserRepository
	cfg      *config.AuthConfig
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *mysql.UserRepository, cfg *config.AuthConfig) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Login verifies credentials and returns a signed token
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !user.Active {
		return nil, fmt.Errorf("%w: bad credentials", ErrUnauthorized)
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, fmt.Errorf("%w: bad credentials", ErrUnauthorized)
	}

	token, err := auth.GenerateToken(user.UserID, user.Role, s.cfg.JWTSecret, s.cfg.TokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &model.LoginResponse{
		Token: token,
		User:  mysql.ToUserDomain(user),
	}, nil
}

// Register creates a new user account
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user with email %s already exists", ErrConflict, email)
	}

	role := model.RoleEmployee
	if req.Role != "" {
		if !model.ValidRole(req.Role) {
			return nil, fmt.Errorf("%w: unknown role %s", ErrInvalidInput, req.Role)
		}
		role = model.Role(req.Role)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &mysql.User{
		UserID:       uuid.NewString(),
		Email:        email,
		Name:         req.Name,
		Role:         string(role),
		Active:       true,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return mysql.ToUserDomain(user), nil
}

// GetUser retrieves a user by ID
func (s *AuthService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	return mysql.ToUserDomain(user), nil
}
