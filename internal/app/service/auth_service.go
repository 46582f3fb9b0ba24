package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"judge_gateway/internal/app/token"
	"judge_gateway/internal/common"
	"judge_gateway/internal/common/security"
	"judge_gateway/internal/domain/model"
	"judge_gateway/internal/domain/repository"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo     repository.UserRepository
	refreshStore token.Store
}

func NewAuthService(userRepo repository.UserRepository, refreshStore token.Store) *AuthService {
	return &AuthService{userRepo: userRepo, refreshStore: refreshStore}
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("name, email and password are required: %w", common.ErrValidation)
	}
	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		return nil, fmt.Errorf("unknown role %q: %w", req.Role, common.ErrValidation)
	}

	// The password is hashed exactly once, here; the record is never
	// rewritten afterwards.
	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          strings.ToLower(req.Email),
		HashedPassword: hashedPassword,
		Role:           role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", common.ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes a refresh token. Revoking an absent token is a no-op.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.refreshStore.Remove(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// Refresh mints a new access token from a registered refresh token and
// returns the same refresh token unchanged. The registry is consulted
// before the signature so revoked tokens never reach verification.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	if refreshToken == "" {
		return nil, common.ErrUnauthorized
	}

	registered, err := s.refreshStore.Contains(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to check refresh token registry: %w", err)
	}
	if !registered {
		return nil, common.ErrForbidden
	}

	identity, err := security.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("refresh token verification failed: %w", common.ErrForbidden)
	}

	accessToken, err := security.GenerateAccessToken(identity)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return &RefreshResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *model.User) (*AuthResponse, error) {
	identity := security.Identity{Name: user.Name, Email: user.Email, Role: user.Role}

	accessToken, err := security.GenerateAccessToken(identity)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := security.GenerateRefreshToken(identity)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	if err := s.refreshStore.Add(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to register refresh token: %w", err)
	}

	return &AuthResponse{
		Email:        user.Email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
