// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/carterperez-dev/delivery-orders/internal/core"
	"github.com/carterperez-dev/delivery-orders/internal/middleware"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
)

type UserInfo struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(
		ctx context.Context,
		email, passwordHash, role string,
	) (*UserInfo, error)
}

type TokenIssuer interface {
	CreateAccessToken(identity middleware.Identity) (string, error)
}

type Service struct {
	users  UserProvider
	tokens TokenIssuer
	hasher *core.PasswordHasher
}

func NewService(
	users UserProvider,
	tokens TokenIssuer,
	hasher *core.PasswordHasher,
) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		hasher: hasher,
	}
}

// Login verifies credentials and issues an access token. An unknown email
// and a wrong password produce the same error, after the same amount of
// hashing work.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // account enumeration prevention
			_, _ = s.hasher.VerifyTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokenResponse(user)
}

// Register creates a user with the requested role and issues a token for
// it. A taken email fails before any write happens.
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*AuthResponse, error) {
	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, req.Email, passwordHash, req.Role)
	if err != nil {
		// lost a concurrent registration race for the same email
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issueTokenResponse(user)
}

func (s *Service) issueTokenResponse(user *UserInfo) (*AuthResponse, error) {
	accessToken, err := s.tokens.CreateAccessToken(middleware.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	return &AuthResponse{
		AccessToken: accessToken,
		User: UserResponse{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}
