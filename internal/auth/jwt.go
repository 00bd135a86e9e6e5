// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jws"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/delivery-orders/internal/config"
	"github.com/carterperez-dev/delivery-orders/internal/core"
	"github.com/carterperez-dev/delivery-orders/internal/middleware"
)

// JWTManager signs and verifies access tokens with a server-held secret
// (HS256). Verification is stateless: everything needed to authenticate a
// request is in the token and the secret.
type JWTManager struct {
	key    jwk.Key
	config config.JWTConfig
}

func NewJWTManager(cfg config.JWTConfig) (*JWTManager, error) {
	key, err := jwk.Import([]byte(cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("import secret key: %w", err)
	}

	if setErr := key.Set(jwk.AlgorithmKey, jwa.HS256()); setErr != nil {
		return nil, fmt.Errorf("set algorithm: %w", setErr)
	}

	return &JWTManager{
		key:    key,
		config: cfg,
	}, nil
}

func (m *JWTManager) CreateAccessToken(
	identity middleware.Identity,
) (string, error) {
	now := time.Now()

	token, err := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Issuer(m.config.Issuer).
		Audience([]string{m.config.Audience}).
		Subject(strconv.FormatInt(identity.UserID, 10)).
		IssuedAt(now).
		Expiration(now.Add(m.config.AccessTokenExpire)).
		NotBefore(now).
		Claim("email", identity.Email).
		Claim("role", identity.Role).
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.key))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

func (m *JWTManager) VerifyAccessToken(
	ctx context.Context,
	tokenString string,
) (*middleware.Identity, error) {
	// structural check first; signature and claim failures are only
	// meaningful for a well-formed JWS
	if _, err := jws.Parse([]byte(tokenString)); err != nil {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenMalformed)
	}

	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), m.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
	)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", classifyTokenError(err))
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"verify token: missing subject: %w",
			core.ErrTokenMalformed,
		)
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf(
			"verify token: non-numeric subject: %w",
			core.ErrTokenMalformed,
		)
	}

	var email string
	if err := token.Get("email", &email); err != nil {
		return nil, fmt.Errorf(
			"verify token: missing email claim: %w",
			core.ErrTokenMalformed,
		)
	}

	var role string
	if err := token.Get("role", &role); err != nil {
		return nil, fmt.Errorf(
			"verify token: missing role claim: %w",
			core.ErrTokenMalformed,
		)
	}

	return &middleware.Identity{
		UserID: userID,
		Email:  email,
		Role:   role,
	}, nil
}

// classifyTokenError buckets jwx failures into the three caller-visible
// kinds: expired, bad signature, structurally broken.
func classifyTokenError(err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied"):
		return core.ErrTokenExpired
	case strings.Contains(errStr, "verif"):
		return core.ErrTokenInvalidSignature
	default:
		return core.ErrTokenMalformed
	}
}

var _ middleware.TokenVerifier = (*JWTManager)(nil)
