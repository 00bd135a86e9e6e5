// AngelaMos | 2026
// auth_test.go

package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/delivery-orders/internal/core"
	"github.com/carterperez-dev/delivery-orders/internal/middleware"
)

type fakeVerifier struct {
	identity *middleware.Identity
	err      error
}

func (v *fakeVerifier) VerifyAccessToken(
	_ context.Context,
	_ string,
) (*middleware.Identity, error) {
	return v.identity, v.err
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"no header", "", ""},
		{"bearer token", "Bearer abc123", "abc123"},
		{"lowercase scheme", "bearer abc123", "abc123"},
		{"wrong scheme", "Basic abc123", ""},
		{"scheme only", "Bearer", ""},
		{"padded token", "Bearer   abc123", "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, middleware.ExtractToken(req))
		})
	}
}

func TestAuthenticator_InjectsIdentity(t *testing.T) {
	verifier := &fakeVerifier{
		identity: &middleware.Identity{
			UserID: 42,
			Email:  "a@example.com",
			Role:   "client",
		},
	}

	var seen *middleware.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.GetIdentity(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := httptest.NewRecorder()

	middleware.Authenticator(verifier)(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, int64(42), seen.UserID)
	assert.Equal(t, int64(42), middleware.GetUserID(
		context.WithValue(t.Context(), middleware.IdentityKey, seen),
	))
}

func TestAuthenticator_MissingToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	middleware.Authenticator(&fakeVerifier{})(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticator_TokenErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"expired", core.ErrTokenExpired, "TOKEN_EXPIRED"},
		{"bad signature", core.ErrTokenInvalidSignature, "TOKEN_INVALID_SIGNATURE"},
		{"malformed", core.ErrTokenMalformed, "TOKEN_MALFORMED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &fakeVerifier{
				err: fmt.Errorf("verify token: %w", tt.err),
			}

			next := http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					t.Fatal("handler must not run on a bad token")
				},
			)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer sometoken")
			rec := httptest.NewRecorder()

			middleware.Authenticator(verifier)(next).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guard := middleware.RequireRole("delivery")(next)

	run := func(identity *middleware.Identity) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if identity != nil {
			ctx := context.WithValue(
				req.Context(),
				middleware.IdentityKey,
				identity,
			)
			req = req.WithContext(ctx)
		}
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, run(nil).Code)
	assert.Equal(t, http.StatusForbidden,
		run(&middleware.Identity{UserID: 1, Role: "client"}).Code)
	assert.Equal(t, http.StatusOK,
		run(&middleware.Identity{UserID: 1, Role: "delivery"}).Code)
}
