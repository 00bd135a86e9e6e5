// AngelaMos | 2026
// handler_test.go

package order_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/delivery-orders/internal/core"
	"github.com/carterperez-dev/delivery-orders/internal/middleware"
	"github.com/carterperez-dev/delivery-orders/internal/order"
)

// stubVerifier resolves fixed bearer tokens to identities.
type stubVerifier struct {
	identities map[string]*middleware.Identity
}

func (v *stubVerifier) VerifyAccessToken(
	_ context.Context,
	token string,
) (*middleware.Identity, error) {
	if identity, ok := v.identities[token]; ok {
		return identity, nil
	}
	return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalidSignature)
}

func newOrderRouter(repo *MockRepository) chi.Router {
	verifier := &stubVerifier{identities: map[string]*middleware.Identity{
		"driver-token": deliveryIdentity(1),
		"client-token": clientIdentity(42),
	}}

	handler := order.NewHandler(order.NewService(repo))

	router := chi.NewRouter()
	handler.RegisterRoutes(router, middleware.Authenticator(verifier))
	return router
}

func doRequest(
	t *testing.T,
	router chi.Router,
	method, path, token, body string,
) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_GetOrder_Public(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, int64(9)).
		Return(&order.Order{
			ID:      9,
			Address: "12 Main St",
			Status:  order.StatusPending,
			UserID:  42,
		}, nil).Once()

	rec := doRequest(t, newOrderRouter(repo),
		http.MethodGet, "/orders/9", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "12 Main St")
	repo.AssertExpectations(t)
}

func TestHandler_GetOrder_NotFoundAndBadID(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, int64(404)).
		Return(nil, fmt.Errorf("get order: %w", core.ErrNotFound)).Once()

	router := newOrderRouter(repo)

	rec := doRequest(t, router, http.MethodGet, "/orders/404", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/orders/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	repo.AssertExpectations(t)
}

func TestHandler_GetUserOrders_RequiresToken(t *testing.T) {
	repo := new(MockRepository)
	router := newOrderRouter(repo)

	rec := doRequest(t, router, http.MethodGet, "/orders/user/42", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router,
		http.MethodGet, "/orders/user/42", "forged-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_GetUserOrders_OwnershipEnforced(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListByUser", mock.Anything, int64(42)).
		Return([]order.Order{{ID: 1, UserID: 42}}, nil).Twice()

	router := newOrderRouter(repo)

	// owner sees their own orders
	rec := doRequest(t, router,
		http.MethodGet, "/orders/user/42", "client-token", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// delivery sees anyone's
	rec = doRequest(t, router,
		http.MethodGet, "/orders/user/42", "driver-token", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// a client cannot browse someone else's orders
	rec = doRequest(t, router,
		http.MethodGet, "/orders/user/7", "client-token", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	repo.AssertExpectations(t)
}

func TestHandler_UpdateStatus(t *testing.T) {
	repo := new(MockRepository)
	repo.On("UpdateStatus", mock.Anything, int64(5), order.StatusInProgress).
		Return(&order.Order{
			ID:     5,
			Status: order.StatusInProgress,
			UserID: 42,
		}, nil).Once()

	router := newOrderRouter(repo)
	body := `{"status":"in_progress"}`

	rec := doRequest(t, router,
		http.MethodPut, "/orders/5/status", "driver-token", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "in_progress")

	// clients may not move orders
	rec = doRequest(t, router,
		http.MethodPut, "/orders/5/status", "client-token", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// unknown status never reaches the repository
	rec = doRequest(t, router,
		http.MethodPut, "/orders/5/status", "driver-token",
		`{"status":"lost"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	repo.AssertExpectations(t)
}

func TestHandler_UpdateStatus_MissingOrder(t *testing.T) {
	repo := new(MockRepository)
	repo.On("UpdateStatus", mock.Anything, int64(77), order.StatusDelivered).
		Return(nil, fmt.Errorf("update order status: %w", core.ErrNotFound)).
		Once()

	rec := doRequest(t, newOrderRouter(repo),
		http.MethodPut, "/orders/77/status", "driver-token",
		`{"status":"delivered"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	repo.AssertExpectations(t)
}

func TestHandler_CreateOrder(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.UserID == 42 && o.Status == order.StatusPending
	})).Return(nil).Once()

	router := newOrderRouter(repo)

	rec := doRequest(t, router,
		http.MethodPost, "/orders", "client-token",
		`{"address":"12 Main St","total":19.99}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// negative totals are rejected before any write
	rec = doRequest(t, router,
		http.MethodPost, "/orders", "client-token",
		`{"address":"12 Main St","total":-5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	repo.AssertExpectations(t)
}
