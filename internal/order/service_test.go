// AngelaMos | 2026
// service_test.go

package order_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/delivery-orders/internal/core"
	"github.com/carterperez-dev/delivery-orders/internal/middleware"
	"github.com/carterperez-dev/delivery-orders/internal/order"
)

type MockRepository struct{ mock.Mock }

func (m *MockRepository) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRepository) GetByID(
	ctx context.Context,
	id int64,
) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockRepository) ListByUser(
	ctx context.Context,
	userID int64,
) ([]order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockRepository) UpdateStatus(
	ctx context.Context,
	id int64,
	status string,
) (*order.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func deliveryIdentity(id int64) *middleware.Identity {
	return &middleware.Identity{
		UserID: id,
		Email:  "driver@example.com",
		Role:   "delivery",
	}
}

func clientIdentity(id int64) *middleware.Identity {
	return &middleware.Identity{
		UserID: id,
		Email:  "client@example.com",
		Role:   "client",
	}
}

func TestService_GetOrder_NoIdentityNeeded(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, int64(9)).
		Return(&order.Order{ID: 9, Status: order.StatusPending}, nil).Once()

	svc := order.NewService(repo)

	got, err := svc.GetOrder(t.Context(), 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)
	repo.AssertExpectations(t)
}

func TestService_GetOrder_NotFound(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, int64(404)).
		Return(nil, fmt.Errorf("get order: %w", core.ErrNotFound)).Once()

	svc := order.NewService(repo)

	_, err := svc.GetOrder(t.Context(), 404)
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestService_GetUserOrders_Access(t *testing.T) {
	tests := []struct {
		name       string
		caller     *middleware.Identity
		userID     int64
		wantErr    error
		expectRead bool
	}{
		{
			name:       "delivery reads anyone",
			caller:     deliveryIdentity(1),
			userID:     99,
			expectRead: true,
		},
		{
			name:       "client reads own",
			caller:     clientIdentity(42),
			userID:     42,
			expectRead: true,
		},
		{
			name:    "client cannot read others",
			caller:  clientIdentity(42),
			userID:  43,
			wantErr: core.ErrForbidden,
		},
		{
			name:    "nil identity",
			caller:  nil,
			userID:  1,
			wantErr: core.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			if tt.expectRead {
				repo.On("ListByUser", mock.Anything, tt.userID).
					Return([]order.Order{{ID: 1, UserID: tt.userID}}, nil).
					Once()
			}

			svc := order.NewService(repo)

			orders, err := svc.GetUserOrders(t.Context(), tt.caller, tt.userID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Len(t, orders, 1)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_UpdateOrderStatus_DeliveryOnly(t *testing.T) {
	repo := new(MockRepository)
	svc := order.NewService(repo)

	_, err := svc.UpdateOrderStatus(
		t.Context(),
		clientIdentity(1),
		5,
		order.StatusDelivered,
	)
	require.ErrorIs(t, err, core.ErrForbidden)

	_, err = svc.UpdateOrderStatus(t.Context(), nil, 5, order.StatusDelivered)
	require.ErrorIs(t, err, core.ErrUnauthorized)

	repo.AssertNotCalled(t, "UpdateStatus",
		mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdateOrderStatus_AnyTransitionAllowed(t *testing.T) {
	// delivered back to pending is legal; there is no transition graph
	repo := new(MockRepository)
	repo.On("UpdateStatus", mock.Anything, int64(5), order.StatusPending).
		Return(&order.Order{ID: 5, Status: order.StatusPending}, nil).Once()

	svc := order.NewService(repo)

	got, err := svc.UpdateOrderStatus(
		t.Context(),
		deliveryIdentity(1),
		5,
		order.StatusPending,
	)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, got.Status)
	repo.AssertExpectations(t)
}

func TestService_UpdateOrderStatus_RejectsUnknownStatus(t *testing.T) {
	repo := new(MockRepository)
	svc := order.NewService(repo)

	_, err := svc.UpdateOrderStatus(
		t.Context(),
		deliveryIdentity(1),
		5,
		"teleported",
	)
	require.ErrorIs(t, err, core.ErrInvalidInput)
	repo.AssertNotCalled(t, "UpdateStatus",
		mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdateOrderStatus_MissingOrder(t *testing.T) {
	repo := new(MockRepository)
	repo.On("UpdateStatus", mock.Anything, int64(77), order.StatusDelivered).
		Return(nil, fmt.Errorf("update order status: %w", core.ErrNotFound)).
		Once()

	svc := order.NewService(repo)

	_, err := svc.UpdateOrderStatus(
		t.Context(),
		deliveryIdentity(1),
		77,
		order.StatusDelivered,
	)
	require.ErrorIs(t, err, core.ErrNotFound)
	repo.AssertExpectations(t)
}

func TestService_CreateOrder_OwnedByCaller(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.UserID == 42 &&
			o.Status == order.StatusPending &&
			o.Address == "12 Main St"
	})).Return(nil).Once()

	svc := order.NewService(repo)

	got, err := svc.CreateOrder(t.Context(), clientIdentity(42),
		order.CreateOrderRequest{Address: "12 Main St", Total: 19.99})
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, order.StatusPending, got.Status)
	repo.AssertExpectations(t)
}
