// AngelaMos | 2026
// service.go

package order

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/delivery-orders/internal/core"
	"github.com/carterperez-dev/delivery-orders/internal/middleware"
	"github.com/carterperez-dev/delivery-orders/internal/user"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetOrder is unauthenticated. Anyone holding an order ID may read it.
func (s *Service) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

// GetUserOrders returns a user's orders, newest first. Delivery staff may
// read any user's orders; everyone else only their own.
func (s *Service) GetUserOrders(
	ctx context.Context,
	caller *middleware.Identity,
	userID int64,
) ([]Order, error) {
	if caller == nil {
		return nil, fmt.Errorf("list orders: %w", core.ErrUnauthorized)
	}
	if caller.Role != user.RoleDelivery && caller.UserID != userID {
		return nil, fmt.Errorf("list orders: %w", core.ErrForbidden)
	}

	return s.repo.ListByUser(ctx, userID)
}

// UpdateOrderStatus moves an order to the given status. Delivery-only;
// any valid status may be set regardless of the current one.
func (s *Service) UpdateOrderStatus(
	ctx context.Context,
	caller *middleware.Identity,
	orderID int64,
	status string,
) (*Order, error) {
	if caller == nil {
		return nil, fmt.Errorf("update order status: %w", core.ErrUnauthorized)
	}
	if caller.Role != user.RoleDelivery {
		return nil, fmt.Errorf("update order status: %w", core.ErrForbidden)
	}
	if !ValidStatus(status) {
		return nil, fmt.Errorf("update order status: %w", core.ErrInvalidInput)
	}

	return s.repo.UpdateStatus(ctx, orderID, status)
}

// CreateOrder places a new pending order owned by the caller.
func (s *Service) CreateOrder(
	ctx context.Context,
	caller *middleware.Identity,
	req CreateOrderRequest,
) (*Order, error) {
	if caller == nil {
		return nil, fmt.Errorf("create order: %w", core.ErrUnauthorized)
	}

	order := &Order{
		Address: req.Address,
		Status:  StatusPending,
		Total:   req.Total,
		UserID:  caller.UserID,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}
