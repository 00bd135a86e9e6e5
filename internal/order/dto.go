// AngelaMos | 2026
// dto.go

package order

import (
	"time"
)

type CreateOrderRequest struct {
	Address string  `json:"address" validate:"required,max=500"`
	Total   float64 `json:"total"   validate:"gte=0"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress delivered"`
}

type OrderResponse struct {
	ID        int64      `json:"id"`
	Address   string     `json:"address"`
	Status    string     `json:"status"`
	Total     float64    `json:"total"`
	UserID    int64      `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Count  int             `json:"count"`
}

func ToOrderResponse(o *Order) OrderResponse {
	return OrderResponse{
		ID:        o.ID,
		Address:   o.Address,
		Status:    o.Status,
		Total:     o.Total,
		UserID:    o.UserID,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func ToOrderListResponse(orders []Order) OrderListResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, ToOrderResponse(&orders[i]))
	}
	return OrderListResponse{Orders: out, Count: len(out)}
}
