// AngelaMos | 2026
// handler.go

package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/delivery-orders/internal/core"
	"github.com/carterperez-dev/delivery-orders/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/orders", func(r chi.Router) {
		// Reading a single order requires no token.
		r.Get("/{orderID}", h.GetOrder)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Post("/", h.CreateOrder)
			r.Get("/user/{userID}", h.GetUserOrders)
			r.Put("/{orderID}/status", h.UpdateStatus)
		})
	})
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseID(w, chi.URLParam(r, "orderID"), "order id")
	if !ok {
		return
	}

	order, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "order")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToOrderResponse(order))
}

func (h *Handler) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, chi.URLParam(r, "userID"), "user id")
	if !ok {
		return
	}

	caller := middleware.GetIdentity(r.Context())

	orders, err := h.service.GetUserOrders(r.Context(), caller, userID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	core.OK(w, ToOrderListResponse(orders))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseID(w, chi.URLParam(r, "orderID"), "order id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	caller := middleware.GetIdentity(r.Context())

	order, err := h.service.UpdateOrderStatus(
		r.Context(),
		caller,
		orderID,
		req.Status,
	)
	if err != nil {
		h.respondError(w, err)
		return
	}

	core.OK(w, ToOrderResponse(order))
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	caller := middleware.GetIdentity(r.Context())

	order, err := h.service.CreateOrder(r.Context(), caller, req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	core.Created(w, ToOrderResponse(order))
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "order")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "")
	case errors.Is(err, core.ErrUnauthorized):
		core.Unauthorized(w, "")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "invalid order status")
	default:
		core.InternalServerError(w, err)
	}
}

func parseID(w http.ResponseWriter, raw, label string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		core.BadRequest(w, "invalid "+label)
		return 0, false
	}
	return id, true
}
