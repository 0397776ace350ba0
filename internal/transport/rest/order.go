package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/abgdnv/shopfront/internal/service"
	"github.com/abgdnv/shopfront/pkg/web"
)

// CreateOrder handles the creation of a new order.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := web.GetOwnerID(w, r, h.logger)
	if !ok {
		return
	}
	var orderCreateDto service.OrderCreateDto
	if err := json.NewDecoder(r.Body).Decode(&orderCreateDto); err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.orders.Create(r.Context(), ownerID, orderCreateDto)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to create order")
		return
	}
	h.logger.InfoContext(r.Context(), "Order created successfully", slog.String("order_id", created.ID.String()))
	web.RespondJSON(w, h.logger, http.StatusCreated, created)
}

func (h *Handler) FindOrderByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger, "orderId")
	if !ok {
		return
	}
	ownerID, ok := web.GetOwnerID(w, r, h.logger)
	if !ok {
		return
	}
	order, err := h.orders.FindByID(r.Context(), ownerID, id)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to retrieve order")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, order)
}

// FindOrdersByIDs returns the orders listed in the ids query parameter, in that order.
func (h *Handler) FindOrdersByIDs(w http.ResponseWriter, r *http.Request) {
	ids, ok := web.ParseUUIDList(w, r, h.logger, "ids")
	if !ok {
		return
	}
	ownerID, ok := web.GetOwnerID(w, r, h.logger)
	if !ok {
		return
	}
	orders, err := h.orders.FindByIDs(r.Context(), ownerID, ids)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to fetch orders")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, orders)
}

// ChangeOrderStatus overwrites the status of an order.
func (h *Handler) ChangeOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger, "orderId")
	if !ok {
		return
	}
	ownerID, ok := web.GetOwnerID(w, r, h.logger)
	if !ok {
		return
	}
	var statusDto service.OrderStatusDto
	if err := json.NewDecoder(r.Body).Decode(&statusDto); err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.orders.ChangeStatus(r.Context(), ownerID, id, statusDto.OrderStatus); err != nil {
		h.respondServiceError(w, r, err, "Failed to update order status")
		return
	}
	h.logger.InfoContext(r.Context(), "Order status changed", "order_id", id, "status", statusDto.OrderStatus)
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Order status updated"})
}
