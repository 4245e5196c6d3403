package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/fulfillment"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/storage"
)

type itemRequest struct {
	Name        string          `json:"name" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity" validate:"required,min=1"`
	PrepMinutes int             `json:"prepMinutes" validate:"min=0"`
}

type createOrderRequest struct {
	Items           []itemRequest `json:"items" validate:"required,min=1,dive"`
	Method          string        `json:"method"`
	DeliveryAddress string        `json:"deliveryAddress"`
	Phone           string        `json:"phone" validate:"required"`
	Notes           string        `json:"notes"`
	PaymentMethod   string        `json:"paymentMethod" validate:"required"`
}

type patchResponse struct {
	Order   *fulfillment.Order    `json:"order"`
	Changes fulfillment.Changeset `json:"changes"`
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := customerFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	items := make([]fulfillment.Item, len(req.Items))
	for i, item := range req.Items {
		items[i] = fulfillment.Item{
			Name:        item.Name,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			PrepMinutes: item.PrepMinutes,
		}
	}

	order, err := s.orders.CreateOrder(r.Context(), storage.Placement{
		CustomerID:      claims.CustomerID,
		CustomerName:    claims.Name,
		Items:           items,
		Method:          req.Method,
		DeliveryAddress: req.DeliveryAddress,
		Phone:           req.Phone,
		CustomerNote:    req.Notes,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		s.respondDomainError(w, r, "create_order", err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

func respondValidationError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": "validation failed on '" + verrs[0].Tag() + "'",
			"field": verrs[0].Namespace(),
		})
		return
	}
	respondError(w, http.StatusBadRequest, "Invalid request body")
}

func (s *Server) handleListOwnOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := customerFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := s.feed.ListOwnOrders(r.Context(), claims.CustomerID)
	if err != nil {
		s.respondDomainError(w, r, "list_own_orders", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetOwnOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := customerFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	order, err := s.feed.GetOwnOrder(r.Context(), claims.CustomerID, mux.Vars(r)["id"])
	if err != nil {
		s.respondDomainError(w, r, "get_own_order", err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	query, err := parseOrderQuery(r)
	if err != nil {
		s.respondDomainError(w, r, "list_orders", err)
		return
	}

	orders, err := s.feed.ListOrders(r.Context(), query)
	if err != nil {
		s.respondDomainError(w, r, "list_orders", err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

type badParamError struct {
	param string
}

func (e badParamError) Error() string {
	return "Invalid value for '" + e.param + "' parameter"
}

func parseOrderQuery(r *http.Request) (storage.OrderQuery, error) {
	values := r.URL.Query()
	q := storage.OrderQuery{Search: strings.TrimSpace(values.Get("q"))}

	if raw := values.Get("status"); raw != "" {
		status, err := fulfillment.ParseStatus(raw)
		if err != nil {
			return q, err
		}
		q.Status = &status
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return q, badParamError{param: "limit"}
		}
		q.Limit = limit
	}
	return q, nil
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	view, err := s.feed.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondDomainError(w, r, "get_order", err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handlePatchOrder(w http.ResponseWriter, r *http.Request) {
	patch, err := fulfillment.DecodePatch(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, changes, err := s.orders.PatchOrder(r.Context(), mux.Vars(r)["id"], patch, staffFrom(r.Context()))
	if err != nil {
		s.respondDomainError(w, r, "patch_order", err)
		return
	}

	if changes == nil {
		changes = fulfillment.Changeset{}
	}
	respondJSON(w, http.StatusOK, patchResponse{Order: order, Changes: changes})
}

func (s *Server) handleOrderHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.feed.GetOrderHistory(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondDomainError(w, r, "order_history", err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}
