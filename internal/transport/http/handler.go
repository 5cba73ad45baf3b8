// Package httpapi публикует хранилище заказов по HTTP для витрины пиццерии.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pizzaria/internal/domain"
)

// Коды ошибок в теле ответа.
const (
	codeInvalidRequest = "invalid_request"
	codeInvalidOrder   = "invalid_order"
	codeNotFound       = "not_found"
	codeInternal       = "internal"
)

// OrderService: операции, которые обслуживает HTTP слой.
type OrderService interface {
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order domain.Order) error
	List(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, id int64) (domain.Order, error)
	Delete(ctx context.Context, id int64) error
	Flavors(ctx context.Context) ([]domain.Flavor, error)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Handler обрабатывает REST запросы к заказам.
type Handler struct {
	service OrderService
	logger  *log.Entry
}

// NewHandler создаёт HTTP обработчик заказов.
func NewHandler(service OrderService, logger *log.Entry) *Handler {
	if logger == nil {
		logger = log.WithField("component", "http")
	}
	return &Handler{service: service, logger: logger}
}

// Router собирает маршруты и middleware.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestID, recoverer(h.logger), accessLog(h.logger))

	orders := r.PathPrefix("/pedidos").Subrouter()
	orders.HandleFunc("", h.createOrder).Methods(http.MethodPost)
	orders.HandleFunc("", h.listOrders).Methods(http.MethodGet)
	orders.HandleFunc("/{id:[0-9]+}", h.getOrder).Methods(http.MethodGet)
	orders.HandleFunc("/{id:[0-9]+}", h.updateOrder).Methods(http.MethodPut)
	orders.HandleFunc("/{id:[0-9]+}", h.deleteOrder).Methods(http.MethodDelete)

	r.HandleFunc("/carrinho/adicionar", h.checkout).Methods(http.MethodPost)
	r.HandleFunc("/sabores", h.listFlavors).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeInvalidRequest, "method not allowed")
	})
	return r
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var order domain.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, fmt.Sprintf("invalid body: %v", err))
		return
	}
	// Идентификаторы назначает хранилище.
	order.ID = 0
	for i := range order.Items {
		order.Items[i].ID = 0
	}
	h.create(w, r, &order)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var cart cartRequest
	if err := json.NewDecoder(r.Body).Decode(&cart); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, fmt.Sprintf("invalid body: %v", err))
		return
	}
	h.create(w, r, cart.toOrder())
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, order *domain.Order) {
	if err := h.service.Create(r.Context(), order); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	var order domain.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, fmt.Sprintf("invalid body: %v", err))
		return
	}
	if order.ID != 0 && order.ID != id {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "idPedido does not match path")
		return
	}
	order.ID = id

	if err := h.service.Update(r.Context(), order); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listFlavors(w http.ResponseWriter, r *http.Request) {
	flavors, err := h.service.Flavors(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, flavors)
}

func orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "invalid order id")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidOrder):
		writeError(w, http.StatusBadRequest, codeInvalidOrder, err.Error())
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	default:
		h.logger.WithError(err).WithField("request_id", RequestIDFromContext(r.Context())).Error("order request failed")
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}
