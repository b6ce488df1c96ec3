// internal/adapters/in/http/handlers/order_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	qb "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/querybuilder"
	usecase "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/usecase"
	orderdom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/order"

	"github.com/ridoy-softworldit/bdm-bazar-backend/internal/adapters/in/http/middleware"
)

// OrderHandler serves the /orders endpoints.
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) http.Handler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	tail := pathTail(r.URL.Path, "/orders")

	switch {
	case tail == "" && r.Method == http.MethodGet:
		h.list(w, r)
	case tail == "" && r.Method == http.MethodPost:
		h.create(w, r)

	case tail == "my-orders" && r.Method == http.MethodGet:
		h.myOrders(w, r)
	case tail == "summary" && r.Method == http.MethodGet:
		h.summary(w, r)
	case tail == "range-summary" && r.Method == http.MethodGet:
		h.rangeSummary(w, r)
	case tail == "recent-products" && r.Method == http.MethodGet:
		h.recentProducts(w, r)

	case strings.HasPrefix(tail, "track/") && r.Method == http.MethodGet:
		h.track(w, r, strings.TrimPrefix(tail, "track/"))

	case strings.HasSuffix(tail, "/status") && r.Method == http.MethodPatch:
		h.changeStatus(w, r, strings.TrimSuffix(tail, "/status"))

	case tail != "" && r.Method == http.MethodGet:
		h.get(w, r, tail)
	case tail != "" && (r.Method == http.MethodPatch || r.Method == http.MethodPut):
		h.update(w, r, tail)

	case tail == "":
		methodNotAllowed(w)
	default:
		notFound(w)
	}
}

// ----------------------------------------
// Request DTOs
// ----------------------------------------

type orderItemDTO struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type createOrderDTO struct {
	CustomerID  string                    `json:"customerId"`
	Items       []orderItemDTO            `json:"orderInfo"`
	Customer    orderdom.CustomerSnapshot `json:"customerInfo"`
	Payment     orderdom.PaymentSnapshot  `json:"paymentInfo"`
	TotalAmount float64                   `json:"totalAmount"`
}

type updateOrderDTO struct {
	Items       *[]orderdom.LineItem       `json:"orderInfo"`
	Customer    *orderdom.CustomerSnapshot `json:"customerInfo"`
	Payment     *orderdom.PaymentSnapshot  `json:"paymentInfo"`
	TotalAmount *float64                   `json:"totalAmount"`
}

type changeStatusDTO struct {
	Status string `json:"status"`
}

// ----------------------------------------
// Endpoints
// ----------------------------------------

// GET /orders
func (h *OrderHandler) list(w http.ResponseWriter, r *http.Request) {
	docs, meta, err := h.uc.List(r.Context(), queryParams(r))
	if err != nil {
		writeOrderErr(w, err)
		return
	}
	writeList(w, docs, meta)
}

// POST /orders
func (h *OrderHandler) create(w http.ResponseWriter, r *http.Request) {
	var dto createOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	items := make([]orderdom.LineItem, 0, len(dto.Items))
	for _, it := range dto.Items {
		items = append(items, orderdom.LineItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	if dto.Customer.Email == "" {
		if email, ok := middleware.CurrentEmail(r); ok {
			dto.Customer.Email = email
		}
	}

	o, err := orderdom.New(dto.CustomerID, items, dto.Customer, dto.Payment, dto.TotalAmount)
	if err != nil {
		writeOrderErr(w, err)
		return
	}

	created, err := h.uc.Create(r.Context(), o)
	if err != nil {
		writeOrderErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GET /orders/my-orders
// The customer is resolved from the Firebase token; an explicit
// ?customerId= is accepted as a fallback for unauthenticated setups.
func (h *OrderHandler) myOrders(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CurrentUID(r)
	if !ok {
		customerID = strings.TrimSpace(r.URL.Query().Get("customerId"))
	}
	if customerID == "" {
		writeError(w, http.StatusUnauthorized, "customer identity required")
		return
	}

	docs, err := h.uc.MyOrders(r.Context(), customerID, queryParams(r))
	if err != nil {
		writeOrderErr(w, err)
		return
	}
	if docs == nil {
		docs = []qb.Document{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": docs})
}

// GET /orders/summary
func (h *OrderHandler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.uc.Summary(r.Context())
	if err != nil {
		writeOrderErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// GET /orders/range-summary?startDate=...&endDate=...
func (h *OrderHandler) rangeSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s, err := h.uc.RangeSummary(r.Context(), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		writeOrderErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// GET /orders/recent-products
func (h *OrderHandler) recentProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.uc.RecentlyOrderedProducts(r.Context())
	if err != nil {
		writeOrderErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": products})
}

// GET /orders/track/{trackingNumber}
func (h *OrderHandler) track(w http.ResponseWriter, r *http.Request, tn string) {
	tn = strings.TrimSpace(tn)
	if tn == "" {
		writeError(w, http.StatusBadRequest, "invalid tracking number")
		return
	}
	o, err := h.uc.ByTrackingNumber(r.Context(), tn)
	if err != nil {
		writeOrderErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// GET /orders/{id}
func (h *OrderHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	o, err := h.uc.GetByID(r.Context(), id)
	if err != nil {
		writeOrderErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// PATCH /orders/{id}/status
func (h *OrderHandler) changeStatus(w http.ResponseWriter, r *http.Request, id string) {
	var dto changeStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	o, err := h.uc.ChangeStatus(r.Context(), id, dto.Status)
	if err != nil {
		writeOrderErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// PATCH /orders/{id}
func (h *OrderHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var dto updateOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	patch := orderdom.Patch{
		Items:       dto.Items,
		Customer:    dto.Customer,
		Payment:     dto.Payment,
		TotalAmount: dto.TotalAmount,
	}

	o, err := h.uc.Update(r.Context(), id, patch)
	if err != nil {
		writeOrderErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// ----------------------------------------
// Error mapping
// ----------------------------------------

func writeOrderErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch err {
	case orderdom.ErrNotFound:
		code = http.StatusNotFound
	case orderdom.ErrConflict:
		code = http.StatusConflict
	case orderdom.ErrInvalidID,
		orderdom.ErrInvalidCustomer,
		orderdom.ErrInvalidItems,
		orderdom.ErrInvalidItem,
		orderdom.ErrInvalidAmount,
		orderdom.ErrInvalidStatus,
		orderdom.ErrInvalidDateRange:
		code = http.StatusBadRequest
	}
	writeError(w, code, err.Error())
}
