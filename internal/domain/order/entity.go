// internal/domain/order/entity.go
package order

import (
	"errors"
	"strings"
	"time"
)

// ========================================
// Snapshot structs (stored in Order)
// ========================================

// CustomerSnapshot is the contact block captured at checkout.
type CustomerSnapshot struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type PaymentSnapshot struct {
	Method        string `json:"method"`
	TransactionID string `json:"transactionId"`
}

// LineItem is one ordered product inside Order.Items.
// TrackingNumber is assigned once at creation and never changes;
// Status is bulk-overwritten by whole-order transitions.
type LineItem struct {
	ProductID      string    `json:"productId"`
	TrackingNumber string    `json:"trackingNumber"`
	Status         Status    `json:"status"`
	Quantity       int       `json:"quantity"`
	Price          float64   `json:"price"`
	OrderedAt      time.Time `json:"orderedAt"`
}

// ========================================
// Entity
// ========================================

type Order struct {
	ID         string `json:"id"`
	OrderID    string `json:"orderId"` // human-readable, "YYYYMMDD-NNNN"
	CustomerID string `json:"customerId"`

	Items    []LineItem       `json:"orderInfo"`
	Customer CustomerSnapshot `json:"customerInfo"`
	Payment  PaymentSnapshot  `json:"paymentInfo"`

	TotalAmount float64 `json:"totalAmount"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Patch represents partial updates to Order fields. A nil field means
// "no change". OrderID and CustomerID are immutable after creation.
type Patch struct {
	Items       *[]LineItem
	Customer    *CustomerSnapshot
	Payment     *PaymentSnapshot
	TotalAmount *float64
}

// ========================================
// Errors
// ========================================

var (
	ErrNotFound         = errors.New("order: not found")
	ErrConflict         = errors.New("order: conflict")
	ErrInvalidID        = errors.New("order: invalid id")
	ErrInvalidCustomer  = errors.New("order: invalid customerId")
	ErrInvalidItems     = errors.New("order: invalid items")
	ErrInvalidItem      = errors.New("order: invalid line item")
	ErrInvalidAmount    = errors.New("order: invalid totalAmount")
	ErrInvalidStatus    = errors.New("order: invalid status value")
	ErrInvalidDateRange = errors.New("order: invalid date range")
)

// ========================================
// Policy
// ========================================

var MinItemsRequired = 1

// SearchableFields is what a searchTerm matches against on list endpoints.
var SearchableFields = []string{
	"orderId",
	"customerInfo.name",
	"customerInfo.email",
	"orderInfo.trackingNumber",
}

// ========================================
// Constructor
// ========================================

// New builds a checkout-time Order. OrderID and tracking numbers are NOT
// assigned here; allocation happens in the usecase right before persistence.
func New(
	customerID string,
	items []LineItem,
	customer CustomerSnapshot,
	payment PaymentSnapshot,
	totalAmount float64,
) (Order, error) {
	o := Order{
		CustomerID:  strings.TrimSpace(customerID),
		Items:       normalizeItems(items),
		Customer:    normalizeCustomer(customer),
		Payment:     payment,
		TotalAmount: totalAmount,
	}
	if err := o.validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

// ========================================
// Validation
// ========================================

func (o Order) validate() error {
	if o.CustomerID == "" {
		return ErrInvalidCustomer
	}
	if o.TotalAmount < 0 {
		return ErrInvalidAmount
	}
	return validateItems(o.Items)
}

func validateItems(items []LineItem) error {
	if len(items) < MinItemsRequired {
		return ErrInvalidItems
	}
	for _, it := range items {
		if strings.TrimSpace(it.ProductID) == "" {
			return ErrInvalidItem
		}
		if it.Quantity <= 0 {
			return ErrInvalidItem
		}
		if it.Price < 0 {
			return ErrInvalidItem
		}
		if it.Status != "" && !it.Status.Valid() {
			return ErrInvalidStatus
		}
	}
	return nil
}

// ========================================
// Helpers
// ========================================

func normalizeItems(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		it.ProductID = strings.TrimSpace(it.ProductID)
		it.TrackingNumber = strings.TrimSpace(it.TrackingNumber)
		out = append(out, it)
	}
	return out
}

func normalizeCustomer(c CustomerSnapshot) CustomerSnapshot {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	return c
}
