// internal/domain/order/repository_port.go
package order

import (
	"context"

	qb "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/querybuilder"
)

// Repository defines the persistence port for Order.
type Repository interface {
	// Queries
	GetByID(ctx context.Context, id string) (Order, error)
	// GetByTrackingNumber resolves the order containing the line item with
	// the given (globally unique) tracking number.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (Order, error)
	// ListCreatedBetween returns orders whose CreatedAt falls inside r;
	// a nil range means the whole collection.
	ListCreatedBetween(ctx context.Context, r *DateRange) ([]Order, error)
	// Docs exposes the collection as a raw document source for the query
	// builder (list endpoints).
	Docs() qb.Source

	// Commands
	Create(ctx context.Context, o Order) (Order, error)
	Update(ctx context.Context, id string, patch Patch) (Order, error)
	// SetAllItemStatuses overwrites the status of EVERY line item of the
	// order in one atomic document update and returns the updated order.
	SetAllItemStatuses(ctx context.Context, id string, st Status) (Order, error)
}

// CounterRepository is the per-day sequence port. Next must be a single
// atomic upsert-and-increment at the storage layer: under concurrent order
// creation no two calls for the same dateKey may observe the same count.
type CounterRepository interface {
	Next(ctx context.Context, dateKey string) (int, error)
}

// SummaryReader is an optional read-model port; the Postgres mirror
// implements it so summaries can be served without scanning Firestore.
type SummaryReader interface {
	Summary(ctx context.Context, r *DateRange) (Summary, error)
}
