// internal/application/usecase/order_usecase.go
package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	qb "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/querybuilder"
	orderdom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/order"
	productdom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/product"
)

// RecentProductsLimit caps the "recently ordered products" strip.
const RecentProductsLimit = 12

// OrderMailer sends the post-checkout confirmation. Failures are logged,
// never surfaced: mail must not block order creation.
type OrderMailer interface {
	SendOrderConfirmation(ctx context.Context, o orderdom.Order) error
}

// OrderMirror replicates orders into the relational read model that backs
// the summary queries. Like mail, mirroring is best-effort.
type OrderMirror interface {
	Record(ctx context.Context, o orderdom.Order) error
}

type OrderUsecase struct {
	orderRepo   orderdom.Repository
	counterRepo orderdom.CounterRepository
	productRepo productdom.Repository

	// summaryReader is the optional Postgres read model; nil means
	// summaries are computed from the document store.
	summaryReader orderdom.SummaryReader

	mailer OrderMailer // optional
	mirror OrderMirror // optional

	now         func() time.Time
	newTracking func() string
}

func NewOrderUsecase(
	orderRepo orderdom.Repository,
	counterRepo orderdom.CounterRepository,
	productRepo productdom.Repository,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:   orderRepo,
		counterRepo: counterRepo,
		productRepo: productRepo,
		now:         time.Now,
		newTracking: uuid.NewString,
	}
}

// WithSummaryReader plugs the Postgres summary mirror in (DI only).
func (u *OrderUsecase) WithSummaryReader(r orderdom.SummaryReader) *OrderUsecase {
	u.summaryReader = r
	return u
}

// WithMailer plugs the confirmation mailer in (DI only).
func (u *OrderUsecase) WithMailer(m OrderMailer) *OrderUsecase {
	u.mailer = m
	return u
}

// WithMirror plugs the relational order mirror in (DI only).
func (u *OrderUsecase) WithMirror(m OrderMirror) *OrderUsecase {
	u.mirror = m
	return u
}

// ==============================
// Commands
// ==============================

// Create allocates the human-readable order ID, assigns a tracking number
// to every line item, and persists the order. The ID comes from the atomic
// per-day counter; if that increment fails the order is never written, so a
// persisted order always carries a unique OrderID. Counter values consumed
// by a failed persistence are simply skipped: uniqueness, not density, is
// the invariant.
func (u *OrderUsecase) Create(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	now := u.now().UTC()

	orderID, err := u.allocateOrderID(ctx, now)
	if err != nil {
		return orderdom.Order{}, fmt.Errorf("order id allocation: %w", err)
	}
	o.OrderID = orderID

	for i := range o.Items {
		o.Items[i].TrackingNumber = u.newTracking()
		if o.Items[i].Status == "" {
			o.Items[i].Status = orderdom.StatusPending
		}
		if o.Items[i].OrderedAt.IsZero() {
			o.Items[i].OrderedAt = now
		}
	}

	created, err := u.orderRepo.Create(ctx, o)
	if err != nil {
		return orderdom.Order{}, err
	}

	u.mirrorRecord(ctx, created)

	if u.mailer != nil {
		if err := u.mailer.SendOrderConfirmation(ctx, created); err != nil {
			log.Printf("[order] WARN: confirmation mail for %s failed: %v", created.OrderID, err)
		}
	}
	return created, nil
}

// mirrorRecord pushes the order into the read model; failures only warn.
func (u *OrderUsecase) mirrorRecord(ctx context.Context, o orderdom.Order) {
	if u.mirror == nil {
		return
	}
	if err := u.mirror.Record(ctx, o); err != nil {
		log.Printf("[order] WARN: read-model mirror for %s failed: %v", o.OrderID, err)
	}
}

// allocateOrderID derives the dateKey from the allocator's own clock and
// formats "<YYYYMMDD>-<NNNN>". %04d grows naturally past 9999 orders/day.
func (u *OrderUsecase) allocateOrderID(ctx context.Context, now time.Time) (string, error) {
	dateKey := now.Format("20060102")
	seq, err := u.counterRepo.Next(ctx, dateKey)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%04d", dateKey, seq), nil
}

// ChangeStatus validates newStatus against the closed enumeration and
// applies it to every line item of the order in one atomic update.
func (u *OrderUsecase) ChangeStatus(ctx context.Context, orderID string, newStatus string) (orderdom.Order, error) {
	st, err := orderdom.ParseStatus(newStatus)
	if err != nil {
		return orderdom.Order{}, err
	}
	updated, err := u.orderRepo.SetAllItemStatuses(ctx, strings.TrimSpace(orderID), st)
	if err != nil {
		return orderdom.Order{}, err
	}
	u.mirrorRecord(ctx, updated)
	return updated, nil
}

// Update applies a generic partial update after an existence check.
func (u *OrderUsecase) Update(ctx context.Context, id string, patch orderdom.Patch) (orderdom.Order, error) {
	id = strings.TrimSpace(id)
	if _, err := u.orderRepo.GetByID(ctx, id); err != nil {
		return orderdom.Order{}, err
	}
	updated, err := u.orderRepo.Update(ctx, id, patch)
	if err != nil {
		return orderdom.Order{}, err
	}
	u.mirrorRecord(ctx, updated)
	return updated, nil
}

// ==============================
// Queries
// ==============================

func (u *OrderUsecase) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	return u.orderRepo.GetByID(ctx, strings.TrimSpace(id))
}

// List runs the full query-builder pipeline over the order collection.
func (u *OrderUsecase) List(ctx context.Context, params map[string]string) ([]qb.Document, qb.Meta, error) {
	q := qb.New(u.orderRepo.Docs(), params).
		Search(orderdom.SearchableFields...).
		Filter().
		Sort().
		Paginate().
		Fields()

	return q.ExecuteWithMeta(ctx)
}

// MyOrders is List pre-scoped to one customer.
func (u *OrderUsecase) MyOrders(ctx context.Context, customerID string, params map[string]string) ([]qb.Document, error) {
	base := qb.Condition{Field: "customerId", Op: qb.OpEq, Value: strings.TrimSpace(customerID)}
	return qb.New(u.orderRepo.Docs(), params, base).
		Search(orderdom.SearchableFields...).
		Filter().
		Sort().
		Paginate().
		Fields().
		Execute(ctx)
}

// ByTrackingNumber resolves an order publicly and narrows its items to the
// single line item carrying the tracking number.
func (u *OrderUsecase) ByTrackingNumber(ctx context.Context, trackingNumber string) (orderdom.Order, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	o, err := u.orderRepo.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return orderdom.Order{}, err
	}
	for _, it := range o.Items {
		if it.TrackingNumber == trackingNumber {
			o.Items = []orderdom.LineItem{it}
			return o, nil
		}
	}
	// repo matched the order but no item carries the number
	return orderdom.Order{}, orderdom.ErrNotFound
}

// Summary aggregates the whole collection.
func (u *OrderUsecase) Summary(ctx context.Context) (orderdom.Summary, error) {
	return u.summarize(ctx, nil)
}

// RangeSummary aggregates orders created inside [start, end-of-day(end)].
// Date validation happens before any storage access.
func (u *OrderUsecase) RangeSummary(ctx context.Context, startRaw, endRaw string) (orderdom.Summary, error) {
	r, err := orderdom.ParseDateRange(startRaw, endRaw)
	if err != nil {
		return orderdom.Summary{}, err
	}
	return u.summarize(ctx, &r)
}

func (u *OrderUsecase) summarize(ctx context.Context, r *orderdom.DateRange) (orderdom.Summary, error) {
	if u.summaryReader != nil {
		return u.summaryReader.Summary(ctx, r)
	}
	orders, err := u.orderRepo.ListCreatedBetween(ctx, r)
	if err != nil {
		return orderdom.Summary{}, err
	}
	return orderdom.Summarize(orders), nil
}

// RecentlyOrderedProducts unwinds all line items, keeps the newest order
// date per product, and resolves the top products newest-first.
func (u *OrderUsecase) RecentlyOrderedProducts(ctx context.Context) ([]productdom.Product, error) {
	orders, err := u.orderRepo.ListCreatedBetween(ctx, nil)
	if err != nil {
		return nil, err
	}

	latest := make(map[string]time.Time)
	for _, o := range orders {
		for _, it := range o.Items {
			if t, ok := latest[it.ProductID]; !ok || it.OrderedAt.After(t) {
				latest[it.ProductID] = it.OrderedAt
			}
		}
	}
	if len(latest) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(latest))
	for id := range latest {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ti, tj := latest[ids[i]], latest[ids[j]]
		if ti.Equal(tj) {
			return ids[i] < ids[j]
		}
		return ti.After(tj)
	})
	if len(ids) > RecentProductsLimit {
		ids = ids[:RecentProductsLimit]
	}

	return u.productRepo.GetByIDs(ctx, ids)
}
