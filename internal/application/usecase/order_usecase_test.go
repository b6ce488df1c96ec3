package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qb "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/querybuilder"
	orderdom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/order"
	productdom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/product"
)

// ==============================
// Fakes
// ==============================

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]orderdom.Order
	seq    int

	createErr error
	statusSet []orderdom.Status // records SetAllItemStatuses calls
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]orderdom.Order{}}
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) GetByTrackingNumber(_ context.Context, tn string) (orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		for _, it := range o.Items {
			if it.TrackingNumber == tn {
				return o, nil
			}
		}
	}
	return orderdom.Order{}, orderdom.ErrNotFound
}

func (r *fakeOrderRepo) ListCreatedBetween(_ context.Context, dr *orderdom.DateRange) ([]orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []orderdom.Order
	for _, o := range r.orders {
		if dr == nil || dr.Contains(o.CreatedAt) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Docs() qb.Source {
	return fakeSource{repo: r}
}

func (r *fakeOrderRepo) Create(_ context.Context, o orderdom.Order) (orderdom.Order, error) {
	if r.createErr != nil {
		return orderdom.Order{}, r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	o.ID = "doc-" + strconv.Itoa(r.seq)
	r.orders[o.ID] = o
	return o, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, id string, patch orderdom.Patch) (orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	if patch.TotalAmount != nil {
		o.TotalAmount = *patch.TotalAmount
	}
	if patch.Items != nil {
		o.Items = *patch.Items
	}
	r.orders[id] = o
	return o, nil
}

func (r *fakeOrderRepo) SetAllItemStatuses(_ context.Context, id string, st orderdom.Status) (orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statusSet = append(r.statusSet, st)
	o, ok := r.orders[id]
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	for i := range o.Items {
		o.Items[i].Status = st
	}
	r.orders[id] = o
	return o, nil
}

type fakeSource struct{ repo *fakeOrderRepo }

func (s fakeSource) Fetch(_ context.Context) ([]qb.Document, error) {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	var docs []qb.Document
	for id, o := range s.repo.orders {
		docs = append(docs, qb.Document{
			"id":          id,
			"orderId":     o.OrderID,
			"customerId":  o.CustomerID,
			"totalAmount": o.TotalAmount,
			"createdAt":   o.CreatedAt,
		})
	}
	return docs, nil
}

// fakeCounter is the in-memory equivalent of the transactional per-day
// counter: strictly monotonic per dateKey.
type fakeCounter struct {
	mu     sync.Mutex
	counts map[string]int
	err    error
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: map[string]int{}}
}

func (c *fakeCounter) Next(_ context.Context, dateKey string) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[dateKey]++
	return c.counts[dateKey], nil
}

type fakeProductRepo struct {
	products map[string]productdom.Product
	gotIDs   []string
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (productdom.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return productdom.Product{}, productdom.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) GetByIDs(_ context.Context, ids []string) ([]productdom.Product, error) {
	r.gotIDs = ids
	var out []productdom.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Docs() qb.Source { return nil }
func (r *fakeProductRepo) Create(_ context.Context, p productdom.Product) (productdom.Product, error) {
	return p, nil
}
func (r *fakeProductRepo) Update(_ context.Context, _ string, _ productdom.Patch) (productdom.Product, error) {
	return productdom.Product{}, nil
}
func (r *fakeProductRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeSummaryReader struct {
	summary orderdom.Summary
	called  bool
	gotNil  bool
}

func (f *fakeSummaryReader) Summary(_ context.Context, r *orderdom.DateRange) (orderdom.Summary, error) {
	f.called = true
	f.gotNil = r == nil
	return f.summary, nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) SendOrderConfirmation(_ context.Context, o orderdom.Order) error {
	m.sent = append(m.sent, o.OrderID)
	return m.err
}

type fakeMirror struct {
	recorded []string
	err      error
}

func (m *fakeMirror) Record(_ context.Context, o orderdom.Order) error {
	m.recorded = append(m.recorded, o.OrderID)
	return m.err
}

// ==============================
// Helpers
// ==============================

func newOrderUC(repo *fakeOrderRepo, counter *fakeCounter, products *fakeProductRepo) *OrderUsecase {
	if products == nil {
		products = &fakeProductRepo{products: map[string]productdom.Product{}}
	}
	uc := NewOrderUsecase(repo, counter, products)
	uc.now = func() time.Time { return time.Date(2026, 4, 12, 9, 30, 0, 0, time.UTC) }
	n := 0
	uc.newTracking = func() string { n++; return fmt.Sprintf("tn-%d", n) }
	return uc
}

func checkoutOrder(t *testing.T) orderdom.Order {
	t.Helper()
	o, err := orderdom.New(
		"c1",
		[]orderdom.LineItem{
			{ProductID: "p1", Quantity: 1, Price: 10},
			{ProductID: "p2", Quantity: 2, Price: 20},
		},
		orderdom.CustomerSnapshot{Name: "Jane", Email: "jane@example.com"},
		orderdom.PaymentSnapshot{Method: "cod"},
		50,
	)
	require.NoError(t, err)
	return o
}

// ==============================
// Create
// ==============================

func TestOrderCreate(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newOrderUC(repo, newFakeCounter(), nil)

	created, err := uc.Create(context.Background(), checkoutOrder(t))
	require.NoError(t, err)

	assert.Equal(t, "20260412-0001", created.OrderID)
	require.Len(t, created.Items, 2)
	assert.Equal(t, "tn-1", created.Items[0].TrackingNumber)
	assert.Equal(t, "tn-2", created.Items[1].TrackingNumber)
	for _, it := range created.Items {
		assert.Equal(t, orderdom.StatusPending, it.Status)
		assert.False(t, it.OrderedAt.IsZero())
	}
}

func TestOrderCreateSequencesWithinDay(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newOrderUC(repo, newFakeCounter(), nil)

	var ids []string
	for i := 0; i < 3; i++ {
		o, err := uc.Create(context.Background(), checkoutOrder(t))
		require.NoError(t, err)
		ids = append(ids, o.OrderID)
	}
	assert.Equal(t, []string{"20260412-0001", "20260412-0002", "20260412-0003"}, ids)
}

func TestOrderCreateConcurrentIDsAreUnique(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newOrderUC(repo, newFakeCounter(), nil)
	uc.newTracking = func() string { return "tn" }

	const n = 50
	var wg sync.WaitGroup
	results := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o := orderdom.Order{
				CustomerID:  "c1",
				Items:       []orderdom.LineItem{{ProductID: "p1", Quantity: 1, Price: 10}},
				TotalAmount: 10,
			}
			created, err := uc.Create(context.Background(), o)
			if err == nil {
				results <- created.OrderID
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := map[string]bool{}
	for id := range results {
		assert.False(t, seen[id], "duplicate orderId %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestOrderCreateCounterFailureWritesNothing(t *testing.T) {
	repo := newFakeOrderRepo()
	counter := newFakeCounter()
	counter.err = errors.New("tx aborted")
	uc := newOrderUC(repo, counter, nil)

	_, err := uc.Create(context.Background(), checkoutOrder(t))
	require.Error(t, err)
	assert.Empty(t, repo.orders)
}

func TestOrderCreateMailFailureDoesNotFailCheckout(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newOrderUC(repo, newFakeCounter(), nil)
	mailer := &fakeMailer{err: errors.New("smtp down")}
	uc.WithMailer(mailer)

	created, err := uc.Create(context.Background(), checkoutOrder(t))
	require.NoError(t, err)
	assert.Equal(t, []string{created.OrderID}, mailer.sent)
}

func TestOrderCreateRecordsMirror(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newOrderUC(repo, newFakeCounter(), nil)
	mirror := &fakeMirror{}
	uc.WithMirror(mirror)

	created, err := uc.Create(context.Background(), checkoutOrder(t))
	require.NoError(t, err)
	assert.Equal(t, []string{created.OrderID}, mirror.recorded)
}

func TestOrderCreateMirrorFailureDoesNotFailCheckout(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newOrderUC(repo, newFakeCounter(), nil)
	mirror := &fakeMirror{err: errors.New("pg down")}
	uc.WithMirror(mirror)

	created, err := uc.Create(context.Background(), checkoutOrder(t))
	require.NoError(t, err)
	require.Len(t, repo.orders, 1)
	assert.Equal(t, []string{created.OrderID}, mirror.recorded)
}

// ==============================
// ChangeStatus
// ==============================

func TestOrderChangeStatus(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newOrderUC(repo, newFakeCounter(), nil)
	created, err := uc.Create(context.Background(), checkoutOrder(t))
	require.NoError(t, err)

	updated, err := uc.ChangeStatus(context.Background(), created.ID, "out-for-delivery")
	require.NoError(t, err)
	for _, it := range updated.Items {
		assert.Equal(t, orderdom.StatusOutForDelivery, it.Status)
	}
}

func TestOrderChangeStatusInvalidNeverTouchesStorage(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newOrderUC(repo, newFakeCounter(), nil)

	_, err := uc.ChangeStatus(context.Background(), "any", "shipped")
	assert.ErrorIs(t, err, orderdom.ErrInvalidStatus)
	assert.Empty(t, repo.statusSet)
}

func TestOrderChangeStatusBackwardAllowed(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newOrderUC(repo, newFakeCounter(), nil)
	created, err := uc.Create(context.Background(), checkoutOrder(t))
	require.NoError(t, err)

	_, err = uc.ChangeStatus(context.Background(), created.ID, "completed")
	require.NoError(t, err)
	updated, err := uc.ChangeStatus(context.Background(), created.ID, "pending")
	require.NoError(t, err)
	assert.Equal(t, orderdom.StatusPending, updated.Items[0].Status)
}

func TestOrderChangeStatusRecordsMirror(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newOrderUC(repo, newFakeCounter(), nil)
	created, err := uc.Create(context.Background(), checkoutOrder(t))
	require.NoError(t, err)

	mirror := &fakeMirror{}
	uc.WithMirror(mirror)

	_, err = uc.ChangeStatus(context.Background(), created.ID, "processing")
	require.NoError(t, err)
	assert.Equal(t, []string{created.OrderID}, mirror.recorded)
}

// ==============================
// Update
// ==============================

func TestOrderUpdateMissingOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newOrderUC(repo, newFakeCounter(), nil)

	amount := 99.0
	_, err := uc.Update(context.Background(), "nope", orderdom.Patch{TotalAmount: &amount})
	assert.ErrorIs(t, err, orderdom.ErrNotFound)
}

// ==============================
// Tracking
// ==============================

func TestOrderByTrackingNumberNarrowsItems(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newOrderUC(repo, newFakeCounter(), nil)
	created, err := uc.Create(context.Background(), checkoutOrder(t))
	require.NoError(t, err)

	got, err := uc.ByTrackingNumber(context.Background(), created.Items[1].TrackingNumber)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "p2", got.Items[0].ProductID)
	assert.Equal(t, created.OrderID, got.OrderID)
}

func TestOrderByTrackingNumberUnknown(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newOrderUC(repo, newFakeCounter(), nil)

	_, err := uc.ByTrackingNumber(context.Background(), "tn-missing")
	assert.ErrorIs(t, err, orderdom.ErrNotFound)

	_, err = uc.ByTrackingNumber(context.Background(), "  ")
	assert.ErrorIs(t, err, orderdom.ErrNotFound)
}

// ==============================
// Summaries
// ==============================

func TestOrderSummaryFromDocumentStore(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newOrderUC(repo, newFakeCounter(), nil)

	for i, st := range []orderdom.Status{orderdom.StatusPending, orderdom.StatusPending, orderdom.StatusCompleted} {
		o := checkoutOrder(t)
		o.TotalAmount = float64(50 + i*25)
		created, err := uc.Create(context.Background(), o)
		require.NoError(t, err)
		_, err = uc.ChangeStatus(context.Background(), created.ID, string(st))
		require.NoError(t, err)
	}

	s, err := uc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalOrders)
	assert.Equal(t, 2, s.TotalPendingOrders)
	assert.Equal(t, 1, s.TotalCompletedOrders)
	assert.Equal(t, 125.0, s.TotalPendingAmount) // 50 + 75
	assert.Equal(t, 100.0, s.TotalCompletedAmount)
}

func TestOrderSummaryPrefersReadModel(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newOrderUC(repo, newFakeCounter(), nil)
	reader := &fakeSummaryReader{summary: orderdom.Summary{TotalOrders: 42}}
	uc.WithSummaryReader(reader)

	s, err := uc.Summary(context.Background())
	require.NoError(t, err)
	assert.True(t, reader.called)
	assert.True(t, reader.gotNil)
	assert.Equal(t, 42, s.TotalOrders)
}

func TestOrderRangeSummaryRejectsBadDatesBeforeStorage(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newOrderUC(repo, newFakeCounter(), nil)
	reader := &fakeSummaryReader{}
	uc.WithSummaryReader(reader)

	_, err := uc.RangeSummary(context.Background(), "not-a-date", "2026-01-31")
	assert.ErrorIs(t, err, orderdom.ErrInvalidDateRange)
	assert.False(t, reader.called)

	_, err = uc.RangeSummary(context.Background(), "2026-02-01", "2026-01-31")
	assert.ErrorIs(t, err, orderdom.ErrInvalidDateRange)
	assert.False(t, reader.called)
}

func TestOrderRangeSummaryWindow(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newOrderUC(repo, newFakeCounter(), nil)

	mk := func(created time.Time) {
		o := checkoutOrder(t)
		o.CreatedAt = created
		co, err := repo.Create(context.Background(), o)
		require.NoError(t, err)
		_, err = repo.SetAllItemStatuses(context.Background(), co.ID, orderdom.StatusPending)
		require.NoError(t, err)
	}
	mk(time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC))
	mk(time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC)) // inside: end widened to end of day
	mk(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))   // outside

	s, err := uc.RangeSummary(context.Background(), "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, 2, s.TotalOrders)
	assert.Equal(t, 2, s.TotalPendingOrders)
}

// ==============================
// Recently ordered products
// ==============================

func TestRecentlyOrderedProducts(t *testing.T) {
	repo := newFakeOrderRepo()
	products := &fakeProductRepo{products: map[string]productdom.Product{}}
	for i := 1; i <= 15; i++ {
		id := fmt.Sprintf("p%d", i)
		products.products[id] = productdom.Product{ID: id, Name: "Product " + id}
	}
	uc := newOrderUC(repo, newFakeCounter(), products)

	// 15 distinct products, each ordered one day later than the previous
	for i := 1; i <= 15; i++ {
		o := orderdom.Order{
			CustomerID: "c1",
			Items: []orderdom.LineItem{{
				ProductID: fmt.Sprintf("p%d", i),
				Quantity:  1,
				Price:     1,
				Status:    orderdom.StatusPending,
				OrderedAt: time.Date(2026, 3, i, 0, 0, 0, 0, time.UTC),
			}},
			TotalAmount: 1,
			CreatedAt:   time.Date(2026, 3, i, 0, 0, 0, 0, time.UTC),
		}
		_, err := repo.Create(context.Background(), o)
		require.NoError(t, err)
	}

	got, err := uc.RecentlyOrderedProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, RecentProductsLimit)
	// newest first: p15 down to p4
	assert.Equal(t, "p15", got[0].ID)
	assert.Equal(t, "p4", got[len(got)-1].ID)
}

func TestRecentlyOrderedProductsDedupesByLatest(t *testing.T) {
	repo := newFakeOrderRepo()
	products := &fakeProductRepo{products: map[string]productdom.Product{
		"p1": {ID: "p1"}, "p2": {ID: "p2"},
	}}
	uc := newOrderUC(repo, newFakeCounter(), products)

	mk := func(pid string, day int) {
		o := orderdom.Order{
			CustomerID: "c1",
			Items: []orderdom.LineItem{{
				ProductID: pid, Quantity: 1, Price: 1,
				Status:    orderdom.StatusPending,
				OrderedAt: time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
			}},
			TotalAmount: 1,
		}
		_, err := repo.Create(context.Background(), o)
		require.NoError(t, err)
	}
	mk("p1", 1)
	mk("p2", 2)
	mk("p1", 5) // p1 re-ordered later: must rank first, once

	got, err := uc.RecentlyOrderedProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "p2", got[1].ID)
}

func TestRecentlyOrderedProductsEmpty(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newOrderUC(repo, newFakeCounter(), nil)

	got, err := uc.RecentlyOrderedProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

// ==============================
// List / MyOrders
// ==============================

func TestOrderListMeta(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newOrderUC(repo, newFakeCounter(), nil)
	for i := 0; i < 7; i++ {
		_, err := uc.Create(context.Background(), checkoutOrder(t))
		require.NoError(t, err)
	}

	docs, meta, err := uc.List(context.Background(), map[string]string{"limit": "3", "page": "2"})
	require.NoError(t, err)
	assert.Len(t, docs, 3)
	assert.Equal(t, qb.Meta{Page: 2, Limit: 3, Total: 7, TotalPage: 3}, meta)
}

func TestMyOrdersScopedToCustomer(t *testing.T) {
	repo := newFakeOrderRepo()
	uc := newOrderUC(repo, newFakeCounter(), nil)

	mine, err := uc.Create(context.Background(), checkoutOrder(t))
	require.NoError(t, err)

	other := checkoutOrder(t)
	other.CustomerID = "c2"
	_, err = uc.Create(context.Background(), other)
	require.NoError(t, err)

	docs, err := uc.MyOrders(context.Background(), "c1", nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, mine.OrderID, docs[0]["orderId"])
}
