// internal/adapters/out/firestore/order_counter_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	fscommon "github.com/ridoy-softworldit/bdm-bazar-backend/internal/adapters/out/firestore/common"
	orderdom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/order"
)

// OrderCounterFS allocates the per-day order sequence.
//
// Next runs a Firestore transaction (serializable read-modify-write) over
// orderCounters/{dateKey}. Firestore retries the transaction on contention,
// so concurrent checkouts each observe a distinct post-increment count.
// That atomicity lives at the storage layer, not in application locking.
type OrderCounterFS struct {
	Client *firestore.Client
}

func NewOrderCounterFS(client *firestore.Client) *OrderCounterFS {
	return &OrderCounterFS{Client: client}
}

var _ orderdom.CounterRepository = (*OrderCounterFS)(nil)

func (r *OrderCounterFS) col() *firestore.CollectionRef {
	return r.Client.Collection("orderCounters")
}

func (r *OrderCounterFS) Next(ctx context.Context, dateKey string) (int, error) {
	if r.Client == nil {
		return 0, errors.New("firestore client is nil")
	}
	dateKey = strings.TrimSpace(dateKey)
	if dateKey == "" {
		return 0, errors.New("order counter: empty dateKey")
	}

	ref := r.col().Doc(dateKey)
	var count int

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) != codes.NotFound {
				return err
			}
			// first order of the day: lazily create with count=1
			count = 1
			return tx.Set(ref, map[string]any{
				"date":  dateKey,
				"count": count,
			})
		}

		count = fscommon.GetInt(snap.Data(), "count") + 1
		return tx.Update(ref, []firestore.Update{{Path: "count", Value: count}})
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
