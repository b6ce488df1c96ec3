// internal/adapters/out/firestore/order_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	fscommon "github.com/ridoy-softworldit/bdm-bazar-backend/internal/adapters/out/firestore/common"
	qb "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/querybuilder"
	orderdom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/order"
)

// Firestore implementation of order.Repository.
type OrderRepositoryFS struct {
	Client *firestore.Client
}

func NewOrderRepositoryFS(client *firestore.Client) *OrderRepositoryFS {
	return &OrderRepositoryFS{Client: client}
}

var _ orderdom.Repository = (*OrderRepositoryFS)(nil)

func (r *OrderRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("orders")
}

// Docs exposes the collection to the query builder.
func (r *OrderRepositoryFS) Docs() qb.Source {
	return fscommon.CollectionSource{Col: r.col()}
}

// ========================
// Queries
// ========================

func (r *OrderRepositoryFS) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	if r.Client == nil {
		return orderdom.Order{}, errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return orderdom.Order{}, orderdom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return orderdom.Order{}, orderdom.ErrNotFound
		}
		return orderdom.Order{}, err
	}
	return docToOrder(snap.Ref.ID, snap.Data()), nil
}

// GetByTrackingNumber scans the collection; tracking numbers live inside
// the orderInfo array, which Firestore cannot match on a nested field.
func (r *OrderRepositoryFS) GetByTrackingNumber(ctx context.Context, trackingNumber string) (orderdom.Order, error) {
	if r.Client == nil {
		return orderdom.Order{}, errors.New("firestore client is nil")
	}
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return orderdom.Order{}, orderdom.ErrNotFound
	}

	it := r.col().Documents(ctx)
	defer it.Stop()
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return orderdom.Order{}, err
		}
		o := docToOrder(doc.Ref.ID, doc.Data())
		for _, item := range o.Items {
			if item.TrackingNumber == trackingNumber {
				return o, nil
			}
		}
	}
	return orderdom.Order{}, orderdom.ErrNotFound
}

func (r *OrderRepositoryFS) ListCreatedBetween(ctx context.Context, dr *orderdom.DateRange) ([]orderdom.Order, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	q := r.col().Query
	if dr != nil {
		q = q.Where("createdAt", ">=", dr.Start).Where("createdAt", "<=", dr.End)
	}

	it := q.Documents(ctx)
	defer it.Stop()

	var out []orderdom.Order
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, docToOrder(doc.Ref.ID, doc.Data()))
	}
	return out, nil
}

// ========================
// Commands
// ========================

func (r *OrderRepositoryFS) Create(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	if r.Client == nil {
		return orderdom.Order{}, errors.New("firestore client is nil")
	}

	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}

	var ref *firestore.DocumentRef
	if strings.TrimSpace(o.ID) == "" {
		ref = r.col().NewDoc()
		o.ID = ref.ID
	} else {
		ref = r.col().Doc(o.ID)
	}

	if _, err := ref.Create(ctx, orderToDoc(o)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return orderdom.Order{}, orderdom.ErrConflict
		}
		return orderdom.Order{}, err
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		return orderdom.Order{}, err
	}
	return docToOrder(snap.Ref.ID, snap.Data()), nil
}

func (r *OrderRepositoryFS) Update(ctx context.Context, id string, patch orderdom.Patch) (orderdom.Order, error) {
	if r.Client == nil {
		return orderdom.Order{}, errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return orderdom.Order{}, orderdom.ErrNotFound
	}

	updates := []firestore.Update{{Path: "updatedAt", Value: time.Now().UTC()}}
	if patch.Items != nil {
		updates = append(updates, firestore.Update{Path: "orderInfo", Value: itemsToDoc(*patch.Items)})
	}
	if patch.Customer != nil {
		updates = append(updates, firestore.Update{Path: "customerInfo", Value: customerToDoc(*patch.Customer)})
	}
	if patch.Payment != nil {
		updates = append(updates, firestore.Update{Path: "paymentInfo", Value: paymentToDoc(*patch.Payment)})
	}
	if patch.TotalAmount != nil {
		updates = append(updates, firestore.Update{Path: "totalAmount", Value: *patch.TotalAmount})
	}

	ref := r.col().Doc(id)
	if _, err := ref.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return orderdom.Order{}, orderdom.ErrNotFound
		}
		return orderdom.Order{}, err
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		return orderdom.Order{}, err
	}
	return docToOrder(snap.Ref.ID, snap.Data()), nil
}

// SetAllItemStatuses rewrites the status of every line item inside one
// transaction, so concurrent writers never observe a half-updated array.
func (r *OrderRepositoryFS) SetAllItemStatuses(ctx context.Context, id string, st orderdom.Status) (orderdom.Order, error) {
	if r.Client == nil {
		return orderdom.Order{}, errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return orderdom.Order{}, orderdom.ErrNotFound
	}

	ref := r.col().Doc(id)
	var updated orderdom.Order

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return orderdom.ErrNotFound
			}
			return err
		}

		o := docToOrder(snap.Ref.ID, snap.Data())
		now := time.Now().UTC()
		for i := range o.Items {
			o.Items[i].Status = st
		}
		o.UpdatedAt = &now
		updated = o

		return tx.Update(ref, []firestore.Update{
			{Path: "orderInfo", Value: itemsToDoc(o.Items)},
			{Path: "updatedAt", Value: now},
		})
	})
	if err != nil {
		return orderdom.Order{}, err
	}
	return updated, nil
}
