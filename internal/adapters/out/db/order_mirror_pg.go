// internal/adapters/out/db/order_mirror_pg.go
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	dbcommon "github.com/ridoy-softworldit/bdm-bazar-backend/internal/adapters/out/db/common"
	orderdom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/order"
)

// OrderMirrorPG keeps the Postgres orders table in sync with the document
// store so the summary queries have something to aggregate. Writes are
// best-effort; the caller decides whether a mirror failure matters.
type OrderMirrorPG struct {
	DB *sql.DB
}

func NewOrderMirrorPG(db *sql.DB) *OrderMirrorPG {
	return &OrderMirrorPG{DB: db}
}

// Record upserts one order: insert first, and on a duplicate key fall back
// to an update. The two statements deliberately do NOT share a transaction;
// Postgres aborts a transaction whose statement errored, which would make
// the update unreachable after the duplicate-key insert.
func (m *OrderMirrorPG) Record(ctx context.Context, o orderdom.Order) error {
	err := m.insert(ctx, o)
	if err == nil {
		return nil
	}
	if !dbcommon.IsUniqueViolation(err) {
		return fmt.Errorf("mirror insert %s: %w", o.ID, err)
	}
	if err := m.update(ctx, o); err != nil {
		return fmt.Errorf("mirror update %s: %w", o.ID, err)
	}
	return nil
}

func (m *OrderMirrorPG) insert(ctx context.Context, o orderdom.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	run := dbcommon.GetRunner(ctx, m.DB)
	_, err = run.ExecContext(ctx, `
		INSERT INTO orders (id, order_id, customer_id, items, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		o.ID, o.OrderID, o.CustomerID, items, o.TotalAmount, o.CreatedAt, o.UpdatedAt,
	)
	return err
}

func (m *OrderMirrorPG) update(ctx context.Context, o orderdom.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	run := dbcommon.GetRunner(ctx, m.DB)
	_, err = run.ExecContext(ctx, `
		UPDATE orders
		SET items = $2, total_amount = $3, updated_at = $4
		WHERE id = $1`,
		o.ID, items, o.TotalAmount, o.UpdatedAt,
	)
	return err
}
