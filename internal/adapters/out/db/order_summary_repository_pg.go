// internal/adapters/out/db/order_summary_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"math"

	dbcommon "github.com/ridoy-softworldit/bdm-bazar-backend/internal/adapters/out/db/common"
	orderdom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/order"
)

// OrderSummaryRepositoryPG serves order summaries from the Postgres
// mirror of the order collection (orders table with the line items as
// jsonb under "items"). The FIRST array element's status represents the
// whole order, matching the document-store aggregation exactly.
type OrderSummaryRepositoryPG struct {
	DB *sql.DB
}

func NewOrderSummaryRepositoryPG(db *sql.DB) *OrderSummaryRepositoryPG {
	return &OrderSummaryRepositoryPG{DB: db}
}

var _ orderdom.SummaryReader = (*OrderSummaryRepositoryPG)(nil)

func (r *OrderSummaryRepositoryPG) Summary(ctx context.Context, dr *orderdom.DateRange) (orderdom.Summary, error) {
	run := dbcommon.GetRunner(ctx, r.DB)

	const base = `
SELECT
  COUNT(*),
  COUNT(*) FILTER (WHERE items->0->>'status' = 'pending'),
  COUNT(*) FILTER (WHERE items->0->>'status' = 'completed'),
  COALESCE(SUM(total_amount) FILTER (WHERE items->0->>'status' = 'pending'), 0),
  COALESCE(SUM(total_amount) FILTER (WHERE items->0->>'status' = 'completed'), 0)
FROM orders`

	var row *sql.Row
	if dr != nil {
		row = run.QueryRowContext(ctx, base+` WHERE created_at >= $1 AND created_at <= $2`, dr.Start, dr.End)
	} else {
		row = run.QueryRowContext(ctx, base)
	}

	var s orderdom.Summary
	var pending, compl float64
	if err := row.Scan(
		&s.TotalOrders,
		&s.TotalPendingOrders,
		&s.TotalCompletedOrders,
		&pending,
		&compl,
	); err != nil {
		return orderdom.Summary{}, err
	}

	// rounding happens here, at the output edge, same as the FS path
	s.TotalPendingAmount = math.Round(pending*100) / 100
	s.TotalCompletedAmount = math.Round(compl*100) / 100
	return s, nil
}
