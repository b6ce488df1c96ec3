// internal/adapters/out/db/order_mirror_pg_test.go
package db

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/order"
)

func mirrorFixture() orderdom.Order {
	created := time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	return orderdom.Order{
		ID:         "ord-1",
		OrderID:    "20260814-0001",
		CustomerID: "cust-1",
		Items: []orderdom.LineItem{
			{
				ProductID:      "prod-1",
				TrackingNumber: "TRK-1",
				Status:         orderdom.StatusPending,
				Quantity:       2,
				Price:          49.50,
				OrderedAt:      created,
			},
		},
		TotalAmount: 99.0,
		CreatedAt:   created,
		UpdatedAt:   &updated,
	}
}

func TestOrderMirrorRecordInsertsNewOrder(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectExec("INSERT INTO orders").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mirror := NewOrderMirrorPG(mockDB)
	err = mirror.Record(context.Background(), mirrorFixture())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderMirrorRecordUpdatesExistingOrder(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	// the pool uses the pgx stdlib driver, so duplicate keys surface
	// as *pgconn.PgError
	mock.ExpectExec("INSERT INTO orders").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectExec("UPDATE orders").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mirror := NewOrderMirrorPG(mockDB)
	err = mirror.Record(context.Background(), mirrorFixture())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderMirrorRecordPropagatesInsertFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectExec("INSERT INTO orders").
		WillReturnError(errors.New("connection reset"))

	mirror := NewOrderMirrorPG(mockDB)
	err = mirror.Record(context.Background(), mirrorFixture())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mirror insert")
	assert.NoError(t, mock.ExpectationsWereMet())
}
