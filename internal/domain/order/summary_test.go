package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderWith(firstStatus Status, amount float64, more ...Status) Order {
	items := []LineItem{{ProductID: "p1", Status: firstStatus, Quantity: 1, Price: amount}}
	for _, s := range more {
		items = append(items, LineItem{ProductID: "pX", Status: s, Quantity: 1, Price: 0})
	}
	return Order{CustomerID: "c1", Items: items, TotalAmount: amount}
}

func TestSummarize(t *testing.T) {
	orders := []Order{
		orderWith(StatusPending, 100.10),
		orderWith(StatusPending, 49.90),
		orderWith(StatusCompleted, 75.00),
		orderWith(StatusProcessing, 10.00),
		orderWith(StatusCancelled, 5.00),
	}

	s := Summarize(orders)
	assert.Equal(t, 5, s.TotalOrders)
	assert.Equal(t, 2, s.TotalPendingOrders)
	assert.Equal(t, 1, s.TotalCompletedOrders)
	assert.Equal(t, 150.00, s.TotalPendingAmount)
	assert.Equal(t, 75.00, s.TotalCompletedAmount)
}

func TestSummarizeUsesFirstItemStatusOnly(t *testing.T) {
	// second item completed must not move the order out of the pending bucket
	o := orderWith(StatusPending, 30.00, StatusCompleted, StatusCancelled)

	s := Summarize([]Order{o})
	assert.Equal(t, 1, s.TotalPendingOrders)
	assert.Equal(t, 0, s.TotalCompletedOrders)
	assert.Equal(t, 30.00, s.TotalPendingAmount)
}

func TestSummarizeEdgeCases(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, Summary{}, Summarize(nil))
	})

	t.Run("itemless order counts toward total only", func(t *testing.T) {
		s := Summarize([]Order{{CustomerID: "c1"}})
		assert.Equal(t, 1, s.TotalOrders)
		assert.Zero(t, s.TotalPendingOrders)
		assert.Zero(t, s.TotalCompletedOrders)
	})

	t.Run("rounding happens once at the output", func(t *testing.T) {
		// 0.1+0.2 style drift must not leak into the result
		s := Summarize([]Order{
			orderWith(StatusPending, 0.1),
			orderWith(StatusPending, 0.2),
		})
		assert.Equal(t, 0.3, s.TotalPendingAmount)
	})
}

func TestParseDateRange(t *testing.T) {
	t.Run("plain dates, end widened to end of day", func(t *testing.T) {
		r, err := ParseDateRange("2026-01-01", "2026-01-31")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), r.Start)
		assert.Equal(t, 23, r.End.Hour())
		assert.Equal(t, 59, r.End.Minute())
		assert.Equal(t, 31, r.End.Day())
	})

	t.Run("RFC3339 accepted", func(t *testing.T) {
		_, err := ParseDateRange("2026-01-01T08:30:00Z", "2026-01-02T00:00:00Z")
		require.NoError(t, err)
	})

	t.Run("same day is a valid window", func(t *testing.T) {
		r, err := ParseDateRange("2026-05-05", "2026-05-05")
		require.NoError(t, err)
		assert.True(t, r.Contains(time.Date(2026, 5, 5, 18, 0, 0, 0, time.UTC)))
	})

	t.Run("invalid input", func(t *testing.T) {
		cases := [][2]string{
			{"01/02/2026", "2026-01-31"},
			{"2026-01-01", "yesterday"},
			{"", "2026-01-31"},
			{"2026-02-01", "2026-01-31"}, // start after end
		}
		for _, c := range cases {
			_, err := ParseDateRange(c[0], c[1])
			assert.ErrorIs(t, err, ErrInvalidDateRange, c)
		}
	})
}

func TestDateRangeContains(t *testing.T) {
	r, err := ParseDateRange("2026-03-01", "2026-03-02")
	require.NoError(t, err)

	assert.True(t, r.Contains(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2026, 3, 2, 23, 59, 59, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC)))
}
