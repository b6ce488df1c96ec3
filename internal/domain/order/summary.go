// internal/domain/order/summary.go
package order

import (
	"math"
	"strings"
	"time"
)

// DateRange is an inclusive creation-time window. End is already clamped to
// the end of its calendar day by ParseDateRange.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Summary is the derived pending/completed aggregate. Never persisted.
type Summary struct {
	TotalOrders          int     `json:"totalOrders"`
	TotalPendingOrders   int     `json:"totalPendingOrders"`
	TotalCompletedOrders int     `json:"totalCompletedOrders"`
	TotalPendingAmount   float64 `json:"totalPendingAmount"`
	TotalCompletedAmount float64 `json:"totalCompletedAmount"`
}

// ParseDateRange validates "YYYY-MM-DD" (or RFC3339) bounds and widens end
// to the last instant of its day. Any parse failure or start > end is
// ErrInvalidDateRange, raised before any storage work.
func ParseDateRange(startRaw, endRaw string) (DateRange, error) {
	start, ok := parseDate(startRaw)
	if !ok {
		return DateRange{}, ErrInvalidDateRange
	}
	end, ok := parseDate(endRaw)
	if !ok {
		return DateRange{}, ErrInvalidDateRange
	}
	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), end.Location())
	if start.After(end) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{Start: start, End: end}, nil
}

// Contains reports whether t falls inside the window (inclusive).
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Summarize buckets orders by the status of their FIRST line item: a
// multi-status order counts as whatever its first item says.
// Monetary totals accumulate unrounded; rounding to two
// decimals happens only here, at the output edge.
func Summarize(orders []Order) Summary {
	s := Summary{TotalOrders: len(orders)}
	for _, o := range orders {
		if len(o.Items) == 0 {
			continue
		}
		switch o.Items[0].Status {
		case StatusPending:
			s.TotalPendingOrders++
			s.TotalPendingAmount += o.TotalAmount
		case StatusCompleted:
			s.TotalCompletedOrders++
			s.TotalCompletedAmount += o.TotalAmount
		}
	}
	s.TotalPendingAmount = round2(s.TotalPendingAmount)
	s.TotalCompletedAmount = round2(s.TotalCompletedAmount)
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
