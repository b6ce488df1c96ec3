package querybuilder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceSource struct {
	docs []Document
	err  error
}

func (s sliceSource) Fetch(_ context.Context) ([]Document, error) {
	return s.docs, s.err
}

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 12, 0, 0, 0, time.UTC)
}

func productDocs() []Document {
	return []Document{
		{"id": "p1", "name": "Iron Kettle", "price": 30.0, "stock": 5, "createdAt": day(1)},
		{"id": "p2", "name": "Copper Kettle", "price": 55.0, "stock": 0, "createdAt": day(2)},
		{"id": "p3", "name": "Steel Pan", "price": 42.0, "stock": 9, "createdAt": day(3)},
		{"id": "p4", "name": "Clay Pot", "price": 12.0, "stock": 2, "createdAt": day(4)},
	}
}

func TestBuilderExecutePipeline(t *testing.T) {
	src := sliceSource{docs: productDocs()}

	params := map[string]string{
		"searchTerm": "kettle",
		"price[gte]": "40",
		"sort":       "-price",
		"page":       "1",
		"limit":      "10",
	}

	docs, err := New(src, params).
		Search("name").
		Filter().
		Sort().
		Paginate().
		Fields().
		Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "p2", docs[0]["id"])
}

func TestBuilderCallOrderDoesNotMatter(t *testing.T) {
	params := map[string]string{
		"searchTerm": "kettle",
		"sort":       "price",
		"limit":      "1",
	}
	src := sliceSource{docs: productDocs()}

	a, err := New(src, params).Search("name").Filter().Sort().Paginate().Execute(context.Background())
	require.NoError(t, err)
	b, err := New(src, params).Paginate().Sort().Filter().Search("name").Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a, b)
	require.Len(t, a, 1)
	assert.Equal(t, "p1", a[0]["id"])
}

func TestBuilderDefaultSortNewestFirst(t *testing.T) {
	src := sliceSource{docs: productDocs()}

	docs, err := New(src, nil).Sort().Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 4)
	assert.Equal(t, "p4", docs[0]["id"])
	assert.Equal(t, "p1", docs[3]["id"])
}

func TestBuilderPagination(t *testing.T) {
	src := sliceSource{docs: productDocs()}

	t.Run("second page", func(t *testing.T) {
		params := map[string]string{"sort": "name", "page": "2", "limit": "3"}
		docs, err := New(src, params).Sort().Paginate().Execute(context.Background())
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "Steel Pan", docs[0]["name"])
	})

	t.Run("page beyond the data is empty, not an error", func(t *testing.T) {
		params := map[string]string{"page": "9", "limit": "10"}
		docs, err := New(src, params).Paginate().Execute(context.Background())
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func TestBuilderProjection(t *testing.T) {
	src := sliceSource{docs: productDocs()}

	t.Run("include keeps id", func(t *testing.T) {
		params := map[string]string{"fields": "name"}
		docs, err := New(src, params).Fields().Execute(context.Background())
		require.NoError(t, err)
		require.NotEmpty(t, docs)
		assert.Equal(t, Document{"id": "p1", "name": "Iron Kettle"}, docs[0])
	})

	t.Run("exclude drops the named field only", func(t *testing.T) {
		params := map[string]string{"fields": "-price"}
		docs, err := New(src, params).Fields().Execute(context.Background())
		require.NoError(t, err)
		require.NotEmpty(t, docs)
		_, hasPrice := docs[0]["price"]
		assert.False(t, hasPrice)
		assert.Equal(t, "Iron Kettle", docs[0]["name"])
	})

	t.Run("internal-only exclusion applies without a fields param", func(t *testing.T) {
		users := sliceSource{docs: []Document{
			{"id": "u1", "name": "A", "password": "hash"},
		}}
		docs, err := New(users, nil).Fields("password").Execute(context.Background())
		require.NoError(t, err)
		require.Len(t, docs, 1)
		_, leaked := docs[0]["password"]
		assert.False(t, leaked)
	})
}

func TestBuilderBaseConditionAlwaysApplies(t *testing.T) {
	orders := sliceSource{docs: []Document{
		{"id": "o1", "customerId": "c1", "totalAmount": 10.0},
		{"id": "o2", "customerId": "c2", "totalAmount": 20.0},
		{"id": "o3", "customerId": "c1", "totalAmount": 30.0},
	}}

	base := Condition{Field: "customerId", Op: OpEq, Value: "c1"}
	docs, err := New(orders, map[string]string{}, base).Filter().Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	for _, d := range docs {
		assert.Equal(t, "c1", d["customerId"])
	}
}

func TestBuilderDottedPathMatchesAnyArrayElement(t *testing.T) {
	orders := sliceSource{docs: []Document{
		{"id": "o1", "orderInfo": []any{
			map[string]any{"status": "pending", "trackingNumber": "tn-1"},
			map[string]any{"status": "completed", "trackingNumber": "tn-2"},
		}},
		{"id": "o2", "orderInfo": []any{
			map[string]any{"status": "cancelled", "trackingNumber": "tn-3"},
		}},
	}}

	params := map[string]string{"orderInfo.status": "completed"}
	docs, err := New(orders, params).Filter().Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "o1", docs[0]["id"])
}

func TestBuilderSearchIsCaseInsensitiveSubstring(t *testing.T) {
	src := sliceSource{docs: productDocs()}

	params := map[string]string{"searchTerm": "KETT"}
	docs, err := New(src, params).Search("name").Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestBuilderCountTotal(t *testing.T) {
	src := sliceSource{docs: productDocs()}

	t.Run("count ignores pagination", func(t *testing.T) {
		params := map[string]string{"page": "2", "limit": "3"}
		meta, err := New(src, params).Filter().Paginate().CountTotal(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Meta{Page: 2, Limit: 3, Total: 4, TotalPage: 2}, meta)
	})

	t.Run("totalPage rounds up", func(t *testing.T) {
		params := map[string]string{"limit": "3"}
		meta, err := New(src, params).Paginate().CountTotal(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, meta.TotalPage)
	})

	t.Run("count respects filters", func(t *testing.T) {
		params := map[string]string{"price[lt]": "40"}
		meta, err := New(src, params).Filter().Paginate().CountTotal(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, meta.Total)
		assert.Equal(t, 1, meta.TotalPage)
	})
}

type countingSource struct {
	docs    []Document
	fetches int
}

func (s *countingSource) Fetch(_ context.Context) ([]Document, error) {
	s.fetches++
	return s.docs, nil
}

func TestBuilderExecuteWithMetaFetchesOnce(t *testing.T) {
	src := &countingSource{docs: productDocs()}
	params := map[string]string{"page": "1", "limit": "3"}

	docs, meta, err := New(src, params).
		Filter().
		Sort().
		Paginate().
		Fields().
		ExecuteWithMeta(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, src.fetches)
	assert.Len(t, docs, 3)
	assert.Equal(t, Meta{Page: 1, Limit: 3, Total: 4, TotalPage: 2}, meta)
}

func TestBuilderSourceErrorPropagates(t *testing.T) {
	boom := errors.New("backend down")
	src := sliceSource{err: boom}

	_, err := New(src, nil).Execute(context.Background())
	assert.ErrorIs(t, err, boom)

	_, err = New(src, nil).CountTotal(context.Background())
	assert.ErrorIs(t, err, boom)

	_, _, err = New(src, nil).ExecuteWithMeta(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestDescriptorSortStableOnTies(t *testing.T) {
	docs := []Document{
		{"id": "a", "price": 10.0},
		{"id": "b", "price": 10.0},
		{"id": "c", "price": 5.0},
	}
	d := Descriptor{SortKeys: []SortKey{{Field: "price"}}}
	out := d.Apply(docs)
	require.Len(t, out, 3)
	assert.Equal(t, "c", out[0]["id"])
	assert.Equal(t, "a", out[1]["id"])
	assert.Equal(t, "b", out[2]["id"])
}
