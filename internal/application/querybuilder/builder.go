// internal/application/querybuilder/builder.go
package querybuilder

import "context"

// Source streams the raw documents of one collection. Implementations live
// in the storage adapters; the builder itself never touches the network
// until a terminal call.
type Source interface {
	Fetch(ctx context.Context) ([]Document, error)
}

// Meta is the count metadata list endpoints return next to the data page.
type Meta struct {
	Page      int `json:"page"`
	Limit     int `json:"limit"`
	Total     int `json:"total"`
	TotalPage int `json:"totalPage"`
}

// Builder composes search/filter/sort/paginate/project intent over one
// collection. Each fluent method is an idempotent overwrite of its slice of
// the descriptor, so call order does not matter; nothing executes until
// Execute or CountTotal.
type Builder struct {
	src    Source
	params map[string]string
	desc   Descriptor
}

// New wraps a collection source with the request's raw parameter map.
// base is the already-scoped predicate (e.g. "orders of customer X") and is
// always applied in front of the compiled filters.
func New(src Source, params map[string]string, base ...Condition) *Builder {
	if params == nil {
		params = map[string]string{}
	}
	return &Builder{
		src:    src,
		params: params,
		desc:   Descriptor{Base: base},
	}
}

// Search arms the case-insensitive OR-match across the given fields.
func (b *Builder) Search(fields ...string) *Builder {
	b.desc.Search = CompileSearch(b.params, fields)
	return b
}

// Filter compiles every non-reserved parameter into an AND condition.
func (b *Builder) Filter() *Builder {
	b.desc.Filters = CompileFilter(b.params)
	return b
}

// Sort compiles the sort parameter (default: newest first).
func (b *Builder) Sort() *Builder {
	b.desc.SortKeys = CompileSort(b.params)
	return b
}

// Paginate compiles page/limit into skip/cap.
func (b *Builder) Paginate() *Builder {
	b.desc.Page = CompilePage(b.params)
	return b
}

// Fields compiles the projection. internalOnly lists fields hidden when the
// caller selected nothing explicitly.
func (b *Builder) Fields(internalOnly ...string) *Builder {
	b.desc.Projection = CompileFields(b.params, internalOnly...)
	return b
}

// Descriptor exposes the compiled configuration (for tests and adapters).
func (b *Builder) Descriptor() Descriptor {
	return b.desc
}

// Execute is the terminal fetch: filter -> sort -> paginate -> project.
// Storage errors propagate unmodified.
func (b *Builder) Execute(ctx context.Context) ([]Document, error) {
	docs, err := b.src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return b.desc.Apply(docs), nil
}

// ExecuteWithMeta fetches the collection once and derives both the data
// page and its count metadata from the same snapshot. List endpoints use
// this instead of Execute+CountTotal, which would stream the source twice.
func (b *Builder) ExecuteWithMeta(ctx context.Context) ([]Document, Meta, error) {
	docs, err := b.src.Fetch(ctx)
	if err != nil {
		return nil, Meta{}, err
	}
	return b.desc.Apply(docs), b.meta(docs), nil
}

// CountTotal runs the filtered-but-unpaginated count and derives page math.
func (b *Builder) CountTotal(ctx context.Context) (Meta, error) {
	docs, err := b.src.Fetch(ctx)
	if err != nil {
		return Meta{}, err
	}
	return b.meta(docs), nil
}

func (b *Builder) meta(docs []Document) Meta {
	total := 0
	for _, doc := range docs {
		if b.desc.Match(doc) {
			total++
		}
	}

	page, limit := b.desc.Page.Page, b.desc.Page.Limit
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return Meta{
		Page:      page,
		Limit:     limit,
		Total:     total,
		TotalPage: (total + limit - 1) / limit,
	}
}
