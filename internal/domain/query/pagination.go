package query

import "strings"

// Order controls the created_at sort direction of a listing.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

const (
	// DefaultLimit applies when the caller does not specify a page size.
	DefaultLimit = 20
	// MaxLimit caps a single page regardless of what the caller asks for.
	MaxLimit = 100
)

// Pagination describes a cursor-paginated listing request. After is the id of
// the last entity of the previous page, or empty for the first page.
type Pagination struct {
	Limit int
	After string
	Order Order
}

// Normalize clamps the limit and defaults the order so repositories never see
// out-of-range values.
func (p Pagination) Normalize() Pagination {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Order != OrderDesc {
		p.Order = OrderAsc
	}
	return p
}

// ParseOrder maps a request string onto an Order, defaulting to ascending.
func ParseOrder(raw string) Order {
	if strings.EqualFold(raw, string(OrderDesc)) {
		return OrderDesc
	}
	return OrderAsc
}

// Page is one cursor-delimited slice of a listing. After carries the cursor
// for the next call and is empty when HasMore is false.
type Page[T any] struct {
	Data    []T
	HasMore bool
	After   string
}

// BuildPage assembles a Page from rows fetched with limit+1. The extra row
// only signals that another page exists; it is trimmed from the result. id
// extracts the cursor value from a row.
func BuildPage[T any](rows []T, limit int, id func(T) string) Page[T] {
	page := Page[T]{Data: rows}
	if len(rows) > limit {
		page.Data = rows[:limit]
		page.HasMore = true
		page.After = id(page.Data[len(page.Data)-1])
	}
	return page
}
