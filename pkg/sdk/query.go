package sdk

import (
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Order is the sort direction of a paged search.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// DefaultPageSize is substituted whenever a search is issued without an
// explicit page size.
const DefaultPageSize = 10

var validate = validator.New()

// PageQuery selects one page of a list-style call. The zero value (or a nil
// pointer) means the fixed defaults: pageSize 10, ascending order, no cursor.
type PageQuery struct {
	// PageSize is the maximum number of records returned. 1 to 100.
	PageSize int `validate:"omitempty,min=1,max=100"`
	// ID is the cursor: results resume strictly after the record with this
	// database id. Empty means start from the beginning.
	ID string
	// Order sorts by record id. Defaults to ascending.
	Order Order `validate:"omitempty,oneof=asc desc"`
}

// values renders the query parameters the node expects, substituting defaults
// for unset fields. Pure: the same input always yields the same parameters.
func (q *PageQuery) values() url.Values {
	pageSize := DefaultPageSize
	order := OrderAsc

	v := url.Values{}
	if q != nil {
		if q.PageSize > 0 {
			pageSize = q.PageSize
		}
		if q.Order != "" {
			order = q.Order
		}
		if q.ID != "" {
			v.Set("id", q.ID)
		}
	}

	v.Set("pageSize", strconv.Itoa(pageSize))
	v.Set("order", string(order))
	return v
}

func validatePageQuery(q *PageQuery) error {
	if q == nil {
		return nil
	}
	return validate.Struct(q)
}

// Page is one page of search results together with the cursor needed to fetch
// the next one.
type Page[T any] struct {
	Items []T
	// LastID is the database id of the final record on this page; pass it as
	// PageQuery.ID to continue. Empty when the page is empty.
	LastID string
}
