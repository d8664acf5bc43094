// Package collection implements the managed collection view shared by every
// list screen: one query-state reducer, one pure projector, one action
// dispatcher and one polling task, instead of per-screen re-derivations of
// the same logic.
package collection

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// QueryState is the ephemeral view configuration of one screen: free-text
// search, exact field filters, sort key and direction, and the 1-based
// current page.
type QueryState struct {
	SearchTerm    string
	Filters       map[string]string
	SortKey       string
	SortDirection Direction
	Page          int
}

// NewQueryState returns the initial state: no search, no filters, no sort,
// page 1.
func NewQueryState() QueryState {
	return QueryState{
		Filters:       map[string]string{},
		SortDirection: Ascending,
		Page:          1,
	}
}

// SetSearchTerm sets the free-text search term and resets the page to 1.
// The reset applies everywhere a search box exists; it is not optional per
// screen.
func (q *QueryState) SetSearchTerm(term string) {
	q.SearchTerm = term
	q.Page = 1
}

// SetFilter sets one field filter. An empty value clears the filter. Values
// are not validated against allowed enums; an invalid value simply matches
// nothing.
func (q *QueryState) SetFilter(field, value string) {
	if q.Filters == nil {
		q.Filters = map[string]string{}
	}
	if value == "" {
		delete(q.Filters, field)
		return
	}
	q.Filters[field] = value
}

// SetSort toggles direction when key is the current sort key, otherwise
// sorts ascending by the new key.
func (q *QueryState) SetSort(key string) {
	if q.SortKey == key {
		if q.SortDirection == Ascending {
			q.SortDirection = Descending
		} else {
			q.SortDirection = Ascending
		}
		return
	}
	q.SortKey = key
	q.SortDirection = Ascending
}

// SetPage sets the 1-based page. Values below 1 clamp to 1; the upper bound
// depends on the projected result and is clamped by the projector and the
// View.
func (q *QueryState) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	q.Page = n
}

// ResetFilters clears every field filter. Search term, sort and page are
// untouched. Applying it twice is equivalent to once.
func (q *QueryState) ResetFilters() {
	for field := range q.Filters {
		delete(q.Filters, field)
	}
}

// Clone returns a deep copy, so projector inputs behave as values.
func (q QueryState) Clone() QueryState {
	out := q
	out.Filters = make(map[string]string, len(q.Filters))
	for field, value := range q.Filters {
		out.Filters[field] = value
	}
	return out
}
