package collection

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"time"
)

const (
	// DefaultPageSize matches the common list screens.
	DefaultPageSize = 10
	// WidePageSize matches the dense admin tables.
	WidePageSize = 30
)

// PageResult is one projected page of a collection.
type PageResult[E any] struct {
	// Items is the current page slice, in filtered/sorted order.
	Items []E
	// TotalCount is the number of entities matching the query.
	TotalCount int
	// TotalPages is at least 1, even for an empty result.
	TotalPages int
	// Page is the effective 1-based page after clamping to TotalPages.
	Page int
}

// Project is the pure view transform: filter, then stable sort, then
// paginate. The same (entities, query) pair always yields the same result;
// the input slice is never mutated. The effective page is clamped to
// [1, TotalPages] so a query left pointing past the end after a filter
// change can never slice out of range.
func Project[E any](entities []E, desc Descriptor[E], query QueryState, pageSize int) PageResult[E] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	filtered := make([]E, 0, len(entities))
	for _, entity := range entities {
		if matches(entity, desc, query) {
			filtered = append(filtered, entity)
		}
	}

	if query.SortKey != "" {
		sortEntities(filtered, desc, query.SortKey, query.SortDirection)
	}

	totalCount := len(filtered)
	totalPages := int(math.Ceil(float64(totalCount) / float64(pageSize)))
	if totalPages < 1 {
		totalPages = 1
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > totalCount {
		start = totalCount
	}
	if end > totalCount {
		end = totalCount
	}

	return PageResult[E]{
		Items:      filtered[start:end],
		TotalCount: totalCount,
		TotalPages: totalPages,
		Page:       page,
	}
}

// matches applies the search predicate and every active filter. An entity
// survives iff the term is a case-insensitive substring of at least one
// search field AND each filter field equals its selected value.
func matches[E any](entity E, desc Descriptor[E], query QueryState) bool {
	if term := strings.ToLower(query.SearchTerm); term != "" {
		found := false
		for _, name := range desc.SearchFields {
			value, ok := desc.field(entity, name)
			if !ok || isNil(value) {
				continue
			}
			if strings.Contains(strings.ToLower(stringify(value)), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for name, want := range query.Filters {
		value, ok := desc.field(entity, name)
		if !ok || isNil(value) {
			return false
		}
		got := stringify(value)
		if desc.foldsFilter(name) {
			if !strings.EqualFold(got, want) {
				return false
			}
		} else if got != want {
			return false
		}
	}
	return true
}

// sortEntities sorts in place, stably, with nil values last regardless of
// direction and natural byte ordering for strings.
func sortEntities[E any](entities []E, desc Descriptor[E], key string, direction Direction) {
	sort.SliceStable(entities, func(i, j int) bool {
		a, aok := desc.field(entities[i], key)
		b, bok := desc.field(entities[j], key)
		aNil := !aok || isNil(a)
		bNil := !bok || isNil(b)
		if aNil || bNil {
			// nil sorts last in both directions; equal nils keep order
			return !aNil && bNil
		}
		cmp := compareValues(a, b)
		if direction == Descending {
			cmp = -cmp
		}
		return cmp < 0
	})
}

// compareValues is the generic less-than used by the sort step.
func compareValues(a, b interface{}) int {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	if at, aok := a.(time.Time); aok {
		if bt, bok := b.(time.Time); bok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}
	if ab, aok := a.(bool); aok {
		if bb, bok := b.(bool); bok {
			switch {
			case ab == bb:
				return 0
			case !ab:
				return -1
			default:
				return 1
			}
		}
	}
	return strings.Compare(stringify(a), stringify(b))
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func stringify(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return rv.IsNil()
	default:
		return false
	}
}
