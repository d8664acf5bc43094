package collection

// Descriptor describes how the projector reads one entity type: named field
// accessors, which fields the free-text search scans, and which filter
// fields compare case-insensitively. Filter equality is exact and
// case-sensitive unless a field is listed in FoldFilters; the folding is a
// per-field property, not a global switch.
type Descriptor[E any] struct {
	// Fields maps a field name to its accessor.
	Fields map[string]func(E) interface{}
	// SearchFields are the fields matched (case-insensitively) against the
	// search term.
	SearchFields []string
	// FoldFilters are the filter fields compared case-insensitively, such
	// as role and status on the user screens.
	FoldFilters []string
}

func (d Descriptor[E]) field(entity E, name string) (interface{}, bool) {
	accessor, ok := d.Fields[name]
	if !ok {
		return nil, false
	}
	return accessor(entity), true
}

func (d Descriptor[E]) foldsFilter(name string) bool {
	for _, f := range d.FoldFilters {
		if f == name {
			return true
		}
	}
	return false
}
