package collection

import (
	"context"
	"fmt"
	"runtime"
	"testing"
)

func seedItems(n int) []*item {
	out := make([]*item, n)
	for i := range out {
		out[i] = &item{ID: fmt.Sprintf("%02d", i+1), Name: fmt.Sprintf("item %02d", i+1), Status: "Active"}
	}
	return out
}

func TestViewRefreshLoadsCollection(t *testing.T) {
	st := newFakeStore(seedItems(3)...)
	v := NewView[*item](st, itemDescriptor(), DefaultPageSize)

	if err := v.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	page := v.Page()
	if page.TotalCount != 3 || len(page.Items) != 3 {
		t.Fatalf("unexpected page after refresh: %+v", page)
	}
}

func TestViewSearchResetsPage(t *testing.T) {
	st := newFakeStore(seedItems(25)...)
	v := NewView[*item](st, itemDescriptor(), DefaultPageSize)
	if err := v.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	v.SetPage(3)
	if got := v.Query().Page; got != 3 {
		t.Fatalf("expected page 3, got %d", got)
	}

	v.SetSearchTerm("item")
	if got := v.Query().Page; got != 1 {
		t.Fatalf("expected search to reset page to 1, got %d", got)
	}
}

func TestViewSetPageClampsToTotalPages(t *testing.T) {
	st := newFakeStore(seedItems(25)...) // 3 pages of 10
	v := NewView[*item](st, itemDescriptor(), DefaultPageSize)
	if err := v.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	v.SetPage(5)
	if got := v.Query().Page; got != 3 {
		t.Fatalf("expected page clamped to 3, got %d", got)
	}
	page := v.Page()
	if page.Page != 3 || len(page.Items) != 5 {
		t.Fatalf("unexpected clamped page: %+v", page)
	}
}

func TestViewFilterShrinksResultAndReclamps(t *testing.T) {
	items := seedItems(25)
	items[0].Status = "Suspended"
	st := newFakeStore(items...)
	v := NewView[*item](st, itemDescriptor(), DefaultPageSize)
	if err := v.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	v.SetPage(3)
	v.SetFilter("status", "Suspended")
	page := v.Page()
	if page.TotalCount != 1 {
		t.Fatalf("expected one suspended item, got %d", page.TotalCount)
	}
	if page.Page != 1 {
		t.Fatalf("expected page reclamped to 1 after filter, got %d", page.Page)
	}
}

func TestViewResetFiltersKeepsSearchAndSort(t *testing.T) {
	st := newFakeStore(seedItems(5)...)
	v := NewView[*item](st, itemDescriptor(), DefaultPageSize)
	if err := v.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	v.SetSearchTerm("item")
	v.SetSort("name")
	v.SetFilter("status", "Active")
	v.ResetFilters()

	q := v.Query()
	if len(q.Filters) != 0 {
		t.Fatalf("expected filters cleared, got %v", q.Filters)
	}
	if q.SearchTerm != "item" || q.SortKey != "name" {
		t.Fatalf("reset touched search or sort: %+v", q)
	}
}

func TestViewSupersededRefreshIsDropped(t *testing.T) {
	st := newFakeStore(seedItems(2)...)
	gate := make(chan struct{})
	st.listGate = gate
	v := NewView[*item](st, itemDescriptor(), DefaultPageSize)

	firstErr := make(chan error, 1)
	go func() {
		firstErr <- v.Refresh(context.Background())
	}()

	// wait for the first refresh to block inside List
	for {
		st.mu.Lock()
		reached := st.listCount > 0
		st.mu.Unlock()
		if reached {
			break
		}
		runtime.Gosched()
	}

	// the second refresh cancels the first; with the gate open it completes
	st.mu.Lock()
	st.listGate = nil
	st.mu.Unlock()
	if err := v.Refresh(context.Background()); err != nil {
		t.Fatalf("second refresh failed: %v", err)
	}

	// the superseded refresh must not surface its cancellation error
	if err := <-firstErr; err != nil {
		t.Fatalf("superseded refresh surfaced an error: %v", err)
	}
	close(gate)

	page := v.Page()
	if page.TotalCount != 2 {
		t.Fatalf("expected the newer collection installed, got %+v", page)
	}
}
