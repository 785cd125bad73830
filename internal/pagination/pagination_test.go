package pagination

import "testing"

func TestOffset(t *testing.T) {
	cases := []struct {
		page    int
		perPage int
		want    int
	}{
		{1, 20, 0},
		{2, 20, 20},
		{4, 5, 15},
		{3, 1, 2},
	}
	for _, tc := range cases {
		req := PageRequest{Page: tc.page, PerPage: tc.perPage}
		if got := req.Offset(); got != tc.want {
			t.Fatalf("Offset(page=%d, per_page=%d) = %d, want %d", tc.page, tc.perPage, got, tc.want)
		}
	}
}

func TestNewMeta(t *testing.T) {
	cases := []struct {
		name       string
		page       int
		perPage    int
		total      int64
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"first of three", 1, 5, 12, 3, true, false},
		{"middle", 2, 5, 12, 3, true, true},
		{"last", 3, 5, 12, 3, false, true},
		{"beyond last", 4, 5, 12, 3, false, true},
		{"exact fit", 2, 6, 12, 2, false, true},
		{"empty", 1, 20, 0, 0, false, false},
		{"single item", 1, 20, 1, 1, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			meta := NewMeta(PageRequest{Page: tc.page, PerPage: tc.perPage}, tc.total)
			if meta.TotalPages != tc.totalPages {
				t.Fatalf("TotalPages = %d, want %d", meta.TotalPages, tc.totalPages)
			}
			if meta.HasNext != tc.hasNext {
				t.Fatalf("HasNext = %v, want %v", meta.HasNext, tc.hasNext)
			}
			if meta.HasPrev != tc.hasPrev {
				t.Fatalf("HasPrev = %v, want %v", meta.HasPrev, tc.hasPrev)
			}
			if meta.TotalCount != tc.total {
				t.Fatalf("TotalCount = %d, want %d", meta.TotalCount, tc.total)
			}
			if meta.Page != tc.page || meta.PerPage != tc.perPage {
				t.Fatalf("request echo mismatch: got page=%d per_page=%d", meta.Page, meta.PerPage)
			}
		})
	}
}
