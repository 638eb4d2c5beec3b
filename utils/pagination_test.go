package utils

import (
	"testing"
)

func TestNewPaginated(t *testing.T) {
	cases := []struct {
		name      string
		total     int64
		count     int
		page      int
		wantPages int
	}{
		{"empty", 0, 0, 1, 1},
		{"partial page", 3, 3, 1, 1},
		{"exact pages", 20, 10, 2, 2},
		{"remainder", 21, 1, 3, 3},
	}
	for _, tc := range cases {
		p := NewPaginated(nil, tc.total, tc.count, tc.page, 10)
		meta := p.Meta.Pagination
		if meta.TotalPages != tc.wantPages {
			t.Errorf("%s: total_pages = %d, want %d", tc.name, meta.TotalPages, tc.wantPages)
		}
		if meta.Total != tc.total || meta.Count != tc.count || meta.CurrentPage != tc.page || meta.PerPage != 10 {
			t.Errorf("%s: meta = %+v", tc.name, meta)
		}
	}
}
