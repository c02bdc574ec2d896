package query_test

import (
	"testing"

	"chatstore/internal/domain/query"
)

func TestPagination_Normalize(t *testing.T) {
	tests := []struct {
		name      string
		in        query.Pagination
		wantLimit int
		wantOrder query.Order
	}{
		{"zero limit gets default", query.Pagination{}, query.DefaultLimit, query.OrderAsc},
		{"negative limit gets default", query.Pagination{Limit: -5}, query.DefaultLimit, query.OrderAsc},
		{"oversized limit is capped", query.Pagination{Limit: 10_000}, query.MaxLimit, query.OrderAsc},
		{"valid limit kept", query.Pagination{Limit: 42}, 42, query.OrderAsc},
		{"desc order kept", query.Pagination{Limit: 1, Order: query.OrderDesc}, 1, query.OrderDesc},
		{"unknown order becomes asc", query.Pagination{Limit: 1, Order: "sideways"}, 1, query.OrderAsc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if got.Limit != tt.wantLimit {
				t.Errorf("Normalize().Limit = %d, want %d", got.Limit, tt.wantLimit)
			}
			if got.Order != tt.wantOrder {
				t.Errorf("Normalize().Order = %q, want %q", got.Order, tt.wantOrder)
			}
		})
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		raw  string
		want query.Order
	}{
		{"", query.OrderAsc},
		{"asc", query.OrderAsc},
		{"desc", query.OrderDesc},
		{"DESC", query.OrderDesc},
		{"garbage", query.OrderAsc},
	}

	for _, tt := range tests {
		if got := query.ParseOrder(tt.raw); got != tt.want {
			t.Errorf("ParseOrder(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestBuildPage(t *testing.T) {
	id := func(s string) string { return s }

	t.Run("full page with extra row", func(t *testing.T) {
		page := query.BuildPage([]string{"a", "b", "c"}, 2, id)
		if len(page.Data) != 2 || page.Data[0] != "a" || page.Data[1] != "b" {
			t.Errorf("Data = %v, want [a b]", page.Data)
		}
		if !page.HasMore {
			t.Error("HasMore = false, want true")
		}
		if page.After != "b" {
			t.Errorf("After = %q, want b", page.After)
		}
	})

	t.Run("short page", func(t *testing.T) {
		page := query.BuildPage([]string{"a"}, 2, id)
		if len(page.Data) != 1 {
			t.Errorf("Data = %v, want [a]", page.Data)
		}
		if page.HasMore || page.After != "" {
			t.Errorf("HasMore=%v After=%q, want false and empty", page.HasMore, page.After)
		}
	})

	t.Run("exactly limit rows", func(t *testing.T) {
		page := query.BuildPage([]string{"a", "b"}, 2, id)
		if len(page.Data) != 2 || page.HasMore || page.After != "" {
			t.Errorf("page = %+v, want both rows and no cursor", page)
		}
	})

	t.Run("empty", func(t *testing.T) {
		page := query.BuildPage(nil, 2, id)
		if len(page.Data) != 0 || page.HasMore {
			t.Errorf("page = %+v, want empty", page)
		}
	})
}
