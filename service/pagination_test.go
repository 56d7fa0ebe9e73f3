package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxifleet/pkg/models"
)

// rows fakes a store holding n rows named 1..n.
func rows(n int) fetchFunc[string] {
	return func(_ context.Context, req models.ListRequest) ([]string, int, error) {
		var out []string
		for i := req.Offset + 1; i <= n && (req.Limit <= 0 || len(out) < req.Limit); i++ {
			out = append(out, fmt.Sprint(i))
		}
		return out, n, nil
	}
}

func TestPaginate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		count   int
		raw     string
		items   []string
		page    Page
		invalid bool
	}{
		{name: "first page by default", count: 12, raw: "", items: []string{"1", "2", "3", "4", "5"}, page: Page{Number: 1, NumPages: 3, PerPage: 5, Count: 12}},
		{name: "middle page", count: 12, raw: "2", items: []string{"6", "7", "8", "9", "10"}, page: Page{Number: 2, NumPages: 3, PerPage: 5, Count: 12}},
		{name: "last keyword", count: 12, raw: "last", items: []string{"11", "12"}, page: Page{Number: 3, NumPages: 3, PerPage: 5, Count: 12}},
		{name: "empty first page", count: 0, raw: "1", items: nil, page: Page{Number: 1, NumPages: 1, PerPage: 5, Count: 0}},
		{name: "last of empty", count: 0, raw: "last", items: nil, page: Page{Number: 1, NumPages: 1, PerPage: 5, Count: 0}},
		{name: "past the end", count: 12, raw: "4", invalid: true},
		{name: "zero", count: 12, raw: "0", invalid: true},
		{name: "not a number", count: 12, raw: "abc", invalid: true},
		{name: "second page of empty", count: 0, raw: "2", invalid: true},
		{name: "offset overflows", count: 12, raw: "3689348814741910324", invalid: true},
		{name: "max int", count: 12, raw: "9223372036854775807", invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, page, err := paginate(ctx, "", tt.raw, 5, rows(tt.count))
			if tt.invalid {
				require.ErrorIs(t, err, ErrInvalidPage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.items, items)
			assert.Equal(t, tt.page, page)
		})
	}
}

func TestPaginateNeverSendsNegativeOffset(t *testing.T) {
	fetch := func(_ context.Context, req models.ListRequest) ([]string, int, error) {
		assert.GreaterOrEqual(t, req.Offset, 0)
		return nil, 12, nil
	}
	for _, raw := range []string{"3689348814741910324", "1844674407370955162", "9223372036854775807"} {
		_, _, err := paginate(context.Background(), "", raw, 5, fetch)
		require.ErrorIs(t, err, ErrInvalidPage, raw)
	}
}

func TestPaginateUnlimited(t *testing.T) {
	items, page, err := paginate(context.Background(), "", "", 0, rows(7))
	require.NoError(t, err)
	assert.Len(t, items, 7)
	assert.False(t, page.IsPaginated())
}

func TestPageHelpers(t *testing.T) {
	p := Page{Number: 2, NumPages: 3, PerPage: 5, Count: 12}
	assert.True(t, p.HasPrevious())
	assert.True(t, p.HasNext())
	assert.Equal(t, 1, p.PreviousPageNumber())
	assert.Equal(t, 3, p.NextPageNumber())
	assert.Equal(t, 6, p.StartIndex())
	assert.Equal(t, 10, p.EndIndex())

	last := Page{Number: 3, NumPages: 3, PerPage: 5, Count: 12}
	assert.False(t, last.HasNext())
	assert.Equal(t, 12, last.EndIndex())
}
