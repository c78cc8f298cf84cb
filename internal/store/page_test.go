package store_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskward/taskward-api/internal/store"
)

func TestNewPageRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		number     int
		size       int
		wantNumber int
		wantSize   int
	}{
		{name: "valid request", number: 2, size: 25, wantNumber: 2, wantSize: 25},
		{name: "negative number clamps to zero", number: -1, size: 25, wantNumber: 0, wantSize: 25},
		{name: "zero size falls back to default", number: 0, size: 0, wantNumber: 0, wantSize: store.DefaultPageSize},
		{name: "negative size falls back to default", number: 0, size: -5, wantNumber: 0, wantSize: store.DefaultPageSize},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := store.NewPageRequest(tc.number, tc.size)
			assert.Equal(t, tc.wantNumber, req.Number)
			assert.Equal(t, tc.wantSize, req.Size)
		})
	}
}

func TestOffset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, store.NewPageRequest(0, 10).Offset())
	assert.Equal(t, 20, store.NewPageRequest(2, 10).Offset())
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		total int64
		size  int
		want  int
	}{
		{name: "exact multiple", total: 20, size: 10, want: 2},
		{name: "partial last page", total: 21, size: 10, want: 3},
		{name: "empty result", total: 0, size: 10, want: 0},
		{name: "single short page", total: 3, size: 10, want: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			page := store.NewPage([]int{}, store.NewPageRequest(0, tc.size), tc.total)
			assert.Equal(t, tc.want, page.TotalPages())
		})
	}
}

func TestMapPage(t *testing.T) {
	t.Parallel()

	in := store.NewPage([]int{1, 2, 3}, store.NewPageRequest(1, 3), 9)
	out := store.MapPage(in, strconv.Itoa)

	assert.Equal(t, []string{"1", "2", "3"}, out.Content)
	assert.Equal(t, int64(9), out.TotalCount)
	assert.Equal(t, 1, out.Number)
	assert.Equal(t, 3, out.Size)
}

func TestNewPageNilContent(t *testing.T) {
	t.Parallel()

	page := store.NewPage[int](nil, store.NewPageRequest(0, 10), 0)
	assert.NotNil(t, page.Content)
	assert.Empty(t, page.Content)
}
