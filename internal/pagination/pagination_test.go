package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func numbers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginateWindows(t *testing.T) {
	items := numbers(45)

	for k := 1; k <= 4; k++ {
		page := Paginate(items, k, PageSize)
		start := (k - 1) * PageSize
		end := min(k*PageSize, len(items))
		if start > len(items) {
			start = len(items)
		}
		assert.Equal(t, items[start:end], page.Items, "page %d", k)
		assert.Equal(t, 3, page.TotalPages)
	}

	last := Paginate(items, 3, PageSize)
	assert.Len(t, last.Items, 5)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)
}

func TestPaginateEmpty(t *testing.T) {
	page := Paginate([]string{}, 1, PageSize)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrev)

	page = Paginate[string](nil, 1, PageSize)
	assert.Empty(t, page.Items)
}

func TestPaginateClampsPageNumber(t *testing.T) {
	page := Paginate(numbers(5), 0, 0)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, PageSize, page.Size)
	assert.Len(t, page.Items, 5)

	beyond := Paginate(numbers(5), 9, PageSize)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 9, beyond.Number)
}

func TestPaginateHugePageNumberIsEmpty(t *testing.T) {
	items := numbers(22)
	for _, n := range []int{3, math.MaxInt, math.MaxInt/20 + 1} {
		page := Paginate(items, n, PageSize)
		assert.Empty(t, page.Items, "page %d", n)
		assert.Equal(t, n, page.Number)
		assert.False(t, page.HasNext)
		assert.True(t, page.HasPrev)
	}
}
