package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intRange(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i + 1
	}
	return items
}

func TestPaginateFullAndOverflowPages(t *testing.T) {
	items := intRange(13)

	page1 := Paginate(items, 1, 10)
	require.Len(t, page1.Items, 10)
	assert.Equal(t, 1, page1.Number)
	assert.Equal(t, 2, page1.PageCount)
	assert.Equal(t, 13, page1.Total)
	assert.True(t, page1.HasNext)
	assert.False(t, page1.HasPrev)
	assert.Equal(t, intRange(10), page1.Items)

	page2 := Paginate(items, 2, 10)
	require.Len(t, page2.Items, 3)
	assert.Equal(t, []int{11, 12, 13}, page2.Items)
	assert.False(t, page2.HasNext)
	assert.True(t, page2.HasPrev)
}

func TestPaginateConcatenationIsGapFree(t *testing.T) {
	items := intRange(27)

	var all []int
	page := Paginate(items, 1, 10)
	all = append(all, page.Items...)
	for page.HasNext {
		page = Paginate(items, page.Number+1, 10)
		all = append(all, page.Items...)
	}
	assert.Equal(t, items, all)
}

func TestPaginateClampsOutOfRangePages(t *testing.T) {
	items := intRange(13)

	// past the end lands on the last valid page
	last := Paginate(items, 99, 10)
	assert.Equal(t, 2, last.Number)
	assert.Equal(t, []int{11, 12, 13}, last.Items)

	// below 1 lands on the first page
	first := Paginate(items, 0, 10)
	assert.Equal(t, 1, first.Number)
	assert.Len(t, first.Items, 10)

	neg := Paginate(items, -5, 10)
	assert.Equal(t, 1, neg.Number)
}

func TestPaginateEmptyListing(t *testing.T) {
	page := Paginate([]int{}, 3, 10)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.PageCount)
	assert.Equal(t, 0, page.Total)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrev)
}

func TestPaginateExactMultiple(t *testing.T) {
	page := Paginate(intRange(20), 2, 10)
	assert.Equal(t, 2, page.PageCount)
	assert.Len(t, page.Items, 10)
	assert.False(t, page.HasNext)
}
