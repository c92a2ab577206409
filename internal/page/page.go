// Package page derives sorted, paged views over an item collection.
package page

import (
	"sort"

	"github.com/tops240200-jpg/lostandfound/internal/model"
)

// View is one displayable slice of the collection, newest listings first.
type View struct {
	Items      []model.Item
	PageIndex  int
	PageSize   int
	TotalPages int
	TotalItems int
}

// Paginate sorts items by creation time, most recent first (ties keep their
// original order), and returns the slice for pageIndex. TotalPages is at
// least 1 even for an empty collection. pageIndex is not clamped: callers
// asking for a page past the end get an empty slice.
func Paginate(items []model.Item, pageIndex, pageSize int) View {
	if pageSize < 1 {
		pageSize = 1
	}

	sorted := make([]model.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	total := len(sorted)
	totalPages := 1
	if total > 0 {
		totalPages = (total-1)/pageSize + 1
	}

	start := pageIndex * pageSize
	end := start + pageSize
	if start < 0 || start > total {
		start, end = 0, 0
	} else if end > total {
		end = total
	}

	return View{
		Items:      sorted[start:end],
		PageIndex:  pageIndex,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
	}
}
