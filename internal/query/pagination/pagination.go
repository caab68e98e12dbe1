package pagination

import (
	"fmt"

	"github.com/leengari/jsonserver/internal/domain/errors"
)

const (
	DefaultPageNum  = 1
	DefaultPageSize = 10
)

// PageInfo is the window part of a Page
type PageInfo[T any] struct {
	PageNum   int `json:"page_num"`
	ItemCount int `json:"item_count"` // the requested page size, not len(Items)
	Items     []T `json:"items"`
}

// Page is the result of windowing a filtered sequence
type Page[T any] struct {
	TotalItems int         `json:"total_items"`
	TotalPages int         `json:"total_pages"`
	PageData   PageInfo[T] `json:"page_data"`
}

// Paginate slices items[pageSize*(pageNum-1) : +pageSize], clamped to bounds.
// A page past the end yields empty Items with the totals unchanged.
func Paginate[T any](table string, items []T, pageNum, pageSize int) (Page[T], error) {
	if pageSize <= 0 {
		return Page[T]{}, &errors.ValidationError{
			Table:  table,
			Field:  "page_size",
			Reason: fmt.Sprintf("must be a positive integer (got %d)", pageSize),
		}
	}
	if pageNum < 1 {
		return Page[T]{}, &errors.ValidationError{
			Table:  table,
			Field:  "page_num",
			Reason: fmt.Sprintf("must be at least 1 (got %d)", pageNum),
		}
	}

	total := len(items)
	start := total
	if off := pageSize * (pageNum - 1); off/pageSize == pageNum-1 && off < total {
		start = off
	}
	end := start + pageSize
	if end > total || end < start {
		end = total
	}

	window := make([]T, end-start)
	copy(window, items[start:end])

	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}

	return Page[T]{
		TotalItems: total,
		TotalPages: pages,
		PageData: PageInfo[T]{
			PageNum:   pageNum,
			ItemCount: pageSize,
			Items:     window,
		},
	}, nil
}
