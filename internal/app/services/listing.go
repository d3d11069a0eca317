package services

import (
	"strings"

	"github.com/internhub/backend/internal/app/models/dto"
	"github.com/internhub/backend/internal/pkg/helpers"
)

// Filter keeps the items matching every predicate. Predicates are ANDed, so
// their order never changes the result. A nil predicate is skipped, which lets
// callers build the list from optional request parameters.
func Filter[T any](items []T, preds ...func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		keep := true
		for _, pred := range preds {
			if pred != nil && !pred(item) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}

// FieldEquals builds a predicate matching an exact field value. An empty want
// disables the filter.
func FieldEquals[T any](want string, get func(T) string) func(T) bool {
	if want == "" {
		return nil
	}
	return func(item T) bool {
		return get(item) == want
	}
}

// SearchMatches builds a predicate that does a case-insensitive substring
// match across the given field extractors. An empty term disables the search.
func SearchMatches[T any](term string, fields ...func(T) string) func(T) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	return func(item T) bool {
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(item)), term) {
				return true
			}
		}
		return false
	}
}

// Paginate slices one fixed-size page out of an already filtered list.
// Out-of-range page numbers clamp to the nearest valid page rather than
// returning an empty result.
func Paginate[T any](items []T, page int) ([]T, dto.PaginationInfo) {
	total := len(items)
	start, end := helpers.CalculateSliceIndices(page, helpers.DefaultPageSize, total)
	info := helpers.NewPaginationInfo(total, page, helpers.DefaultPageSize)

	pageItems := make([]T, end-start)
	copy(pageItems, items[start:end])

	return pageItems, info
}
