package utils

import "fmt"

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NormalizePage fills zero values with defaults and rejects out of range input.
func NormalizePage(page, pageSize int) (int, int, error) {
	if page == 0 {
		page = DefaultPage
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		return 0, 0, fmt.Errorf("%w: page must be >= 1", ErrInvalidPage)
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return 0, 0, fmt.Errorf("%w: pageSize must be between 1 and %d", ErrInvalidPageSize, MaxPageSize)
	}
	return page, pageSize, nil
}

func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
