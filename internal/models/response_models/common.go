package response_models

import "studiocrm/pkg/utils"

type PagedResponse[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func NewPagedResponse[T any](items []T, page, pageSize int, total int64) PagedResponse[T] {
	if items == nil {
		items = []T{}
	}
	return PagedResponse[T]{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: utils.TotalPages(total, pageSize),
	}
}
