package dto

// Page — постраничный конверт в формате, который ожидает фронт:
// content + totalElements/totalPages/currentPage/pageSize.
type Page[T any] struct {
	Content       []T    `json:"content"`
	TotalElements uint64 `json:"totalElements"`
	TotalPages    int    `json:"totalPages"`
	CurrentPage   int    `json:"currentPage"`
	PageSize      int    `json:"pageSize"`
}

func NewPage[T any](content []T, total uint64, page, size, totalPages int) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		CurrentPage:   page,
		PageSize:      size,
	}
}
