package utils

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageParams — параметры постраничного запроса в терминах фронта:
// нулевая нумерация страниц, sortBy/sortDir как в query string.
type PageParams struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// ParsePageParams разбирает page/size/sortBy/sortDir. Любое кривое значение
// молча заменяется дефолтом — список должен открываться всегда.
func ParsePageParams(values url.Values, defaultSortBy string) PageParams {
	params := PageParams{
		Page:    0,
		Size:    DefaultPageSize,
		SortBy:  defaultSortBy,
		SortDir: "desc",
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p >= 0 {
			params.Page = p
		}
	}
	if sizeStr := values.Get("size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 {
			if s > MaxPageSize {
				s = MaxPageSize
			}
			params.Size = s
		}
	}
	if sortBy := values.Get("sortBy"); sortBy != "" {
		params.SortBy = sortBy
	}
	if sortDir := strings.ToLower(values.Get("sortDir")); sortDir == "asc" || sortDir == "desc" {
		params.SortDir = sortDir
	}

	return params
}

func (p PageParams) Offset() uint64 {
	return uint64(p.Page) * uint64(p.Size)
}

func (p PageParams) Limit() uint64 {
	return uint64(p.Size)
}

// TotalPages считает количество страниц для данного total.
func (p PageParams) TotalPages(total uint64) int {
	if p.Size <= 0 {
		return 0
	}
	pages := total / uint64(p.Size)
	if total%uint64(p.Size) != 0 {
		pages++
	}
	return int(pages)
}
