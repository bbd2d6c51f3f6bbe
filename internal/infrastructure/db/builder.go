package db

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"spa-system/pkg/utils"
)

// ApplySort добавляет ORDER BY по параметрам запроса. Поле сортировки
// берётся только из allowedMap (json-имя -> колонка), иначе сортируем по дефолту.
func ApplySort(builder sq.SelectBuilder, params utils.PageParams, allowedMap map[string]string, defaultColumn string) sq.SelectBuilder {
	column, ok := allowedMap[params.SortBy]
	if !ok {
		column = defaultColumn
	}
	dir := "DESC"
	if strings.ToLower(params.SortDir) == "asc" {
		dir = "ASC"
	}
	return builder.OrderBy(fmt.Sprintf("%s %s", column, dir))
}

// ApplyPage добавляет LIMIT/OFFSET.
func ApplyPage(builder sq.SelectBuilder, params utils.PageParams) sq.SelectBuilder {
	return builder.Limit(params.Limit()).Offset(params.Offset())
}
