package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePageParams(t *testing.T) {
	t.Run("дефолты при пустом запросе", func(t *testing.T) {
		params := ParsePageParams(url.Values{}, "apptId")
		assert.Equal(t, 0, params.Page)
		assert.Equal(t, DefaultPageSize, params.Size)
		assert.Equal(t, "apptId", params.SortBy)
		assert.Equal(t, "desc", params.SortDir)
	})

	t.Run("кривые значения молча заменяются дефолтами", func(t *testing.T) {
		values := url.Values{}
		values.Set("page", "abc")
		values.Set("size", "-5")
		values.Set("sortDir", "sideways")

		params := ParsePageParams(values, "id")
		assert.Equal(t, 0, params.Page)
		assert.Equal(t, DefaultPageSize, params.Size)
		assert.Equal(t, "desc", params.SortDir)
	})

	t.Run("size ограничивается потолком", func(t *testing.T) {
		values := url.Values{}
		values.Set("size", "10000")

		params := ParsePageParams(values, "id")
		assert.Equal(t, MaxPageSize, params.Size)
	})

	t.Run("валидные значения принимаются", func(t *testing.T) {
		values := url.Values{}
		values.Set("page", "3")
		values.Set("size", "50")
		values.Set("sortBy", "createdAt")
		values.Set("sortDir", "ASC")

		params := ParsePageParams(values, "id")
		assert.Equal(t, 3, params.Page)
		assert.Equal(t, 50, params.Size)
		assert.Equal(t, "createdAt", params.SortBy)
		assert.Equal(t, "asc", params.SortDir)
	})
}

func TestPageParamsOffsetAndTotalPages(t *testing.T) {
	params := PageParams{Page: 2, Size: 20}
	assert.Equal(t, uint64(40), params.Offset())
	assert.Equal(t, uint64(20), params.Limit())

	assert.Equal(t, 3, params.TotalPages(41))
	assert.Equal(t, 2, params.TotalPages(40))
	assert.Equal(t, 0, params.TotalPages(0))
}
