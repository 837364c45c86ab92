// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsForQuery(t *testing.T, query string) PaginationParams {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/v1/products?"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParams(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults when absent", "", 1, 10},
		{"explicit values", "page=3&limit=25", 3, 25},
		{"non-numeric page", "page=abc&limit=5", 1, 5},
		{"non-numeric limit", "page=2&limit=xyz", 2, 10},
		{"zero values coerced", "page=0&limit=0", 1, 10},
		{"negative values coerced", "page=-4&limit=-1", 1, 10},
		{"limit above cap coerced", "page=1&limit=5000", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := paramsForQuery(t, tt.query)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

func TestPaginationParams_Offset(t *testing.T) {
	assert.Equal(t, 0, PaginationParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, PaginationParams{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 75, PaginationParams{Page: 4, Limit: 25}.Offset())
}

func TestCreatePaginationResult(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		limit      int
		wantPages  int
	}{
		{"partial last page", 25, 10, 3},
		{"exact fit", 30, 10, 3},
		{"single short page", 4, 10, 1},
		{"empty store", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CreatePaginationResult([]string{}, tt.total, PaginationParams{Page: 1, Limit: tt.limit})
			assert.Equal(t, tt.wantPages, result.TotalPages)
			assert.Equal(t, tt.total, result.Total)
		})
	}
}
