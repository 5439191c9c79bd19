package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination_Defaults(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/user/services", nil)

	skip, limit, page := ParsePagination(req, 10, 50)
	assert.Equal(t, int64(0), skip)
	assert.Equal(t, int64(10), limit)
	assert.Equal(t, 1, page)
}

func TestParsePagination_SkipFollowsPage(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/user/services?page=3&limit=20", nil)

	skip, limit, page := ParsePagination(req, 10, 50)
	assert.Equal(t, int64(40), skip)
	assert.Equal(t, int64(20), limit)
	assert.Equal(t, 3, page)
}

func TestParsePagination_ClampsToMax(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/user/services?limit=500", nil)

	_, limit, _ := ParsePagination(req, 10, 50)
	assert.Equal(t, int64(50), limit)
}

func TestParsePagination_RejectsGarbage(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/user/services?page=-2&limit=abc", nil)

	skip, limit, page := ParsePagination(req, 10, 50)
	assert.Equal(t, int64(0), skip)
	assert.Equal(t, int64(10), limit)
	assert.Equal(t, 1, page)
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("user@example.com"))
	assert.True(t, ValidEmail("  padded@example.com  "))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("user@"))
	assert.False(t, ValidEmail("@example.com"))
	assert.False(t, ValidEmail(""))
}

func TestGenerateName_Length(t *testing.T) {
	name := GenerateName(10)
	assert.Len(t, name, 10)
	assert.NotEqual(t, name, GenerateName(10))
}
