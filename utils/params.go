package utils

import (
	"net/http"
	"strconv"
)

// ParsePagination reads page/limit query params and returns mongo-ready
// skip/limit plus the normalized page number.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) (skip int64, limit int64, page int) {
	q := r.URL.Query()

	page, _ = strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	l, _ := strconv.Atoi(q.Get("limit"))
	if l < 1 {
		l = defaultLimit
	}
	if l > maxLimit {
		l = maxLimit
	}

	return int64((page - 1) * l), int64(l), page
}

// ParseFloat returns 0 when the string is empty or malformed.
func ParseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func ParseInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
