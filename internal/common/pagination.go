package common

import (
	"net/http"
	"strconv"
)

// Pagination is the metadata block list endpoints attach to responses.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
}

// ParsePagination reads the page and limit query parameters. Missing,
// malformed or non-positive values keep the defaults (page 1, the supplied
// per-page size).
func ParsePagination(r *http.Request, defaultPerPage int) (page, perPage int) {
	page, perPage = 1, defaultPerPage
	q := r.URL.Query()
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		perPage = v
	}
	return page, perPage
}
