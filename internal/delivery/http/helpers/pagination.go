package helpers

import (
	"fmt"
	"net/http"
	"strconv"

	"eventrewards/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePagination reads page and page_size from the query string. Missing values
// take the defaults and page_size above MaxPageSize is clamped. Anything that is
// not a positive integer is reported as domain.ErrInvalidInput.
func ParsePagination(r *http.Request) (domain.PaginationParams, error) {
	q := r.URL.Query()
	page, err := positiveParam(q.Get("page"), "page", DefaultPage)
	if err != nil {
		return domain.PaginationParams{}, err
	}
	pageSize, err := positiveParam(q.Get("page_size"), "page_size", DefaultPageSize)
	if err != nil {
		return domain.PaginationParams{}, err
	}
	return domain.PaginationParams{Page: page, PageSize: min(pageSize, MaxPageSize)}, nil
}

func positiveParam(raw, name string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, name)
	}
	return v, nil
}
