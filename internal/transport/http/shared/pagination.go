package shared

import (
	"net/http"
	"strconv"
)

type PageQuery struct {
	Page  int
	Limit int
}

// ParsePageQuery reads page/limit from the query string. Zero values let the
// service apply its per-resource defaults.
func ParsePageQuery(r *http.Request, maxLimit int) PageQuery {
	page := 0
	limit := 0
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return PageQuery{Page: page, Limit: limit}
}
