package utils

import (
	"net/url"
	"strconv"

	"restaurant-system/pkg/types"
)

// ParseFilterFromQuery разбирает search/limit/offset/page из query-параметров.
func ParseFilterFromQuery(query url.Values) types.Filter {
	filter := types.Filter{
		Limit:  25,
		Offset: 0,
		Page:   1,
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			filter.Limit = l
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filter.Offset = o
			if filter.Limit > 0 {
				filter.Page = (o / filter.Limit) + 1
			}
		}
	}
	if pageStr := query.Get("page"); pageStr != "" && filter.Offset == 0 { // page имеет приоритет только если offset не задан
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filter.Page = p
			filter.Offset = (p - 1) * filter.Limit
		}
	}

	if search := query.Get("search"); search != "" {
		filter.Search = search
	}

	if wp := query.Get("withPagination"); wp == "true" || wp == "1" {
		filter.WithPagination = true
	}

	return filter
}
