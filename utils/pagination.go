package utils

import (
	"fmt"
	"strconv"
)

const (
	pageSizeDefault = 20
	pageSizeMax     = 100
)

// GetPaginationParams resolves optional offset and limit to concrete values.
// Negative offsets become 0; missing or non-positive limits use the default,
// and limits are capped at pageSizeMax.
func GetPaginationParams(offset *int, limit *int) (int, int) {
	finalOffset := 0
	finalLimit := pageSizeDefault

	if offset != nil && *offset >= 0 {
		finalOffset = *offset
	}
	if limit != nil && *limit > 0 {
		finalLimit = min(*limit, pageSizeMax)
	}
	return finalOffset, finalLimit
}

// ParsePagination reads the raw "offset" and "limit" query values. Empty
// values fall back to the defaults; non-integers are an error.
func ParsePagination(offsetRaw, limitRaw string) (int, int, error) {
	offset, err := parseOptionalInt("offset", offsetRaw)
	if err != nil {
		return 0, 0, err
	}
	limit, err := parseOptionalInt("limit", limitRaw)
	if err != nil {
		return 0, 0, err
	}
	o, l := GetPaginationParams(offset, limit)
	return o, l, nil
}

func parseOptionalInt(name, raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid '%s' query parameter, must be an integer", name)
	}
	return &v, nil
}
