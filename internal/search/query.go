package search

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// ParseQuery validates and normalizes raw search input into a canonical
// QueryDescriptor. Paging defaults to page 1 with 10 results; anything
// that does not parse to a positive integer is rejected. The query must
// carry at least one of term, genre, language, or tag. No side effects.
func ParseQuery(raw RawQuery) (*QueryDescriptor, error) {
	page, err := parsePositive(raw.Page, defaultPage)
	if err != nil {
		return nil, fmt.Errorf("%w: page %q", ErrInvalidPagination, raw.Page)
	}
	pageSize, err := parsePositive(raw.PageSize, defaultPageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: limit %q", ErrInvalidPagination, raw.PageSize)
	}

	desc := &QueryDescriptor{
		Term:     strings.TrimSpace(raw.Term),
		Page:     page,
		PageSize: pageSize,
		Genre:    strings.TrimSpace(raw.Genre),
		Language: strings.TrimSpace(raw.Language),
		Tag:      strings.TrimSpace(raw.Tag),
	}

	if desc.Term == "" && desc.Genre == "" && desc.Language == "" && desc.Tag == "" {
		return nil, ErrEmptyQuery
	}

	return desc, nil
}

func parsePositive(raw string, def int64) (int64, error) {
	if strings.TrimSpace(raw) == "" {
		return def, nil
	}
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	if value < 1 {
		return 0, fmt.Errorf("must be >= 1, got %d", value)
	}
	return value, nil
}
