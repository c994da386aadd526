package util

import (
	"errors"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 5
	MaxLimit     = 100
)

var ErrBadPage = errors.New("limit and offset must be non-negative integers")

// ParsePage reads limit and offset query values. Empty values take the
// defaults; anything else must be a non-negative integer. Limit is capped
// at MaxLimit.
func ParsePage(limitRaw, offsetRaw string) (limit, offset int, err error) {
	limit, err = parseNonNegative(limitRaw, DefaultLimit)
	if err != nil {
		return 0, 0, err
	}
	offset, err = parseNonNegative(offsetRaw, 0)
	if err != nil {
		return 0, 0, err
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return limit, offset, nil
}

func parseNonNegative(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, ErrBadPage
	}
	return n, nil
}

// ParseOptionalBool returns nil for an empty value.
func ParseOptionalBool(raw string) (*bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
