package models

import (
	"fmt"
	"strconv"
)

// NextPeriod returns the identifier of the period that follows the given
// one. Periods are string-encoded monotonic integers (e.g. "20250823011").
func NextPeriod(period string) (string, error) {
	n, err := strconv.ParseInt(period, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid period %q: %w", period, err)
	}
	return strconv.FormatInt(n+1, 10), nil
}
