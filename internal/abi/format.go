package abi

import (
	"fmt"
	"strconv"
)

const (
	// maxDisplayLength is the longest evaluated value rendered verbatim.
	maxDisplayLength = 24

	// ellipsis separates the kept head and tail of a truncated value.
	ellipsis = "..."

	truncateHead = 12
	truncateTail = 8
)

// FormatValue renders an evaluated value for display under a field.
// Values longer than 24 characters keep the first 12 and last 8 characters
// around an ellipsis, so very large field elements stay recognizable
// without overflowing the row.
func FormatValue(v any) string {
	var s string
	switch val := v.(type) {
	case string:
		s = val
	case float64:
		s = strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		s = strconv.Itoa(val)
	case int64:
		s = strconv.FormatInt(val, 10)
	case uint64:
		s = strconv.FormatUint(val, 10)
	default:
		s = fmt.Sprint(val)
	}
	return truncateValue(s)
}

func truncateValue(s string) string {
	if len(s) <= maxDisplayLength {
		return s
	}
	return s[:truncateHead] + ellipsis + s[len(s)-truncateTail:]
}
