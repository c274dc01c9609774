package dataset

import (
	"fmt"
	"regexp"
	"strconv"
)

var rangePattern = regexp.MustCompile(`^([0-9]+)-([0-9]+)$`)

// ParseRange splits a "start-end" frame range into its bounds.
func ParseRange(s string) (start, end int, err error) {
	m := rangePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, &ValidationError{Field: "frame_range", Reason: fmt.Sprintf("%q is not of the form start-end", s)}
	}
	if start, err = strconv.Atoi(m[1]); err != nil {
		return 0, 0, &ValidationError{Field: "frame_range", Reason: err.Error()}
	}
	if end, err = strconv.Atoi(m[2]); err != nil {
		return 0, 0, &ValidationError{Field: "frame_range", Reason: err.Error()}
	}
	return start, end, nil
}

// FormatRange is the inverse of ParseRange.
func FormatRange(start, end int) string {
	return fmt.Sprintf("%d-%d", start, end)
}
