package errors

import (
	"strconv"
	"strings"
)

// Bounds for user-tunable inputs.
const (
	MinArraySize = 1
	MaxArraySize = 500

	MinSpeed = 1
	MaxSpeed = 10
)

// ParseTarget parses a search target typed by the user.
// Missing or non-numeric input is rejected with a user-visible message
// and no run should be performed.
func ParseTarget(raw string) (int, error) {
	v, ok := ParseValue(raw)
	if !ok {
		return 0, New(ErrCodeInvalidInput, "Please enter a valid target value")
	}
	return v, nil
}

// ParseValue parses a node or container value. Like the form controls it
// replaces, it accepts a leading integer and ignores trailing garbage
// ("12abc" is 12). ok is false when no integer can be read, in which case
// callers silently skip the insert.
func ParseValue(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseInts parses a comma-separated list of integers such as "5,3,8,1".
// Blank entries are skipped; any non-numeric entry is an error.
func ParseInts(raw string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, New(ErrCodeInvalidInput, "invalid integer %q", part)
		}
		out = append(out, v)
	}
	return out, nil
}

// ValidateArraySize checks the configured sequence length.
func ValidateArraySize(n int) error {
	if n < MinArraySize || n > MaxArraySize {
		return New(ErrCodeInvalidSize, "array size must be between %d and %d, got %d", MinArraySize, MaxArraySize, n)
	}
	return nil
}

// ValidateSpeed checks a speed slider value.
func ValidateSpeed(speed int) error {
	if speed < MinSpeed || speed > MaxSpeed {
		return New(ErrCodeInvalidSpeed, "speed must be between %d and %d, got %d", MinSpeed, MaxSpeed, speed)
	}
	return nil
}

// ValidateCell checks that (row, col) lies inside a size×size grid.
func ValidateCell(row, col, size int) error {
	if row < 0 || row >= size || col < 0 || col >= size {
		return New(ErrCodeInvalidCell, "cell (%d,%d) outside %dx%d grid", row, col, size, size)
	}
	return nil
}
