// Package backend defines the shared pieces of the resource backends: the
// unavailability sentinel that makes a whole category skip silently, and the
// count sanitization every CLI-transport adapter runs its numeric output
// through.
package backend

import (
	"errors"
	"strconv"
	"strings"
)

// ErrUnavailable marks a backend whose tool is not installed or whose daemon
// is unreachable. Categories backed by an unavailable backend are skipped
// silently; this is not a run failure.
var ErrUnavailable = errors.New("backend unavailable")

// ParseCount coerces the numeric output of a count query to an int. Empty,
// padded or malformed output yields 0 rather than an error: a cleanup report
// prints "0", never a raw formatting artifact.
func ParseCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParseSize coerces a human-formatted byte size ("1.676GB", "24.5MB", "0B")
// to bytes. Malformed input yields 0, same contract as ParseCount.
func ParseSize(s string) uint64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	units := []struct {
		suffix string
		factor float64
	}{
		{"TB", 1 << 40},
		{"GB", 1 << 30},
		{"MB", 1 << 20},
		{"KB", 1 << 10},
		{"kB", 1000},
		{"B", 1},
	}
	for _, u := range units {
		if strings.HasSuffix(s, u.suffix) {
			v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, u.suffix)), 64)
			if err != nil || v < 0 {
				return 0
			}
			return uint64(v * u.factor)
		}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
