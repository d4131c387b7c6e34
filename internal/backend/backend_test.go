package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"plain number", "42", 42},
		{"padded", "  7\n", 7},
		{"empty string", "", 0},
		{"whitespace only", "   ", 0},
		{"garbage", "n/a", 0},
		{"negative", "-3", 0},
		{"zero", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCount(tt.in))
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want uint64
	}{
		{"bytes", "512B", 512},
		{"megabytes", "24MB", 24 << 20},
		{"fractional gigabytes", "1.5GB", 3 << 29},
		{"decimal kilobytes", "2kB", 2000},
		{"bare number", "1024", 1024},
		{"empty", "", 0},
		{"garbage", "lots", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSize(tt.in))
		})
	}
}
