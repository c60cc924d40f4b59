package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "trims whitespace",
			input:    []string{"  sale  ", "new  ", "  clearance"},
			expected: []string{"sale", "new", "clearance"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"sale", "new", "sale", "clearance", "new"},
			expected: []string{"sale", "new", "clearance"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"sale", "", "  ", "new"},
			expected: []string{"sale", "new"},
		},
		{
			name:     "preserves case",
			input:    []string{"Sale", "sale", "SALE"},
			expected: []string{"Sale", "sale", "SALE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}
