package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinOrDefault(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		def   string
		want  string
	}{
		{
			name:  "nil slice returns default",
			items: nil,
			def:   "(none)",
			want:  "(none)",
		},
		{
			name:  "empty slice returns default",
			items: []string{},
			def:   "nobody",
			want:  "nobody",
		},
		{
			name:  "single item",
			items: []string{"ops@example.com"},
			def:   "(none)",
			want:  "ops@example.com",
		},
		{
			name:  "multiple items joined with comma",
			items: []string{"a@example.com", "b@example.com"},
			def:   "(none)",
			want:  "a@example.com, b@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinOrDefault(tt.items, tt.def))
		})
	}
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, "servers"},
		{1, "server"},
		{2, "servers"},
		{-1, "servers"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Pluralize(tt.count, "server", "servers"))
	}
}

func TestCountOf(t *testing.T) {
	assert.Equal(t, "1 alert", CountOf(1, "alert", "alerts"))
	assert.Equal(t, "0 alerts", CountOf(0, "alert", "alerts"))
	assert.Equal(t, "12 servers", CountOf(12, "server", "servers"))
}
