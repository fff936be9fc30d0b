package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderServerTable(t *testing.T) {
	rows := []ServerTableRow{
		{Name: "web-1", Host: "10.0.0.5", User: "deploy", KeyPath: "/home/me/.ssh/id_rsa"},
		{Name: "database-primary", Host: "db.internal:2222", User: "root", KeyPath: "/keys/db"},
	}

	out := RenderServerTable(rows)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[0], "KEY")
	assert.Contains(t, lines[1], "web-1")
	assert.Contains(t, lines[2], "db.internal:2222")

	// Columns line up: HOST starts at the same offset on every line.
	hostCol := strings.Index(lines[0], "HOST")
	assert.Equal(t, hostCol, strings.Index(lines[1], "10.0.0.5"))
	assert.Equal(t, hostCol, strings.Index(lines[2], "db.internal"))
}

func TestRenderServerTable_Empty(t *testing.T) {
	assert.Equal(t, "No servers configured", RenderServerTable(nil))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", padRight("ab", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 3))
}
