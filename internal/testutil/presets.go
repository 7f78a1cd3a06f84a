package testutil

import (
	"strconv"
	"strings"
)

// Prose is a short multi-line document with words, punctuation and a tab.
func Prose() []string {
	return []string{
		"hello world",
		"",
		"\tindented line",
		"foo-bar baz_qux 42",
	}
}

// WideLine returns a single line of n characters cycling through a-z.
func WideLine(n int) string {
	var sb strings.Builder
	for i := range n {
		sb.WriteByte(byte('a' + i%26))
	}
	return sb.String()
}

// Numbered returns n lines "line 1" .. "line n".
func Numbered(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "line " + strconv.Itoa(i+1)
	}
	return lines
}

