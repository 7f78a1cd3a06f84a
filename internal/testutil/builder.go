package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// FileBuilder accumulates lines and writes them to a file in a temp dir.
type FileBuilder struct {
	t     *testing.T
	name  string
	lines []string
	crlf  bool
	noEOL bool
}

// NewFile creates a builder for a file named name inside t.TempDir().
func NewFile(t *testing.T, name string) *FileBuilder {
	t.Helper()
	return &FileBuilder{t: t, name: name}
}

// WithLines appends lines.
func (b *FileBuilder) WithLines(lines ...string) *FileBuilder {
	b.lines = append(b.lines, lines...)
	return b
}

// WithCRLF terminates lines with "\r\n".
func (b *FileBuilder) WithCRLF() *FileBuilder {
	b.crlf = true
	return b
}

// WithoutTrailingNewline omits the terminator after the last line.
func (b *FileBuilder) WithoutTrailingNewline() *FileBuilder {
	b.noEOL = true
	return b
}

// Build writes the file and returns its path.
func (b *FileBuilder) Build() string {
	b.t.Helper()
	eol := "\n"
	if b.crlf {
		eol = "\r\n"
	}
	content := strings.Join(b.lines, eol)
	if len(b.lines) > 0 && !b.noEOL {
		content += eol
	}

	path := filepath.Join(b.t.TempDir(), b.name)
	require.NoError(b.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ReadFile returns the content of path.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
