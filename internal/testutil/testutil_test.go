package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBuilder(t *testing.T) {
	path := NewFile(t, "a.txt").WithLines("one", "two").Build()
	assert.Equal(t, "one\ntwo\n", ReadFile(t, path))

	path = NewFile(t, "b.txt").WithLines("x").WithCRLF().WithoutTrailingNewline().Build()
	assert.Equal(t, "x", ReadFile(t, path))

	path = NewFile(t, "empty.txt").Build()
	assert.Empty(t, ReadFile(t, path))
}

func TestMemStore(t *testing.T) {
	s := NewMemStore(map[string][]string{"f": {"a"}})

	lines, err := s.Load("f")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, lines)

	lines, err = s.Load("new")
	require.NoError(t, err)
	assert.Empty(t, lines)

	require.NoError(t, s.Save("f", []string{"b", "c"}))
	assert.Equal(t, []string{"b", "c"}, s.Lines("f"))
	assert.Equal(t, 2, s.Loads)
	assert.Equal(t, 1, s.Saves)
	assert.Equal(t, []string{"f", "new"}, s.Paths())

	_, err = NewMemStore(nil).Strict().Load("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFakeTerminal_ReadsChunksThenIdles(t *testing.T) {
	ft := NewFakeTerminal(Size(10, 40), Input("ab", "", "c"))
	buf := make([]byte, 1)

	var got []string
	for range 5 {
		n, err := ft.Read(buf)
		require.NoError(t, err)
		got = append(got, string(buf[:n]))
	}

	assert.Equal(t, []string{"a", "b", "", "c", ""}, got)
	select {
	case <-ft.Drained:
	default:
		t.Fatal("Drained not closed after input ran out")
	}

	rows, cols, err := ft.Size()
	require.NoError(t, err)
	assert.Equal(t, 10, rows)
	assert.Equal(t, 40, cols)
}

func TestFakeTerminal_CapturesOutput(t *testing.T) {
	ft := NewFakeTerminal()
	_, _ = ft.Write([]byte("hi"))
	assert.Equal(t, "hi", ft.Output())
	ft.ResetOutput()
	assert.Empty(t, ft.Output())
}

func TestPresets(t *testing.T) {
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyzab", WideLine(28))
	assert.Equal(t, []string{"line 1", "line 2"}, Numbered(2))
	assert.NotEmpty(t, Prose())
}
