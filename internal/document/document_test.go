package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/rowedit/internal/highlight"
)

func TestRender_TabExpandsToFourNormalCells(t *testing.T) {
	r := NewRow(0, "\t")

	cells := r.Render(DefaultTabWidth, highlight.Plain)

	require.Len(t, cells, 4)
	for _, c := range cells {
		assert.Equal(t, Cell{Ch: ' ', Tag: highlight.Normal}, c)
	}
}

func TestRender_MixedContent(t *testing.T) {
	r := NewRow(0, "a\tb")

	cells := r.Render(2, nil)

	assert.Equal(t, []Cell{
		{'a', highlight.Normal},
		{' ', highlight.Normal},
		{'b', highlight.Normal},
	}, cells, "the tab fills up to the next stop")
}

func TestRender_TabsAlignToStops(t *testing.T) {
	cells := NewRow(0, "abcd\tx\t\ty").Render(4, nil)

	var sb []rune
	for _, c := range cells {
		sb = append(sb, c.Ch)
	}
	assert.Equal(t, "abcd    x       y", string(sb))
}

func TestDisplayCol(t *testing.T) {
	r := NewRow(0, "a\tbc\td")

	assert.Equal(t, 0, r.DisplayCol(0, 4))
	assert.Equal(t, 1, r.DisplayCol(1, 4))
	assert.Equal(t, 4, r.DisplayCol(2, 4))
	assert.Equal(t, 6, r.DisplayCol(4, 4))
	assert.Equal(t, 8, r.DisplayCol(5, 4))
	assert.Equal(t, 9, r.DisplayCol(99, 4), "clamped to the row end")
	assert.Equal(t, 8, NewRow(0, "\t\t").DisplayCol(2, 0))
}

func TestRender_WideCharactersTakeTwoCells(t *testing.T) {
	r := NewRow(0, "世a")

	cells := r.Render(DefaultTabWidth, nil)

	assert.Equal(t, []Cell{
		{Ch: '世', Tag: highlight.Normal},
		{Tag: highlight.Normal, Cont: true},
		{Ch: 'a', Tag: highlight.Normal},
	}, cells)
	assert.Equal(t, 2, r.DisplayCol(1, DefaultTabWidth))
	assert.Equal(t, 3, r.DisplayCol(2, DefaultTabWidth))
}

func TestDisplayCol_TabAfterWideCharacter(t *testing.T) {
	r := NewRow(0, "世\tx")

	assert.Equal(t, 4, r.DisplayCol(2, 4))
	assert.Len(t, r.Render(4, nil), 5)
}

func TestProperty_DisplayColMatchesRender(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		line := rapid.StringMatching(`[ab\t世é]{0,20}`).Draw(t, "line")
		width := rapid.IntRange(1, 8).Draw(t, "width")
		r := NewRow(0, line)

		if got, want := r.DisplayCol(r.Len(), width), len(r.Render(width, nil)); got != want {
			t.Fatalf("DisplayCol(end) = %d, rendered %d cells for %q", got, want, line)
		}
	})
}

func TestRender_UsesClassifierExceptForTabs(t *testing.T) {
	kw := highlight.ClassifierFunc(func(line []rune) []highlight.Tag {
		tags := make([]highlight.Tag, len(line))
		for i := range tags {
			tags[i] = highlight.Keyword
		}
		return tags
	})

	cells := NewRow(0, "if\t").Render(1, kw)

	require.Len(t, cells, 3)
	assert.Equal(t, highlight.Keyword, cells[0].Tag)
	assert.Equal(t, highlight.Keyword, cells[1].Tag)
	assert.Equal(t, highlight.Normal, cells[2].Tag)
}

func TestRender_ShortClassifierOutputDefaultsToNormal(t *testing.T) {
	one := highlight.ClassifierFunc(func([]rune) []highlight.Tag {
		return []highlight.Tag{highlight.Number}
	})

	cells := NewRow(0, "12").Render(4, one)

	assert.Equal(t, highlight.Number, cells[0].Tag)
	assert.Equal(t, highlight.Normal, cells[1].Tag)
}

func TestRender_NonPositiveTabWidthUsesDefault(t *testing.T) {
	assert.Len(t, NewRow(0, "\t").Render(0, nil), DefaultTabWidth)
}

func TestInsertChar_PadsMissingRows(t *testing.T) {
	d := New(nil)

	d.InsertChar(2, 0, 'x')

	assert.Equal(t, []string{"", "", "x"}, d.Lines())
}

func TestInsertChar_Middle(t *testing.T) {
	d := New([]string{"hllo"})

	d.InsertChar(0, 1, 'e')

	assert.Equal(t, []string{"hello"}, d.Lines())
}

func TestInsertChar_Unicode(t *testing.T) {
	d := New([]string{"héllo"})

	d.InsertChar(0, 2, 'x')

	assert.Equal(t, "héxllo", d.Row(0).String())
	assert.Equal(t, 6, d.RowLen(0))
}

func TestBackspaceChar(t *testing.T) {
	d := New([]string{"abc"})

	d.BackspaceChar(0, 0)
	assert.Equal(t, "abc", d.Row(0).String(), "col 0 is a no-op")

	d.BackspaceChar(0, 2)
	assert.Equal(t, "ac", d.Row(0).String())

	d.BackspaceChar(5, 1)
	d.BackspaceChar(0, 9)
	assert.Equal(t, []string{"ac"}, d.Lines())
}

func TestSplitRow(t *testing.T) {
	d := New([]string{"hello world", "next"})

	kept, added := d.SplitRow(0, 5)

	assert.Equal(t, "hello", kept.String())
	assert.Equal(t, " world", added.String())
	assert.Equal(t, []string{"hello", " world", "next"}, d.Lines())
}

func TestSplitRow_KeptRowDoesNotAliasNewRow(t *testing.T) {
	d := New([]string{"abcd"})
	d.SplitRow(0, 2)

	d.InsertChar(0, 2, 'X')

	assert.Equal(t, []string{"abX", "cd"}, d.Lines())
}

func TestMergeRowInto(t *testing.T) {
	d := New([]string{"ab", "cd", "ef"})

	d.MergeRowInto(0)
	assert.Equal(t, []string{"abcd", "ef"}, d.Lines())

	d.MergeRowInto(1)
	assert.Equal(t, []string{"abcd", "ef"}, d.Lines(), "merging the last row is a no-op")
}

func TestRowAccessors(t *testing.T) {
	r := NewRow(7, "ab")

	assert.Equal(t, 7, r.Index)
	assert.True(t, r.HasColumn(1))
	assert.False(t, r.HasColumn(2))
	assert.True(t, r.IsEnd(2))
	ch, ok := r.At(1)
	assert.True(t, ok)
	assert.Equal(t, 'b', ch)
	_, ok = r.At(-1)
	assert.False(t, ok)

	runes := r.Runes()
	runes[0] = 'z'
	assert.Equal(t, "ab", r.String(), "Runes returns a copy")
}

func TestInsertAndRemoveRow(t *testing.T) {
	d := New([]string{"a", "c"})

	d.InsertRow(1, "b")
	d.InsertRow(99, "d")
	d.InsertRow(-3, "_")
	assert.Equal(t, []string{"_", "a", "b", "c", "d"}, d.Lines())

	d.RemoveRow(0)
	d.RemoveRow(42)
	assert.Equal(t, []string{"a", "b", "c", "d"}, d.Lines())
	assert.Nil(t, d.Row(4))
	assert.Equal(t, 0, d.RowLen(4))

	d.Reset([]string{"x"})
	assert.Equal(t, []string{"x"}, d.Lines())
}

func TestProperty_SplitThenMergeRestoresRow(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		line := rapid.StringMatching(`[a-z \t]{0,30}`).Draw(t, "line")
		col := rapid.IntRange(0, len([]rune(line))).Draw(t, "col")
		d := New([]string{line})

		d.SplitRow(0, col)
		d.MergeRowInto(0)

		if got := d.Lines(); len(got) != 1 || got[0] != line {
			t.Fatalf("split at %d then merge gave %q, want %q", col, got, line)
		}
	})
}
