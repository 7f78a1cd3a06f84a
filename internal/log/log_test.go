package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withBuffer(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := defaultLogger
	buf := &bytes.Buffer{}
	InitWithWriter(buf)
	t.Cleanup(func() { defaultLogger = prev })
	return buf
}

func TestLog_FormatsFields(t *testing.T) {
	buf := withBuffer(t)

	Info(CatFile, "saved", "path", "a.txt", "lines", 3)

	out := buf.String()
	assert.Contains(t, out, "[INFO] [file] saved path=a.txt lines=3")
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}

func TestLog_OddFieldCount(t *testing.T) {
	buf := withBuffer(t)

	Warn(CatInput, "odd", "orphan")

	assert.Contains(t, buf.String(), "orphan=<missing>")
}

func TestLog_ErrorErr(t *testing.T) {
	buf := withBuffer(t)

	ErrorErr(CatFile, "save failed", errors.New("disk full"))
	ErrorErr(CatFile, "nil error", nil)

	out := buf.String()
	assert.Contains(t, out, "[ERROR] [file] save failed error=disk full")
	assert.Contains(t, out, "error=<nil>")
}

func TestLog_MinLevelAndDisable(t *testing.T) {
	buf := withBuffer(t)

	SetMinLevel(LevelWarn)
	Debug(CatEditor, "hidden")
	Info(CatEditor, "hidden too")
	Warn(CatEditor, "shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")

	buf.Reset()
	SetEnabled(false)
	Error(CatEditor, "muted")
	assert.Empty(t, buf.String())
}

func TestLog_NoLoggerIsSilent(t *testing.T) {
	prev := defaultLogger
	defaultLogger = nil
	t.Cleanup(func() { defaultLogger = prev })

	assert.NotPanics(t, func() {
		Debug(CatRender, "nothing")
		SetEnabled(true)
		SetMinLevel(LevelError)
	})
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestScope_PrefixesFields(t *testing.T) {
	buf := withBuffer(t)
	s := With("session", "abc")

	s.Info(CatEditor, "started", "file", "a.txt")
	s.ErrorErr(CatFile, "failed", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "[INFO] [editor] started session=abc file=a.txt")
	assert.Contains(t, out, "[ERROR] [file] failed session=abc error=boom")
}

func TestScope_DoesNotShareBackingArray(t *testing.T) {
	buf := withBuffer(t)
	base := make([]any, 2, 8)
	base[0], base[1] = "session", "abc"
	s := Scope{fields: base}

	s.Debug(CatInput, "one", "k", 1)
	s.Warn(CatInput, "two")

	assert.Contains(t, buf.String(), "two session=abc\n")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		" warn ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestInit_WritesToFile(t *testing.T) {
	prev := defaultLogger
	t.Cleanup(func() { defaultLogger = prev })
	l, err := newLogger(t.TempDir() + "/debug.log")
	require.NoError(t, err)
	defaultLogger = l

	Info(CatConfig, "hello")
	l.close()
	Info(CatConfig, "after close is dropped")

	assert.Nil(t, l.writer)
}
