package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

type bufLogger struct{ buf *bytes.Buffer }

func (b bufLogger) Log(line string) { b.buf.WriteString(line) }

func TestLevelGating(t *testing.T) {
	buf := &bytes.Buffer{}
	SetLogger(bufLogger{buf: buf})
	defer SetLogger(WriterLogger{w: nilWriter{}})
	defer SetLevel(LevelWarn)

	SetLevel(LevelError)
	Warn("should not appear")
	assert.Empty(t, buf.String())

	SetLevel(LevelDebug)
	Debug("hello %d", 42)
	assert.Contains(t, buf.String(), "DEBUG: hello 42")
}

func TestWarnOnceFiresOnlyOnce(t *testing.T) {
	buf := &bytes.Buffer{}
	SetLogger(bufLogger{buf: buf})
	defer SetLogger(WriterLogger{w: nilWriter{}})
	SetLevel(LevelWarn)
	defer SetLevel(LevelWarn)

	WarnOnce("test-key-unique", "broken: %s", "reason")
	WarnOnce("test-key-unique", "broken: %s", "reason")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("broken: reason")))
}

type nilWriter struct{}

func (nilWriter) Write(p []byte) (int, error) { return len(p), nil }
