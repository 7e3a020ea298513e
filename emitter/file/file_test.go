package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.emit.dev/emit/batch"
	"go.emit.dev/emit/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() core.Timestamp {
	ts, _ := core.FromTime(c.t)
	return ts
}

type seqRng struct{ next byte }

func (r *seqRng) Fill(dst []byte) bool {
	for i := range dst {
		r.next++
		dst[i] = r.next
	}
	return true
}

func newTestConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		Dir:    dir,
		Prefix: "events",
		Ext:    "ndjson",
		RollBy: RollByDay,
		Clock:  fixedClock{t: time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)},
		Rng:    &seqRng{},
	}
}

func TestFileNameFormat(t *testing.T) {
	cfg := newTestConfig(t)
	interval := cfg.RollBy.truncate(cfg.Clock.Now().Time())
	name := fileName(cfg, interval, cfg.Clock.Now().Time(), [4]byte{1, 2, 3, 4})
	assert.Equal(t, "events.2026-07-31.43200000.01020304.ndjson", name)
}

func TestWriterWritesLinesWithSeparatorAndFsyncs(t *testing.T) {
	cfg := newTestConfig(t)
	w := newWriter(cfg)
	defer w.Close()

	err := w.OnBatch([][]byte{[]byte(`{"a":1}`), []byte(`{"a":2}`)})
	require.NoError(t, err)

	data, rerr := os.ReadFile(w.path)
	require.NoError(t, rerr)
	assert.Equal(t, "{\"a\":1}\n{\"a\":2}\n", string(data))
}

func TestWriterRollsOverOnSize(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.MaxFileSizeBytes = 10
	w := newWriter(cfg)
	defer w.Close()

	require.NoError(t, w.OnBatch([][]byte{[]byte("0123456789")}))
	firstPath := w.path

	require.NoError(t, w.OnBatch([][]byte{[]byte("more")}))
	assert.NotEqual(t, firstPath, w.path, "second batch rolled to a new file")

	names, err := listFiles(cfg.Dir, cfg)
	require.NoError(t, err)
	assert.Len(t, names, 2)
}

func TestRetentionDeletesOldestBeforeExceedingMaxFiles(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.MaxFiles = 2
	cfg.MaxFileSizeBytes = 1 // force a roll on every batch

	w := newWriter(cfg)
	defer w.Close()

	for i := 0; i < 4; i++ {
		require.NoError(t, w.OnBatch([][]byte{[]byte("x")}))
		// advance the clock so each file gets a distinct name even
		// within the same day/counter collision window
		cfg.Clock = fixedClock{t: cfg.Clock.(fixedClock).t.Add(time.Millisecond)}
		w.cfg = cfg
	}

	names, err := listFiles(cfg.Dir, cfg)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(names), cfg.MaxFiles)
}

func TestEncodeLineIncludesPropsAndMessage(t *testing.T) {
	tpl := core.ParseTemplate("hello {name}")
	props := core.SliceProps{{Key: core.NewStaticStr("name"), Val: core.OfStringLiteral("world")}}
	evt := core.NewEvent(core.NewPath("svc"), tpl, props)

	line := encodeLine(evt)
	assert.Contains(t, string(line), `"msg":"hello world"`)
	assert.Contains(t, string(line), `"name":"world"`)
}

func TestEmitterEmitThenFlushWritesToDisk(t *testing.T) {
	cfg := newTestConfig(t)
	emitter, receiver := New(cfg, 0, nil)

	go receiver.Run()

	tpl := core.ParseTemplate("started")
	emitter.Emit(core.NewEvent(core.NewPath("svc"), tpl, core.Empty{}))
	emitter.Close()

	ok := emitter.BlockingFlush(time.Second)
	assert.True(t, ok)

	names, err := listFiles(cfg.Dir, cfg)
	require.NoError(t, err)
	require.Len(t, names, 1)
	data, err := os.ReadFile(filepath.Join(cfg.Dir, names[0]))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"started"`)
}

func TestBatchErrorCarriesWholeBatchOnWriteFailure(t *testing.T) {
	// A directory that cannot be created in (nonexistent parent)
	// forces ensureFile to fail, which must surface as a retryable
	// BatchError rather than losing the lines.
	cfg := newTestConfig(t)
	cfg.Dir = filepath.Join(cfg.Dir, "does", "not", "exist")
	w := newWriter(cfg)

	err := w.OnBatch([][]byte{[]byte("x")})
	var be batch.BatchError[[]byte]
	require.ErrorAs(t, err, &be)
	assert.Len(t, be.Retryable, 1)
}
