package batch

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingMetrics struct {
	processed, failed, retried, panicked, truncated, blocked int32
	queueLen                                                 int32
}

func (m *countingMetrics) QueueLength(n int)  { atomic.StoreInt32(&m.queueLen, int32(n)) }
func (m *countingMetrics) BatchProcessed()    { atomic.AddInt32(&m.processed, 1) }
func (m *countingMetrics) BatchFailed()       { atomic.AddInt32(&m.failed, 1) }
func (m *countingMetrics) BatchRetry()        { atomic.AddInt32(&m.retried, 1) }
func (m *countingMetrics) BatchPanicked()     { atomic.AddInt32(&m.panicked, 1) }
func (m *countingMetrics) FullTruncated()     { atomic.AddInt32(&m.truncated, 1) }
func (m *countingMetrics) FullBlocked()       { atomic.AddInt32(&m.blocked, 1) }

func TestSendTruncatesOnOverflow(t *testing.T) {
	m := &countingMetrics{}
	sender, receiver := New[int](3, m)

	sender.Send(1)
	sender.Send(2)
	sender.Send(3)
	sender.Send(4) // triggers truncate-then-push

	var got []int
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		receiver.Exec(func(time.Duration) {}, func(batch []int) error {
			got = append(got, batch...)
			sender.Close()
			return nil
		})
	}()
	wg.Wait()

	assert.LessOrEqual(t, len(got), 3)
	assert.Equal(t, int32(1), atomic.LoadInt32(&m.truncated))
}

func TestReceiverDrainsFinalBatchThenExits(t *testing.T) {
	sender, receiver := New[int](10, nil)
	sender.Send(1)
	sender.Send(2)
	sender.Close()

	var got []int
	receiver.Exec(func(time.Duration) {}, func(batch []int) error {
		got = append(got, batch...)
		return nil
	})
	assert.Equal(t, []int{1, 2}, got)
}

func TestRetryThenSucceed(t *testing.T) {
	m := &countingMetrics{}
	sender, receiver := New[int](10, m)
	sender.Send(1)
	sender.Send(2)
	sender.Send(3)
	sender.Close()

	attempt := 0
	receiver.Exec(func(time.Duration) {}, func(batch []int) error {
		attempt++
		if attempt == 1 {
			return BatchError[int]{Retryable: []int{2, 3}}
		}
		return nil
	})

	assert.Equal(t, int32(1), atomic.LoadInt32(&m.retried))
	assert.Equal(t, int32(1), atomic.LoadInt32(&m.processed))
	assert.Equal(t, int32(1), atomic.LoadInt32(&m.failed))
}

func TestPanicInOnBatchIsCaughtAndCounted(t *testing.T) {
	m := &countingMetrics{}
	sender, receiver := New[int](10, m)
	sender.Send(1)
	sender.Close()

	receiver.Exec(func(time.Duration) {}, func(batch []int) error {
		panic("boom")
	})

	assert.Equal(t, int32(1), atomic.LoadInt32(&m.panicked))
}

func TestWhenEmptyFiresImmediatelyWhenAlreadyEmpty(t *testing.T) {
	sender, _ := New[int](10, nil)
	called := false
	sender.WhenEmpty(func() { called = true })
	assert.True(t, called)
}

func TestBlockingFlushReturnsTrueOnceDrained(t *testing.T) {
	sender, receiver := New[int](10, nil)
	sender.Send(1)

	go func() {
		receiver.Exec(func(time.Duration) {}, func(batch []int) error { return nil })
	}()
	// give the receiver a chance to pick up the batch before asking to
	// close; the point under test is BlockingFlush's notification path,
	// not precise timing.
	time.Sleep(10 * time.Millisecond)
	sender.Close()

	ok := sender.BlockingFlush(time.Second)
	assert.True(t, ok)
}

func TestBlockingFlushTimesOutWhenNeverDrained(t *testing.T) {
	sender, _ := New[int](10, nil)
	sender.Send(1)
	ok := sender.BlockingFlush(20 * time.Millisecond)
	assert.False(t, ok)
}

func TestTrySendReportsRetryableFullThenClosed(t *testing.T) {
	sender, _ := New[int](1, nil)
	require.NoError(t, sender.TrySend(1))

	err := sender.TrySend(2)
	var full RetryableFullError[int]
	assert.ErrorAs(t, err, &full)
	assert.Equal(t, 2, full.Item)

	sender.Close()
	err = sender.TrySend(3)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestDelayDoublesThenClampsAndResets(t *testing.T) {
	d := NewDelay(10*time.Millisecond, 40*time.Millisecond)
	assert.Equal(t, 10*time.Millisecond, d.Next())
	assert.Equal(t, 20*time.Millisecond, d.Next())
	assert.Equal(t, 40*time.Millisecond, d.Next())
	assert.Equal(t, 40*time.Millisecond, d.Next(), "clamped at max")
	d.Reset()
	assert.Equal(t, 10*time.Millisecond, d.Next())
}

func TestWindowPredictsMaxOfLastN(t *testing.T) {
	w := &window{}
	assert.Equal(t, 0, w.predict())
	w.record(5)
	w.record(2)
	w.record(9)
	assert.Equal(t, 9, w.predict())
}
