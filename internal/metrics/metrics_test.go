package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestCountersSnapshotReflectsUpdates(t *testing.T) {
	c := New("test-sink")
	c.QueueLength(3)
	c.BatchProcessed()
	c.BatchFailed()
	c.BatchRetry()
	c.FullTruncated()
	c.EventDiscarded()
	c.ConfigurationFailed()

	snap := c.Snapshot()
	assert.EqualValues(t, 3, snap.QueueLength)
	assert.EqualValues(t, 1, snap.BatchProcessed)
	assert.EqualValues(t, 1, snap.BatchFailed)
	assert.EqualValues(t, 1, snap.BatchRetry)
	assert.EqualValues(t, 1, snap.FullTruncated)
	assert.EqualValues(t, 1, snap.EventDiscarded)
	assert.EqualValues(t, 1, snap.ConfigurationFailed)
}

func TestRegisterExposesPrometheusCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New("otlp-traces")
	require := assert.New(t)
	require.NoError(Register(reg, c))

	c.BatchProcessed()

	mfs, err := reg.Gather()
	require.NoError(err)
	require.NotEmpty(mfs)

	other := New("otlp-logs")
	require.NoError(Register(reg, other))
}
