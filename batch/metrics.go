package batch

// Metrics receives the batch channel's own operational counters (§7).
// internal/metrics implements this against the process-wide counter
// registry; tests and standalone use can pass NopMetrics.
type Metrics interface {
	QueueLength(n int)
	BatchProcessed()
	BatchFailed()
	BatchRetry()
	BatchPanicked()
	FullTruncated()
	FullBlocked()
}

// NopMetrics discards every counter update.
type NopMetrics struct{}

func (NopMetrics) QueueLength(int)   {}
func (NopMetrics) BatchProcessed()   {}
func (NopMetrics) BatchFailed()      {}
func (NopMetrics) BatchRetry()       {}
func (NopMetrics) BatchPanicked()    {}
func (NopMetrics) FullTruncated()    {}
func (NopMetrics) FullBlocked()      {}
