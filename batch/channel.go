package batch

// New creates a bound Sender/Receiver pair. maxCapacity is the most
// items the pending batch will ever hold before Send starts
// truncating. A nil metrics discards every counter update.
func New[T any](maxCapacity int, metrics Metrics) (*Sender[T], *Receiver[T]) {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	sh := newShared[T]()
	sender := &Sender[T]{maxCapacity: maxCapacity, shared: sh, metrics: metrics}
	receiver := &Receiver[T]{
		shared:        sh,
		metrics:       metrics,
		idleDelay:     DefaultIdleDelay(),
		retryDelay:    DefaultRetryDelay(),
		retryAttempts: DefaultRetryAttempts,
		window:        &window{},
	}
	return sender, receiver
}
