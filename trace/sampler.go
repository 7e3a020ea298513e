package trace

// Sampler decides whether a newly rooted trace should be marked
// sampled. It is only consulted when a trace is rooted in this process
// (there is no active traceparent to inherit a sampling decision from);
// a nil Sampler samples everything.
type Sampler func(SpanCtxt) bool

// AlwaysSample is a Sampler that marks every rooted trace sampled.
func AlwaysSample(SpanCtxt) bool { return true }

// NeverSample is a Sampler that never marks a rooted trace sampled.
func NeverSample(SpanCtxt) bool { return false }
