package main

import "sync"

// ChannelBuffer accumulates one destination channel's time-domain output
// across overlap-add windows (§4.5, §5). Adjacent windows share half their
// samples (50% hop), so concurrent synthesis workers can legitimately write
// overlapping ranges of the same buffer; a single mutex per channel keeps
// each Add call atomic, the coarse-lock-per-shared-resource fallback §9
// describes as "usually sufficient since Transform dominates CPU time."
type ChannelBuffer struct {
	mu   sync.Mutex
	data []float64
}

// newChannelBuffer allocates a buffer sized to hold every window's tail,
// i.e. enough room for the last window start plus a full window length.
func newChannelBuffer(size int) *ChannelBuffer {
	return &ChannelBuffer{data: make([]float64, size)}
}

// Add accumulates samples into data[start:start+len(samples)], clipping at
// the buffer's edges (a window's end can run past the logical sample count
// when the source was zero-padded, §4.1).
func (c *ChannelBuffer) Add(start int, samples []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range samples {
		idx := start + i
		if idx < 0 || idx >= len(c.data) {
			continue
		}
		c.data[idx] += s
	}
}

// Samples returns the first n accumulated samples, trimming the
// zero-padded tail used only to make every window fit.
func (c *ChannelBuffer) Samples(n int) []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n > len(c.data) {
		n = len(c.data)
	}
	out := make([]float64, n)
	copy(out, c.data[:n])
	return out
}
