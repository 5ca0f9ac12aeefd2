package main

// StereoStream is the in-memory, immutable decoded stereo input: two
// ordered sequences of real samples normalized to [-1, 1], plus the format
// metadata needed to reproduce the output at the same sample rate (§3).
type StereoStream struct {
	SampleRate int
	BitDepth   int
	L          []float64
	R          []float64
}

// NumSamples returns N, the sample count per channel.
func (s *StereoStream) NumSamples() int { return len(s.L) }
