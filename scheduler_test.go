package main

import (
	"context"
	"math"
	"testing"
)

func syntheticStream(n, sampleRate int) *StereoStream {
	l := make([]float64, n)
	r := make([]float64, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		l[i] = 0.5 * math.Sin(2*math.Pi*440*t)
		r[i] = 0.5 * math.Sin(2*math.Pi*440*t+0.3)
	}
	return &StereoStream{SampleRate: sampleRate, BitDepth: 32, L: l, R: r}
}

func runPipelineWithThreads(t *testing.T, threads int) *SurroundOutput {
	t.Helper()
	sampleRate := 48000
	stream := syntheticStream(sampleRate/2, sampleRate)
	plan, err := planWindows(sampleRate, 20, stream.NumSamples())
	if err != nil {
		t.Fatalf("planWindows: %v", err)
	}
	cfg := &Config{
		Matrix:  MatrixDefault,
		Layout:  Layout5_1,
		MinAmp:  0.01,
		LowHz:   20,
		Threads: threads,
	}
	out, err := runPipeline(context.Background(), stream, plan, cfg, noopMetrics{})
	if err != nil {
		t.Fatalf("runPipeline: %v", err)
	}
	return out
}

func TestPipelineDeterministicAcrossThreadCounts(t *testing.T) {
	single := runPipelineWithThreads(t, 1)
	multi := runPipelineWithThreads(t, 8)

	if len(single.Channels) != len(multi.Channels) {
		t.Fatalf("channel count differs: %d vs %d", len(single.Channels), len(multi.Channels))
	}
	for c := range single.Channels {
		a, b := single.Channels[c], multi.Channels[c]
		if len(a) != len(b) {
			t.Fatalf("channel %d length differs: %d vs %d", c, len(a), len(b))
		}
		for i := range a {
			if math.Abs(a[i]-b[i]) > 1e-9 {
				t.Fatalf("channel %d sample %d differs by thread count: %v vs %v", c, i, a[i], b[i])
			}
		}
	}
}

func TestPipelineProducesFiniteNonSilentOutput(t *testing.T) {
	out := runPipelineWithThreads(t, 4)
	maxAbs := 0.0
	for _, ch := range out.Channels {
		for _, s := range ch {
			if math.IsNaN(s) || math.IsInf(s, 0) {
				t.Fatalf("non-finite sample in output: %v", s)
			}
			if math.Abs(s) > maxAbs {
				maxAbs = math.Abs(s)
			}
		}
	}
	if maxAbs < 1e-4 {
		t.Errorf("output looks silent, max abs sample = %v", maxAbs)
	}
}
