package main

import (
	"context"
	"math"
	"testing"
)

// TestSilenceProducesSilence exercises the full pipeline on a silent input
// and checks every output channel stays at (numerically) zero, i.e.
// overlap-add introduces no spurious energy on its own.
func TestSilenceProducesSilence(t *testing.T) {
	sampleRate := 48000
	n := sampleRate / 4
	stream := &StereoStream{SampleRate: sampleRate, BitDepth: 32, L: make([]float64, n), R: make([]float64, n)}

	plan, err := planWindows(sampleRate, 20, n)
	if err != nil {
		t.Fatalf("planWindows: %v", err)
	}
	cfg := &Config{Matrix: MatrixDefault, Layout: Layout5_1, MinAmp: 0.01, LowHz: 20, Threads: 2}

	out, err := runPipeline(context.Background(), stream, plan, cfg, noopMetrics{})
	if err != nil {
		t.Fatalf("runPipeline: %v", err)
	}
	for c, ch := range out.Channels {
		for i, s := range ch {
			if math.Abs(s) > 1e-9 {
				t.Fatalf("channel %d sample %d = %v, want silence", c, i, s)
			}
		}
	}
}

// TestMonoPassthroughStaysFront checks that identical L/R content (phi=0,
// pan=0 everywhere) under the default matrix reaches FL/FR and never the
// rear channels, matching a phantom-mono source staying a front image
// rather than being smeared to the rear.
func TestMonoPassthroughStaysFront(t *testing.T) {
	sampleRate := 48000
	n := sampleRate / 2
	mono := make([]float64, n)
	for i := range mono {
		mono[i] = 0.5 * math.Sin(2*math.Pi*300*float64(i)/float64(sampleRate))
	}
	stream := &StereoStream{SampleRate: sampleRate, BitDepth: 32, L: append([]float64(nil), mono...), R: append([]float64(nil), mono...)}

	plan, err := planWindows(sampleRate, 20, n)
	if err != nil {
		t.Fatalf("planWindows: %v", err)
	}
	cfg := &Config{Matrix: MatrixDefault, Layout: Layout5_1, MinAmp: 0.01, LowHz: 20, Threads: 2}

	out, err := runPipeline(context.Background(), stream, plan, cfg, noopMetrics{})
	if err != nil {
		t.Fatalf("runPipeline: %v", err)
	}

	rlIdx, rrIdx := 4, 5 // FL, FR, C, LFE, RL, RR for 5.1
	maxRear := 0.0
	for _, idx := range []int{rlIdx, rrIdx} {
		for _, s := range out.Channels[idx] {
			if math.Abs(s) > maxRear {
				maxRear = math.Abs(s)
			}
		}
	}
	maxFront := 0.0
	for _, idx := range []int{0, 1} {
		for _, s := range out.Channels[idx] {
			if math.Abs(s) > maxFront {
				maxFront = math.Abs(s)
			}
		}
	}
	if maxFront < 0.1 {
		t.Fatalf("front channels look silent for a mono source: max=%v", maxFront)
	}
	if maxRear > 1e-6 {
		t.Errorf("mono in-phase content leaked into rear channels: max=%v", maxRear)
	}
}

// TestLoudQuietContract checks §4.7/§8's quantified loud/quiet property for
// 5.1: -loud scales C and LFE by exactly sqrt(2) relative to the default
// (quiet) run, leaving every other channel identical (to within 1e-9).
func TestLoudQuietContract(t *testing.T) {
	sampleRate := 48000
	n := sampleRate / 2
	stream := syntheticStream(n, sampleRate)

	plan, err := planWindows(sampleRate, 20, n)
	if err != nil {
		t.Fatalf("planWindows: %v", err)
	}

	quietCfg := &Config{Matrix: MatrixDefault, Layout: Layout5_1, MinAmp: 0.01, LowHz: 20, Threads: 2}
	loudCfg := &Config{Matrix: MatrixDefault, Layout: Layout5_1, MinAmp: 0.01, LowHz: 20, Threads: 2, Loud: true}

	quiet, err := runPipeline(context.Background(), stream, plan, quietCfg, noopMetrics{})
	if err != nil {
		t.Fatalf("runPipeline (quiet): %v", err)
	}
	loud, err := runPipeline(context.Background(), stream, plan, loudCfg, noopMetrics{})
	if err != nil {
		t.Fatalf("runPipeline (loud): %v", err)
	}

	// FL, FR, C, LFE, RL, RR for 5.1.
	const flIdx, frIdx, cIdx, lfeIdx, rlIdx, rrIdx = 0, 1, 2, 3, 4, 5

	for _, idx := range []int{flIdx, frIdx, rlIdx, rrIdx} {
		for i := range quiet.Channels[idx] {
			if math.Abs(quiet.Channels[idx][i]-loud.Channels[idx][i]) > 1e-9 {
				t.Fatalf("channel %d sample %d differs between loud and quiet: %v vs %v", idx, i, quiet.Channels[idx][i], loud.Channels[idx][i])
			}
		}
	}

	for _, idx := range []int{cIdx, lfeIdx} {
		for i := range quiet.Channels[idx] {
			q, l := quiet.Channels[idx][i], loud.Channels[idx][i]
			if math.Abs(q) < 1e-6 {
				continue
			}
			if math.Abs(l-q*math.Sqrt2) > 1e-6*math.Max(1, math.Abs(l)) {
				t.Fatalf("channel %d sample %d: loud = %v, want quiet*sqrt(2) = %v", idx, i, l, q*math.Sqrt2)
			}
		}
	}
}
