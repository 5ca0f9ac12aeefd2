package main

import (
	"context"
	"fmt"
	"sync"
)

// runPipeline drives the Transform -> Steering -> Temporal Averaging ->
// Synthesis pipeline over every analysis window (§4, §5). Work is split
// into two bounded-concurrency phases with a full barrier between them:
// phase one transforms and steers every window independently; phase two
// averages each window's gains against its +/-A neighbors (all already
// computed, since phase one is complete) and synthesizes. A single global
// barrier between the two phases gives the same determinism and
// thread-count invariance a rolling per-window barrier would (no window
// ever reads a neighbor's steering result before it exists), with less
// bookkeeping than tracking each window's individual ready-set.
//
// Output is always identical regardless of threads (§8 #5, #6): each
// window writes to a fixed, disjoint slot in steeredAll, and at 50% hop
// every ChannelBuffer sample receives at most two window contributions,
// whose floating-point sum starting from zero does not depend on the
// order in which they arrive.
func runPipeline(ctx context.Context, stream *StereoStream, plan *WindowPlan, cfg *Config, m metricsRecorder) (*SurroundOutput, error) {
	tp := newTransformPlan(plan.W)
	matrix := matrixByKind(cfg.Matrix)

	steeredAll := make([][]SteeredBin, plan.M)

	if err := runBounded(ctx, plan.M, cfg.Threads, func(i int) error {
		start := plan.Starts[i]
		win := tp.transform(stream, i, start)
		steeredAll[i] = steerWindow(win, plan.KMin, cfg.MinAmp, matrix)
		m.windowDone("steer")
		return nil
	}); err != nil {
		return nil, err
	}

	bufSize := stream.NumSamples() + plan.W
	bufs := newSynthesisBuffers(bufSize, cfg.Layout)
	levelScale := levelPolicyScale(cfg.centerLFEQuiet())

	if err := runBounded(ctx, plan.M, cfg.Threads, func(i int) error {
		start := plan.Starts[i]
		numBins := len(steeredAll[i])
		averaged := make([]Gains, numBins)
		for k := 0; k < numBins; k++ {
			averaged[k] = averageGains(steeredAll, i, k)
		}
		synthesizeWindow(tp, steeredAll[i], averaged, i, start, stream.SampleRate, cfg.Layout, levelScale, bufs)
		m.windowDone("synthesize")
		return nil
	}); err != nil {
		return nil, err
	}

	n := stream.NumSamples()
	weight := bufs.Weight.Samples(n)

	out := &SurroundOutput{
		Layout:     cfg.Layout,
		SampleRate: stream.SampleRate,
		Channels:   make([][]float64, cfg.Layout.ChannelCount()),
	}
	for idx, ch := range surroundChannelOrder(cfg.Layout) {
		switch ch {
		case chFL:
			out.Channels[idx] = normalizeChannel(bufs.FL.Samples(n), weight)
		case chFR:
			out.Channels[idx] = normalizeChannel(bufs.FR.Samples(n), weight)
		case chC:
			out.Channels[idx] = normalizeChannel(bufs.C.Samples(n), weight)
		case chRL:
			out.Channels[idx] = normalizeChannel(bufs.RL.Samples(n), weight)
		case chRR:
			out.Channels[idx] = normalizeChannel(bufs.RR.Samples(n), weight)
		case chLFE:
			out.Channels[idx] = normalizeChannel(bufs.LFE.Samples(n), weight)
		}
	}

	return out, nil
}

// runBounded runs fn(0..n-1) across at most `threads` goroutines at a
// time using a semaphore channel. It returns the first error encountered
// and cancels outstanding work via ctx.
func runBounded(ctx context.Context, n, threads int, fn func(i int) error) error {
	if threads < 1 {
		threads = 1
	}
	sem := make(chan struct{}, threads)
	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	for i := 0; i < n; i++ {
		select {
		case <-runCtx.Done():
			// Stop enqueueing once cancellation fires; drain what's
			// already in flight below rather than starting more (§5).
			wg.Wait()
			if firstErr != nil {
				return firstErr
			}
			return ctx.Err()
		default:
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				// A panic inside fn (e.g. a degenerate FFT call) becomes
				// this run's InternalError instead of crashing the process.
				if r := recover(); r != nil {
					once.Do(func() {
						firstErr = newInternalError("worker panic", fmt.Errorf("%v", r))
						cancel()
					})
				}
			}()

			select {
			case <-runCtx.Done():
				return
			default:
			}

			if err := fn(i); err != nil {
				once.Do(func() {
					firstErr = err
					cancel()
				})
			}
		}(i)
	}

	wg.Wait()
	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
