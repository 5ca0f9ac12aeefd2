// Command surroundup upmixes a stereo WAV recording into a 4.0, 5.0, or
// 5.1 surround layout by analyzing amplitude panning and inter-channel
// phase per frequency bin across short-time windows, then redistributing
// each bin's energy across the destination channels with a selectable
// decoder matrix.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"
)

func main() {
	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		log.Printf("[surroundup] %v", err)
		os.Exit(exitCodeFor(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Printf("[surroundup] %v", err)
		os.Exit(exitCodeFor(err))
	}
}

// run executes one end-to-end pass: parse -> read -> plan -> pipeline ->
// write. It returns a typed error so main can map it to the right exit
// code (§6, §7).
func run(ctx context.Context, cfg *Config) error {
	plan, err := resolvePlan(cfg)
	if err != nil {
		return err
	}

	if cfg.DryRun {
		printDryRun(cfg, plan)
		return nil
	}

	stream, err := readWAV(cfg.InputPath)
	if err != nil {
		return err
	}

	// planWindows needed the sample rate, which we only have after
	// reading the file, so resolvePlan's result above only validated the
	// config-only pieces (matrix/layout/flags); the real plan is built now.
	realPlan, err := planWindows(stream.SampleRate, cfg.LowHz, stream.NumSamples())
	if err != nil {
		return err
	}

	wake := acquireKeepAwake(cfg.KeepAwake)
	defer wake.release()

	var rec metricsRecorder = noopMetrics{}
	if cfg.MetricsAddr != "" {
		rm := newRunMetrics()
		serveMetrics(ctx, cfg.MetricsAddr)
		rec = rm
	}

	start := time.Now()
	out, err := runPipeline(ctx, stream, realPlan, cfg, rec)
	if err != nil {
		return err
	}

	if err := writeSurroundWAV(cfg.OutputPath, out); err != nil {
		return err
	}

	log.Printf("[surroundup] wrote %s: layout=%s matrix=%s windows=%d samples=%d elapsed=%s",
		cfg.OutputPath, cfg.Layout, cfg.Matrix, realPlan.M, out.NumSamples(), time.Since(start).Round(time.Millisecond))

	return nil
}

// resolvePlan validates what can be validated before the input file is
// opened; -dry-run stops here deliberately so it never touches disk (§6).
func resolvePlan(cfg *Config) (*WindowPlan, error) {
	// A representative plan for -dry-run: without a real file we don't
	// know the true sample rate, so report the geometry at a common
	// 48kHz rate purely as a preview of W/H/kMin the real run would use
	// at that rate.
	const previewSampleRate = 48000
	return planWindows(previewSampleRate, cfg.LowHz, previewSampleRate*10)
}

func printDryRun(cfg *Config, plan *WindowPlan) {
	fmt.Printf("matrix=%s channels=%s minimum=%g low=%g threads=%d keepawake=%v\n",
		cfg.Matrix, cfg.Layout, cfg.MinAmp, cfg.LowHz, cfg.Threads, cfg.KeepAwake)
	fmt.Printf("preview window plan at %d Hz: W=%d H=%d kMin=%d\n", 48000, plan.W, plan.H, plan.KMin)
}
