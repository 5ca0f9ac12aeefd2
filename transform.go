package main

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// Window holds one analysis window's complex spectra, indexed over the
// real-input half-spectrum [0, W/2] (§3, §4.2). Bin 0 (DC) and bin W/2
// (Nyquist) are present and pure real, matching the real-FFT convention.
type Window struct {
	Index int
	Start int
	SL    []complex128
	SR    []complex128
}

// transformPlan bundles the FFT instance and analysis window shared by
// every Transform Stage call for a run; read-only, shared across workers.
type transformPlan struct {
	w    int
	fft  *fourier.FFT
	hann []float64
}

// newTransformPlan builds the shared FFT plan and analysis/synthesis
// window for a run. Unity-gain overlap-add isn't assumed to hold exactly
// for every window size; synthesis instead normalizes by the actual
// accumulated window-squared weight at each sample (see synthesis.go),
// which is correct regardless of how close this Hann window comes to
// perfect constant-overlap-add at 50% hop (§4.5).
func newTransformPlan(w int) *transformPlan {
	return &transformPlan{
		w:    w,
		fft:  fourier.NewFFT(w),
		hann: hannWindow(w),
	}
}

// transformWindow extracts samples [start, start+W) from a channel (zero
// padding past the stream end), applies the Hann analysis window, and
// computes the forward real FFT (§4.2).
func (tp *transformPlan) transformWindow(samples []float64, start int) []complex128 {
	frame := make([]float64, tp.w)
	n := len(samples)
	for i := 0; i < tp.w; i++ {
		s := start + i
		if s >= 0 && s < n {
			frame[i] = samples[s] * tp.hann[i]
		}
	}
	return tp.fft.Coefficients(nil, frame)
}

// transform runs the Transform Stage for one window index over both
// channels of a stream.
func (tp *transformPlan) transform(stream *StereoStream, m, start int) *Window {
	return &Window{
		Index: m,
		Start: start,
		SL:    tp.transformWindow(stream.L, start),
		SR:    tp.transformWindow(stream.R, start),
	}
}
