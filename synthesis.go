package main

// synthesizeWindow combines one window's averaged gains with its own
// basis to get final per-channel bins (§4.4: "Averaging is applied before
// combining with the input bins"), derives LFE from the front sum per the
// Level Policy, runs the inverse real FFT per channel, applies the
// synthesis Hann window, and overlap-adds the result plus its
// window-squared weight into the run's shared buffers (§4.5).
func synthesizeWindow(tp *transformPlan, steered []SteeredBin, averaged []Gains, m, start int, sampleRate int, layout ChannelLayout, levelScale float64, out *synthesisBuffers) {
	w := tp.w
	finalFL := make([]complex128, len(steered))
	finalFR := make([]complex128, len(steered))
	finalC := make([]complex128, len(steered))
	finalRL := make([]complex128, len(steered))
	finalRR := make([]complex128, len(steered))

	for k, sb := range steered {
		g := averaged[k]
		finalFL[k] = g.FL * sb.Basis.FL
		finalFR[k] = g.FR * sb.Basis.FR
		finalRL[k] = g.RL * sb.Basis.RL
		finalRR[k] = g.RR * sb.Basis.RR
		if layout.HasCenter() {
			finalC[k] = g.C * sb.Basis.C * complex(levelScale, 0)
		}
	}

	synthesizeChannel(tp, finalFL, start, out.FL, out.Weight)
	synthesizeChannel(tp, finalFR, start, out.FR, nil)
	synthesizeChannel(tp, finalRL, start, out.RL, nil)
	synthesizeChannel(tp, finalRR, start, out.RR, nil)
	if layout.HasCenter() {
		synthesizeChannel(tp, finalC, start, out.C, nil)
	}
	if layout.HasLFE() {
		finalLFE := deriveLFE(finalFL, finalFR, sampleRate, w, levelScale)
		synthesizeChannel(tp, finalLFE, start, out.LFE, nil)
	}
	// Every channel uses the identical Hann shape (same tp.hann, same
	// window starts), so one weighted-overlap-add normalization envelope,
	// accumulated once per window alongside FL into out.Weight, serves all
	// of them; the caller normalizes all six channels against it.
}

// synthesizeChannel inverse-transforms one channel's bins back to a time
// domain frame, applies the synthesis Hann window, and overlap-adds both
// the windowed samples and (when weight is non-nil) the window-squared
// normalization envelope.
func synthesizeChannel(tp *transformPlan, bins []complex128, start int, buf *ChannelBuffer, weight *ChannelBuffer) {
	frame := tp.fft.Sequence(nil, bins)
	// Sequence is unnormalized (Coefficients followed by Sequence scales
	// the input by W), so the frame is scaled back by 1/W here.
	inv := 1 / float64(tp.w)
	windowed := make([]float64, tp.w)
	sq := make([]float64, tp.w)
	for i := 0; i < tp.w; i++ {
		windowed[i] = frame[i] * inv * tp.hann[i]
		sq[i] = tp.hann[i] * tp.hann[i]
	}
	buf.Add(start, windowed)
	if weight != nil {
		weight.Add(start, sq)
	}
}

// synthesisBuffers bundles the shared, concurrently-written accumulation
// buffers for a run: one ChannelBuffer per destination channel plus a
// shared weight envelope. Every channel uses the same Hann analysis and
// synthesis window, so one weight buffer normalizes all of them (§4.5).
type synthesisBuffers struct {
	FL, FR, C, RL, RR, LFE *ChannelBuffer
	Weight                 *ChannelBuffer
}

func newSynthesisBuffers(size int, layout ChannelLayout) *synthesisBuffers {
	b := &synthesisBuffers{
		FL:     newChannelBuffer(size),
		FR:     newChannelBuffer(size),
		RL:     newChannelBuffer(size),
		RR:     newChannelBuffer(size),
		Weight: newChannelBuffer(size),
	}
	if layout.HasCenter() {
		b.C = newChannelBuffer(size)
	}
	if layout.HasLFE() {
		b.LFE = newChannelBuffer(size)
	}
	return b
}

// normalizeChannel divides accumulated samples by the accumulated
// window-squared weight at each position, the standard weighted-overlap-add
// correction (§4.5). Positions with negligible coverage (the very
// first/last few samples of short files) are left unscaled rather than
// divided by near-zero.
func normalizeChannel(samples, weight []float64) []float64 {
	const floor = 1e-9
	out := make([]float64, len(samples))
	for i, s := range samples {
		wt := weight[i]
		if wt < floor {
			out[i] = s
			continue
		}
		out[i] = s / wt
	}
	return out
}
