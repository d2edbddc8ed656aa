/*
NAME
  bandpass.go

DESCRIPTION
  bandpass.go implements a causal, direct-form Butterworth band-pass
  filter built from a cascade of RBJ cookbook biquad sections, used to
  band-limit the watermark to a telephony-like passband.

AUTHOR
  AusOcean Engineering <engineering@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package shape

import "math"

// biquad implements a second-order IIR (biquad) digital filter in
// direct form I.
type biquad struct {
	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     float64
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2 = f.x1
	f.x1 = x
	f.y2 = f.y1
	f.y1 = y
	return y
}

// lowpassBiquad returns coefficients for a 2nd-order Butterworth
// lowpass filter using the Audio EQ Cookbook formulas, Q = 1/sqrt(2)
// for a maximally-flat passband.
func lowpassBiquad(sampleRate int, cutoffHz float64) biquad {
	w0 := 2 * math.Pi * cutoffHz / float64(sampleRate)
	sinW0, cosW0 := math.Sin(w0), math.Cos(w0)
	alpha := sinW0 / math.Sqrt2

	b1 := 1 - cosW0
	b0 := b1 / 2
	a0 := 1 + alpha

	return biquad{
		b0: b0 / a0,
		b1: b1 / a0,
		b2: b0 / a0,
		a1: (-2 * cosW0) / a0,
		a2: (1 - alpha) / a0,
	}
}

// highpassBiquad returns coefficients for a 2nd-order Butterworth
// highpass filter using the Audio EQ Cookbook formulas.
func highpassBiquad(sampleRate int, cutoffHz float64) biquad {
	w0 := 2 * math.Pi * cutoffHz / float64(sampleRate)
	sinW0, cosW0 := math.Sin(w0), math.Cos(w0)
	alpha := sinW0 / math.Sqrt2

	b1 := -(1 + cosW0)
	b0 := -b1 / 2
	a0 := 1 + alpha

	return biquad{
		b0: b0 / a0,
		b1: b1 / a0,
		b2: b0 / a0,
		a1: (-2 * cosW0) / a0,
		a2: (1 - alpha) / a0,
	}
}

// BandPass band-limits x to [lowHz, highHz] by cascading a highpass
// section at lowHz with a lowpass section at highHz, each a
// 2nd-order Butterworth biquad. The filter is causal and applied in a
// single forward pass, matching scipy.signal.lfilter's behaviour on
// the original reference implementation.
func BandPass(x []float64, sampleRate int, lowHz, highHz float64) []float64 {
	hp := highpassBiquad(sampleRate, lowHz)
	lp := lowpassBiquad(sampleRate, highHz)

	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = lp.process(hp.process(v))
	}
	return out
}
