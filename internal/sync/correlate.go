/*
NAME
  correlate.go

DESCRIPTION
  correlate.go finds the offset within a search window at which a
  reference waveform correlates most strongly (by absolute value,
  signed), computed in the frequency domain.

AUTHOR
  AusOcean Engineering <engineering@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package sync

import (
	"math"

	"github.com/mjibson/go-dsp/fft"

	"github.com/ausocean/watermark/internal/shape"
)

// correlate returns the index and signed value of the strongest
// cross-correlation peak between x and ref, searching every offset at
// which ref fully overlaps x. It is the valid-mode cross-correlation
// sum_i x[k+i]*ref[i], computed as an FFT convolution of x against the
// time-reversed ref, the same pad/multiply/IFFT shape internal/shape's
// ShapeSpectrum uses.
func correlate(x, ref []float64) (int, float64) {
	if len(ref) == 0 || len(ref) > len(x) {
		return 0, 0
	}

	reversed := make([]float64, len(ref))
	for i, v := range ref {
		reversed[len(ref)-1-i] = v
	}

	conv := fftConvolve(x, reversed)
	validLen := len(x) - len(ref) + 1
	offset := len(ref) - 1

	peakIdx := 0
	peakVal := conv[offset]
	peakAbs := math.Abs(peakVal)
	for i := 0; i < validLen; i++ {
		v := conv[offset+i]
		if math.Abs(v) > peakAbs {
			peakAbs = math.Abs(v)
			peakVal = v
			peakIdx = i
		}
	}
	return peakIdx, peakVal
}

// fftConvolve returns the full linear convolution of x and h.
func fftConvolve(x, h []float64) []float64 {
	convLen := len(x) + len(h) - 1
	n := shape.NextPow2(convLen)

	xp := make([]float64, n)
	copy(xp, x)
	hp := make([]float64, n)
	copy(hp, h)

	xFFT := fft.FFTReal(xp)
	hFFT := fft.FFTReal(hp)

	yFFT := make([]complex128, n)
	for i := range yFFT {
		yFFT[i] = xFFT[i] * hFFT[i]
	}

	y := fft.IFFT(yFFT)
	out := make([]float64, convLen)
	for i := range out {
		out[i] = real(y[i])
	}
	return out
}
