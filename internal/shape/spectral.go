/*
NAME
  spectral.go

DESCRIPTION
  spectral.go shapes the spread-spectrum watermark's frequency
  envelope to follow the host's spectral envelope, so the watermark's
  energy concentrates under the host's spectral peaks rather than
  standing out in spectral valleys.

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

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// SpectralFloor is the minimum normalized spectral envelope value,
// preserving DSSS processing gain even on strongly tonal hosts.
const SpectralFloor = 0.2

// ShapeSpectrum multiplies noise's spectrum by host's smoothed,
// peak-normalized magnitude spectrum, so the watermark's energy
// follows the host's spectral envelope. noise and host must be the
// same length; if not, noise is returned unchanged.
//
// This uses the same FFT-pad/multiply/IFFT pattern as the FFT
// convolution in internal/sync's correlator, computed over the
// full complex spectrum rather than a real-only half spectrum, since
// the underlying FFT library exposes only a full complex transform.
func ShapeSpectrum(noise, host []float64) []float64 {
	return ShapeSpectrumWithFloor(noise, host, SpectralFloor)
}

// ShapeSpectrumWithFloor behaves like ShapeSpectrum but with a
// caller-supplied spectral floor in place of the package default,
// letting Config.SpectralFloor override the empirical 0.2 constant.
func ShapeSpectrumWithFloor(noise, host []float64, floor float64) []float64 {
	if len(noise) != len(host) {
		return noise
	}
	n := len(host)
	nFFT := NextPow2(n)

	hostFFT := fft.FFTReal(padTo(host, nFFT))
	noiseFFT := fft.FFTReal(padTo(noise, nFFT))

	half := nFFT/2 + 1
	mag := make([]float64, half)
	for i := 0; i < half; i++ {
		mag[i] = cmplx.Abs(hostFFT[i])
	}

	window := nFFT / 64
	if window < 1 {
		window = 1
	}
	envelope := movingAverageClamped(mag, window)

	peak := 0.0
	for _, v := range envelope {
		if v > peak {
			peak = v
		}
	}
	if peak > 1e-9 {
		for i := range envelope {
			envelope[i] /= peak
		}
	}
	for i := range envelope {
		if envelope[i] < floor {
			envelope[i] = floor
		}
	}

	shapedFFT := make([]complex128, nFFT)
	for i := 0; i < half; i++ {
		shapedFFT[i] = noiseFFT[i] * complex(envelope[i], 0)
	}
	for i := half; i < nFFT; i++ {
		mirror := nFFT - i
		shapedFFT[i] = noiseFFT[i] * complex(envelope[mirror], 0)
	}

	shaped := fft.IFFT(shapedFFT)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = real(shaped[i])
	}
	return out
}

// NextPow2 returns the smallest power of two that is >= n.
func NextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// padTo zero-pads x to length n, copying x unchanged if already that
// length or longer.
func padTo(x []float64, n int) []float64 {
	if len(x) >= n {
		return x
	}
	out := make([]float64, n)
	copy(out, x)
	return out
}

// movingAverageClamped smooths x with a centered moving average,
// extending x's edge values outward rather than zero-padding. This
// approximates scipy.ndimage.uniform_filter1d's default reflect
// boundary, appropriate for smoothing a magnitude spectrum where
// zero-padding would bias the envelope down near DC and Nyquist.
func movingAverageClamped(x []float64, window int) []float64 {
	n := len(x)
	if n == 0 {
		return x
	}
	prefix := make([]float64, n+1)
	for i, v := range x {
		prefix[i+1] = prefix[i] + v
	}

	offset := (window - 1) / 2
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		start := i - (window - 1) + offset
		end := i + offset

		cstart, cend := start, end
		if cstart < 0 {
			cstart = 0
		}
		if cend > n-1 {
			cend = n - 1
		}

		sum := prefix[cend+1] - prefix[cstart]
		leftPad := cstart - start
		rightPad := end - cend
		sum += float64(leftPad) * x[0]
		sum += float64(rightPad) * x[n-1]

		out[i] = sum / float64(window)
	}
	return out
}
