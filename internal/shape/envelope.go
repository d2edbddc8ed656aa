/*
NAME
  envelope.go

DESCRIPTION
  envelope.go computes the RMS amplitude-masking envelope used to
  keep the injected watermark below the host's local signal level,
  and the z-score normalization used at extraction to defeat AGC.

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
	"math"

	"gonum.org/v1/gonum/stat"
)

// envelopeFloor is the minimum envelope value, avoiding division by
// (near) zero on silent hosts.
const envelopeFloor = 1e-9

// AmplitudeMask returns the amplitude envelope the spread watermark
// is scaled by before injection: the square root of the windowed
// moving average of audio's squared samples, floored at envelopeFloor
// and scaled by 10^(dB/20).
func AmplitudeMask(audio []float64, window int, dB float64) []float64 {
	squared := make([]float64, len(audio))
	for i, v := range audio {
		squared[i] = v * v
	}
	avg := movingAverageZeroPad(squared, window)

	scale := math.Pow(10, dB/20.0)
	mask := make([]float64, len(audio))
	for i, v := range avg {
		env := math.Sqrt(v)
		if env < envelopeFloor {
			env = envelopeFloor
		}
		mask[i] = env * scale
	}
	return mask
}

// ZScoreNormalize subtracts the mean of x and divides by its standard
// deviation, leaving just the mean subtracted if the standard
// deviation is below 1e-9. This removes the effect of an upstream
// automatic gain control stage before synchronization.
func ZScoreNormalize(x []float64) []float64 {
	if len(x) == 0 {
		return x
	}
	mean := stat.Mean(x, nil)
	std := stat.StdDev(x, nil)

	out := make([]float64, len(x))
	if std < 1e-9 {
		for i, v := range x {
			out[i] = v - mean
		}
		return out
	}
	for i, v := range x {
		out[i] = (v - mean) / std
	}
	return out
}

// movingAverageZeroPad computes a centered moving average of x with
// the given window length, treating samples outside x's bounds as
// zero. This matches the "same"-mode convolution of x against a
// uniform kernel of ones(window)/window.
func movingAverageZeroPad(x []float64, window int) []float64 {
	n := len(x)
	prefix := make([]float64, n+1)
	for i, v := range x {
		prefix[i+1] = prefix[i] + v
	}

	offset := (window - 1) / 2
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		start := i - (window - 1) + offset
		end := i + offset
		if start < 0 {
			start = 0
		}
		if end > n-1 {
			end = n - 1
		}
		var sum float64
		if start <= end {
			sum = prefix[end+1] - prefix[start]
		}
		out[i] = sum / float64(window)
	}
	return out
}
