/*
NAME
  sync.go

DESCRIPTION
  sync.go locates the preamble of an embedded watermark frame inside a
  possibly speed-shifted recording, estimating and correcting for
  sample-rate mismatch via the trailer before handing a caller back an
  aligned start index and demodulation polarity.

AUTHOR
  AusOcean Engineering <engineering@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package sync locates a watermark frame's preamble in a recording
// and corrects for sample-rate drift between the embedding and
// extraction sample clocks, using the frame's trailer as a second
// timing reference.
package sync

import (
	"math"

	"github.com/ausocean/watermark/internal/resample"
)

// Log matches the injectable leveled-logger signature used throughout
// this module, so callers can wire in github.com/ausocean/utils/logging.
type Log func(lvl int8, msg string, args ...interface{})

// debugLevel is github.com/ausocean/utils/logging.Debug's value,
// duplicated here so this package has no hard dependency on logging
// beyond the function type above.
const debugLevel = int8(-1)

// Options configures a Synchronize call.
type Options struct {
	ChipRate           int
	SampleRate         int
	PreambleBits       int
	EncodedPayloadBits int
	Log                Log
}

// Result is the outcome of a Synchronize call: the (possibly
// resampled) audio the caller should demodulate against, the sample
// index its preamble starts at, the polarity (+1 or -1) the preamble
// correlated with, and the magnitude of that final correlation peak.
// A zero PeakMagnitude means audio carried no correlation energy
// against referencePreamble at all (e.g. silence never watermarked),
// and callers should treat that as "no watermark found" without
// proceeding to demodulation.
type Result struct {
	Audio         []float64
	StartIndex    int
	Polarity      float64
	PeakMagnitude float64
}

// Synchronize locates referencePreamble inside audio, estimates
// sample-rate drift from the frame's trailer (assumed identical to
// referencePreamble), and iteratively resamples audio to correct for
// it. referencePreamble must already have been through the same
// preprocessing (band-pass or pre-emphasis) as audio.
func Synchronize(audio, referencePreamble []float64, opts Options) Result {
	preambleLen := opts.PreambleBits * opts.ChipRate
	nominalDist := (opts.PreambleBits + opts.EncodedPayloadBits) * opts.ChipRate

	searchLen := 2*preambleLen + 2*opts.SampleRate
	if searchLen > len(audio) {
		searchLen = len(audio)
	}

	startIdx, startVal := correlate(audio[:searchLen], referencePreamble)
	polarity := sign(startVal)
	peakVal := startVal

	current := audio
	totalSpeed := 1.0
	finalStartIdx := startIdx

	for pass := 0; pass < 2; pass++ {
		sIdx := startIdx
		if pass > 0 {
			expected := int(float64(startIdx) * totalSpeed)
			const radius = 2048
			sStart := clamp(expected-radius, 0, len(current))
			sEnd := clamp(expected+radius+preambleLen, 0, len(current))
			if sEnd > sStart+len(referencePreamble) {
				rel, val := correlate(current[sStart:sEnd], referencePreamble)
				sIdx = sStart + rel
				polarity = sign(val)
				peakVal = val
			}
		}
		finalStartIdx = sIdx

		searchRef := referencePreamble
		refOffset := 0
		radiusFrac := 0.1
		if pass == 0 {
			mid := len(searchRef) / 2
			half := len(searchRef) / 4
			searchRef = referencePreamble[mid-half : mid+half]
			refOffset = mid - half
		} else {
			radiusFrac = 0.01
		}

		radius := int(float64(nominalDist) * radiusFrac)
		expectedTrailer := sIdx + nominalDist
		tStart := clamp(expectedTrailer-radius, 0, len(current))
		tEnd := clamp(expectedTrailer+radius+preambleLen, 0, len(current))

		passSpeed := 1.0
		if tEnd > tStart+len(searchRef) {
			rel, tVal := correlate(current[tStart:tEnd], searchRef)
			if math.Abs(tVal) > math.Abs(startVal)*0.1 {
				trailerIdx := tStart + rel - refOffset
				actualDist := trailerIdx - sIdx
				if actualDist != 0 {
					passSpeed = float64(nominalDist) / float64(actualDist)
				}
				if opts.Log != nil {
					opts.Log(debugLevel, "sync: trailer speed estimate", "pass", pass, "speed", passSpeed)
				}
			}
		}

		if math.Abs(passSpeed-1.0) < 1e-4 {
			break
		}

		newLen := int(math.Round(float64(len(current)) * passSpeed))
		current = resample.Linear(current, newLen)
		totalSpeed *= passSpeed
	}

	predicted := int(float64(startIdx) * totalSpeed)
	const finalRadius = 1024
	fStart := clamp(predicted-finalRadius, 0, len(current))
	fEnd := clamp(predicted+finalRadius+preambleLen, 0, len(current))
	if fEnd > fStart+len(referencePreamble) {
		rel, val := correlate(current[fStart:fEnd], referencePreamble)
		finalStartIdx = fStart + rel
		polarity = sign(val)
		peakVal = val
	}

	if opts.Log != nil {
		opts.Log(debugLevel, "sync: final alignment", "start_index", finalStartIdx, "polarity", polarity, "total_speed", totalSpeed)
	}

	return Result{Audio: current, StartIndex: finalStartIdx, Polarity: polarity, PeakMagnitude: math.Abs(peakVal)}
}

// sign returns the polarity convention used throughout this package:
// strictly positive values are +1, everything else (including zero)
// is -1.
func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	return -1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
