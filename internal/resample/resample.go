/*
NAME
  resample.go

DESCRIPTION
  resample.go linearly resamples a float sample slice to a new
  length, used by the synchronizer's speed-correction loop to align a
  sped-up or slowed-down recording back to the embedder's chip rate.

AUTHOR
  AusOcean Engineering <engineering@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package resample linearly resamples float sample slices to a
// target length. Unlike codec/pcm's integer-ratio decimation, it
// supports any target length, since the speed ratios produced by
// sample-rate mismatch estimation are rarely clean integer fractions.
package resample

// Linear resamples x to newLen samples by linear interpolation over
// the shared normalized time axis [0,1], the same mapping as
// np.interp(linspace(0,1,newLen), linspace(0,1,len(x)), x). Only
// local interpolation accuracy is required here: the goal is
// aligning chip boundaries, not high-fidelity audio resampling.
func Linear(x []float64, newLen int) []float64 {
	oldLen := len(x)
	if newLen <= 0 || oldLen == 0 {
		return []float64{}
	}
	if oldLen == 1 {
		out := make([]float64, newLen)
		for i := range out {
			out[i] = x[0]
		}
		return out
	}

	out := make([]float64, newLen)
	for i := 0; i < newLen; i++ {
		frac := 0.0
		if newLen > 1 {
			frac = float64(i) / float64(newLen-1)
		}
		pos := frac * float64(oldLen-1)
		idx := int(pos)
		if idx >= oldLen-1 {
			out[i] = x[oldLen-1]
			continue
		}
		t := pos - float64(idx)
		out[i] = x[idx]*(1-t) + x[idx+1]*t
	}
	return out
}
