/*
NAME
  preemphasis.go

DESCRIPTION
  preemphasis.go implements the one-zero pre-emphasis filter applied
  in non-telecom mode to whiten narrowband hosts before correlation.

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

// PreEmphasisCoeff is the fixed coefficient of the one-zero FIR
// pre-emphasis filter y[n] = x[n] - coeff*x[n-1].
const PreEmphasisCoeff = 0.95

// PreEmphasis applies a one-zero FIR filter that attenuates low
// frequencies relative to high ones, improving the peak-to-sidelobe
// ratio of the preamble correlation on narrowband hosts.
func PreEmphasis(x []float64) []float64 {
	out := make([]float64, len(x))
	var prev float64
	for i, v := range x {
		out[i] = v - PreEmphasisCoeff*prev
		prev = v
	}
	return out
}
