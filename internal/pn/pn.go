/*
NAME
  pn.go

DESCRIPTION
  pn.go generates the deterministic pseudo-noise chip sequence used to
  spread and despread the watermark frame.

AUTHOR
  AusOcean Engineering <engineering@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package pn generates deterministic pseudo-noise chip sequences for
// direct-sequence spread-spectrum modulation.
package pn

import "math/rand/v2"

// Generate returns a deterministic sequence of n chips, each either
// -1.0 or +1.0, derived purely from seed. Two calls with the same
// seed and length always produce identical output; the generator's
// state is local to the call and never shared, so concurrent callers
// with the same seed cannot observe each other.
func Generate(n int, seed uint32) []float64 {
	src := rand.NewPCG(uint64(seed), uint64(seed)<<32|uint64(seed)^0x9e3779b97f4a7c15)
	rng := rand.New(src)

	seq := make([]float64, n)
	for i := range seq {
		if rng.IntN(2) == 1 {
			seq[i] = 1
		} else {
			seq[i] = -1
		}
	}
	return seq
}
