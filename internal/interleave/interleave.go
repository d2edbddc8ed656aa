/*
NAME
  interleave.go

DESCRIPTION
  interleave.go derives the fixed bit permutation applied to the
  Hamming-coded payload before chip spreading, and its inverse.

AUTHOR
  AusOcean Engineering <engineering@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package interleave derives the fixed bit permutation used to
// scatter coded payload bits across the frame before spreading, so
// that a short burst channel error does not concentrate inside a
// single Hamming block.
package interleave

import "math/rand/v2"

// Seed is the constant seed used to derive the interleave
// permutation. It is distinct from the spreading PN seed and never
// configurable: interoperability between an embedder and extractor
// requires both to derive the same permutation.
const Seed = 0xDEADBEEF

// Permutation returns a deterministic permutation of [0, n) derived
// from Seed, by repeated Fisher-Yates swaps driven by a seeded
// generator local to the call.
func Permutation(n int) []int {
	src := rand.NewPCG(Seed, Seed<<1|1)
	rng := rand.New(src)

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// Apply reorders bits according to perm: the output's i-th element is
// bits[perm[i]].
func Apply(bits []byte, perm []int) []byte {
	out := make([]byte, len(perm))
	for i, p := range perm {
		out[i] = bits[p]
	}
	return out
}

// Invert reorders bits produced by Apply back into original order.
func Invert(bits []byte, perm []int) []byte {
	out := make([]byte, len(perm))
	for i, p := range perm {
		out[p] = bits[i]
	}
	return out
}
