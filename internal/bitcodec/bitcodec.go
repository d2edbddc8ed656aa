/*
NAME
  bitcodec.go

DESCRIPTION
  bitcodec.go converts between unsigned integers and fixed-width,
  big-endian (MSB-first) bit arrays.

AUTHOR
  AusOcean Engineering <engineering@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bitcodec converts between integers and fixed-width bit
// arrays, and between bit arrays and bytes.
package bitcodec

// FromUint converts val to a big-endian bit array of width numBits.
// Bit 0 of the result is the most significant bit of val.
func FromUint(val uint32, numBits int) []byte {
	bits := make([]byte, numBits)
	for i := 0; i < numBits; i++ {
		shift := numBits - 1 - i
		bits[i] = byte((val >> uint(shift)) & 1)
	}
	return bits
}

// ToUint converts a big-endian bit array back into an unsigned
// integer. Any non-zero value in a bit position is treated as 1.
func ToUint(bits []byte) uint32 {
	var val uint32
	for _, b := range bits {
		val <<= 1
		if b != 0 {
			val |= 1
		}
	}
	return val
}

// BytesBigEndian packs a bit array, whose length must be a multiple
// of 8, into a big-endian byte slice.
func BytesBigEndian(bits []byte) []byte {
	out := make([]byte, len(bits)/8)
	for i := range out {
		out[i] = byte(ToUint(bits[i*8 : i*8+8]))
	}
	return out
}
