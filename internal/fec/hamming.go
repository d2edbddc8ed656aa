/*
NAME
  hamming.go

DESCRIPTION
  hamming.go implements systematic Hamming(7,4) encoding and
  single-bit-correcting decoding, operating on nibble-aligned bit
  slices.

AUTHOR
  AusOcean Engineering <engineering@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package fec implements the systematic Hamming(7,4) forward error
// correction code used to protect each nibble of the watermark
// payload.
package fec

import "fmt"

// ErrLength is returned when Encode or Decode is called with an
// input whose length is not a multiple of the expected block size.
// It indicates a programming error, not a channel failure.
type ErrLength struct {
	Op       string
	Len      int
	Multiple int
}

func (e *ErrLength) Error() string {
	return fmt.Sprintf("fec: %s input length %d is not a multiple of %d", e.Op, e.Len, e.Multiple)
}

// syndromeToBit maps a 3-bit syndrome value to the index, within a
// 7-bit codeword, of the bit it indicates is in error. A syndrome of
// 0 means no error.
var syndromeToBit = map[int]int{
	1: 4,
	2: 5,
	3: 0,
	4: 6,
	5: 1,
	6: 2,
	7: 3,
}

// Encode applies systematic Hamming(7,4) to each nibble of bits,
// which must have a length that is a multiple of 4. Data bits occupy
// positions 0..3 of each output codeword; parity bits p1, p2, p3
// occupy positions 4..6:
//
//	p1 = d1 ^ d2 ^ d4
//	p2 = d1 ^ d3 ^ d4
//	p3 = d2 ^ d3 ^ d4
func Encode(bits []byte) ([]byte, error) {
	if len(bits)%4 != 0 {
		return nil, &ErrLength{Op: "encode", Len: len(bits), Multiple: 4}
	}

	out := make([]byte, 0, len(bits)/4*7)
	for i := 0; i < len(bits); i += 4 {
		d1, d2, d3, d4 := bits[i], bits[i+1], bits[i+2], bits[i+3]
		p1 := d1 ^ d2 ^ d4
		p2 := d1 ^ d3 ^ d4
		p3 := d2 ^ d3 ^ d4
		out = append(out, d1, d2, d3, d4, p1, p2, p3)
	}
	return out, nil
}

// Decode corrects at most one bit error per 7-bit block of bits,
// whose length must be a multiple of 7, and returns the first 4 data
// bits of each corrected block. Multi-bit errors within one block are
// not detected here; they rely on an outer integrity check (CRC).
func Decode(bits []byte) ([]byte, error) {
	if len(bits)%7 != 0 {
		return nil, &ErrLength{Op: "decode", Len: len(bits), Multiple: 7}
	}

	out := make([]byte, 0, len(bits)/7*4)
	for i := 0; i < len(bits); i += 7 {
		block := make([]byte, 7)
		copy(block, bits[i:i+7])

		s1 := block[0] ^ block[1] ^ block[3] ^ block[4]
		s2 := block[0] ^ block[2] ^ block[3] ^ block[5]
		s3 := block[1] ^ block[2] ^ block[3] ^ block[6]
		syndrome := int(s1) | int(s2)<<1 | int(s3)<<2

		if syndrome != 0 {
			if idx, ok := syndromeToBit[syndrome]; ok {
				block[idx] ^= 1
			}
		}

		out = append(out, block[:4]...)
	}
	return out, nil
}
