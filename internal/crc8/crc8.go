/*
NAME
  crc8.go

DESCRIPTION
  crc8.go implements the CRC-8 integrity check used to gate whether
  the extractor reports a watermark ID.

AUTHOR
  AusOcean Engineering <engineering@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package crc8 computes an 8-bit CRC over a byte slice.
package crc8

// Polynomial is the generator polynomial used: x^8 + x^2 + x + 1.
const Polynomial = 0x07

// Checksum computes the CRC-8 of data using Polynomial, an initial
// value of 0x00, MSB-first processing, no input reflection, and no
// final XOR.
func Checksum(data []byte) byte {
	var crc byte
	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = (crc << 1) ^ Polynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
