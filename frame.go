/*
NAME
  frame.go

DESCRIPTION
  frame.go defines the watermark frame's bit layout: the shared
  preamble/trailer pattern and the bit-width of each frame section.

AUTHOR
  AusOcean Engineering <engineering@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package watermark

// Frame section widths, in bits. A full frame is
// PreambleBits + EncodedPayloadBits + TrailerBits = 102 bits, chip
// expanded to 102*ChipRate samples.
const (
	PreambleBits       = 16
	PayloadBits        = 32 // version (4 bits) + id (28 bits)
	CRCBits            = 8
	DataBits           = PayloadBits + CRCBits // 40, pre-FEC
	EncodedPayloadBits = 70                    // DataBits Hamming(7,4)-encoded
	TrailerBits        = 16
	FrameBits          = PreambleBits + EncodedPayloadBits + TrailerBits

	// StreamFrameBits is the 86-bit streaming-frame convention:
	// preamble plus coded payload, without a trailer. StreamAdapter
	// does not use it; it buffers a full FrameBits frame, since Embed
	// always emits the full FrameBits frame.
	StreamFrameBits = PreambleBits + EncodedPayloadBits

	// MaxID is the exclusive upper bound on a valid watermark id: ids
	// occupy the low 28 bits of the 32-bit logical payload.
	MaxID = 1 << 28

	// protocolVersion occupies the top 4 bits of the logical payload.
	protocolVersion = 1
)

// preamble is the frame's fixed synchronization pattern, shared by the
// preamble and trailer: a Barker-13 sequence padded with three zero
// bits to a 16-bit boundary.
var preamble = []byte{1, 1, 1, 1, 1, 0, 0, 1, 1, 0, 1, 0, 1, 0, 0, 0}
