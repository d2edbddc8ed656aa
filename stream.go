/*
NAME
  stream.go

DESCRIPTION
  stream.go buffers chunked audio input and embeds complete frames as
  enough samples accumulate, for callers that only have audio in small
  pieces (e.g. a live capture pipeline) rather than one long buffer.

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

// StreamAdapter buffers chunked audio and embeds one fixed id into
// each full frame's worth of samples as they accumulate, emitting
// watermarked frames downstream and retaining any leftover samples
// for the next Write.
//
// Its buffering threshold is a full frame (FrameBits*ChipRate
// samples), not the 86-bit (preamble+payload, no trailer) figure a
// streaming-frame convention might suggest: Embed always requires a
// complete 102-bit frame's worth of host samples to shape and mask
// against, so a shorter threshold would only make every embed fail.
// Frames produced this way are ordinary 102-bit frames and decode
// with the same Extract used on any other watermarked audio; there is
// no separate streaming wire format to keep compatible.
type StreamAdapter struct {
	w        *Watermarker
	id       uint32
	frameLen int
	buf      []float64
}

// NewStreamAdapter returns a StreamAdapter that embeds id into every
// full frame it accumulates from w's configuration.
func NewStreamAdapter(w *Watermarker, id uint32) *StreamAdapter {
	return &StreamAdapter{w: w, id: id, frameLen: w.frameLen()}
}

// Write appends chunk to the adapter's internal buffer and returns the
// watermarked audio for every full frame that chunk completed. The
// returned slice may be empty if chunk did not fill the buffer to a
// full frame, or may contain several embedded frames if chunk filled
// more than one.
func (a *StreamAdapter) Write(chunk []float64) ([]float64, error) {
	a.buf = append(a.buf, chunk...)

	var out []float64
	for len(a.buf) >= a.frameLen {
		frame := a.buf[:a.frameLen]
		embedded, err := a.w.Embed(frame, a.id)
		if err != nil {
			return out, err
		}
		out = append(out, embedded...)
		remainder := make([]float64, len(a.buf)-a.frameLen)
		copy(remainder, a.buf[a.frameLen:])
		a.buf = remainder
	}
	return out, nil
}

// Flush returns and clears any buffered samples that did not fill a
// full frame, unmodified, as the stream has ended.
func (a *StreamAdapter) Flush() []float64 {
	residual := a.buf
	a.buf = nil
	return residual
}
