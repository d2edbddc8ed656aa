/*
NAME
  watermark.go

DESCRIPTION
  watermark.go is the public entry point for this package: a
  Watermarker embeds a 28-bit identifier into a host audio signal as
  an imperceptible direct-sequence spread-spectrum watermark, and
  recovers it blind (no host reference) from a possibly degraded
  copy.

AUTHOR
  AusOcean Engineering <engineering@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package watermark implements a direct-sequence spread-spectrum
// audio watermarking core: framing, forward error correction and
// integrity, DSSS modulation, psychoacoustic shaping, preamble-based
// synchronization with speed-mismatch correction, and demodulation.
package watermark

import (
	"github.com/ausocean/utils/logging"
	"gonum.org/v1/gonum/stat"

	"github.com/ausocean/watermark/internal/bitcodec"
	"github.com/ausocean/watermark/internal/crc8"
	"github.com/ausocean/watermark/internal/fec"
	"github.com/ausocean/watermark/internal/interleave"
	"github.com/ausocean/watermark/internal/pn"
	"github.com/ausocean/watermark/internal/shape"
	dsssync "github.com/ausocean/watermark/internal/sync"
)

// Watermarker embeds and extracts watermarks under a fixed
// configuration. A Watermarker holds no mutable state between calls:
// Embed and Extract are safe to invoke concurrently from different
// goroutines provided each call's inputs are not shared.
type Watermarker struct {
	cfg  Config
	seed uint32
	perm []int
	log  Log
}

// New returns a Watermarker for cfg, with zero-valued fields defaulted
// per Config's documented defaults.
func New(cfg Config) (*Watermarker, error) {
	cfg = cfg.withDefaults()
	return &Watermarker{
		cfg:  cfg,
		seed: cfg.resolveSeed(),
		perm: interleave.Permutation(EncodedPayloadBits),
		log:  cfg.Log,
	}, nil
}

func (w *Watermarker) logf(lvl int8, msg string, args ...interface{}) {
	if w.log != nil {
		w.log(lvl, msg, args...)
	}
}

// GeneratePN returns length chips of this Watermarker's PN sequence,
// exposed for reproducibility testing: two Watermarkers built from
// equal Config values produce identical output.
func (w *Watermarker) GeneratePN(length uint32) []float64 {
	return pn.Generate(int(length), w.seed)
}

// frameLen returns the embedded frame's length in samples.
func (w *Watermarker) frameLen() int {
	return FrameBits * w.cfg.ChipRate
}

// Embed returns a copy of host with id spread-spectrum encoded into
// its first FrameBits*ChipRate samples; host beyond that point is
// unchanged. It fails with ErrInvalidID if id >= MaxID, or
// ErrHostTooShort if host is shorter than one frame.
func (w *Watermarker) Embed(host []float64, id uint32) ([]float64, error) {
	if id >= MaxID {
		return nil, ErrInvalidID
	}
	n := w.frameLen()
	if len(host) < n {
		return nil, ErrHostTooShort
	}

	frameBits, err := w.buildFrameBits(id)
	if err != nil {
		return nil, err
	}

	chips := chipExpand(frameBits, w.cfg.ChipRate)
	frameChips := w.GeneratePN(uint32(n))
	spread := make([]float64, n)
	for i := range spread {
		spread[i] = chips[i] * frameChips[i]
	}

	if w.cfg.TelecomMode {
		spread = shape.BandPass(spread, w.cfg.SampleRate, w.cfg.BandLowHz, w.cfg.BandHighHz)
	}

	hostPrefix := host[:n]
	shaped := shape.ShapeSpectrumWithFloor(spread, hostPrefix, w.cfg.SpectralFloor)
	shaped = renormalizeUnitVariance(shaped)

	mask := shape.AmplitudeMask(hostPrefix, w.cfg.MaskWindow, w.cfg.MaskDB)

	out := make([]float64, len(host))
	copy(out, host)
	for i := 0; i < n; i++ {
		out[i] += shaped[i] * mask[i]
	}

	w.logf(logging.Debug, "watermark: embedded frame", "id", id, "samples", n)
	return out, nil
}

// buildFrameBits assembles the 102-bit frame for id: preamble,
// interleaved Hamming-coded payload, trailer.
func (w *Watermarker) buildFrameBits(id uint32) ([]byte, error) {
	logical := uint32(protocolVersion)<<28 | id
	payloadBits := bitcodec.FromUint(logical, PayloadBits)
	payloadBytes := bitcodec.BytesBigEndian(payloadBits)
	checksum := crc8.Checksum(payloadBytes)
	crcBits := bitcodec.FromUint(uint32(checksum), CRCBits)

	data := make([]byte, 0, DataBits)
	data = append(data, payloadBits...)
	data = append(data, crcBits...)

	encoded, err := fec.Encode(data)
	if err != nil {
		return nil, &MalformedFECError{err: err}
	}
	interleaved := interleave.Apply(encoded, w.perm)

	frame := make([]byte, 0, FrameBits)
	frame = append(frame, preamble...)
	frame = append(frame, interleaved...)
	frame = append(frame, preamble...)
	return frame, nil
}

// ExtractOptions mirrors the extract parameters some deployments
// configure, though the synchronizer's 2-pass search loop does not
// actually consume them: it always runs a fixed 2-pass trailer search
// followed by one final refinement, regardless of these values.
type ExtractOptions struct {
	// SpeedSearch, FineSearchStep and FineSearchRange are accepted for
	// API compatibility and ignored.
	SpeedSearch     bool
	FineSearchStep  float64
	FineSearchRange float64
}

// ExtractOption configures an Extract call.
type ExtractOption func(*ExtractOptions)

// Extract attempts to recover a watermark id from audio. It returns
// the id and true on success, or 0 and false if no watermark was
// found: the final preamble correlation peak is exactly zero, the
// payload window runs past the end of (speed-corrected) audio, or the
// decoded payload fails its CRC-8 check. Extract never returns a
// fabricated id: false always means "not found", never "corrupted".
func (w *Watermarker) Extract(audio []float64, opts ...ExtractOption) (uint32, bool) {
	var o ExtractOptions
	for _, fn := range opts {
		fn(&o)
	}

	processed := w.preprocess(audio)
	reference := w.preprocess(w.referencePreamble())

	res := dsssync.Synchronize(processed, reference, dsssync.Options{
		ChipRate:           w.cfg.ChipRate,
		SampleRate:         w.cfg.SampleRate,
		PreambleBits:       PreambleBits,
		EncodedPayloadBits: EncodedPayloadBits,
		Log:                dsssync.Log(w.log),
	})

	if res.PeakMagnitude == 0 {
		w.logf(logging.Debug, "watermark: extract failed, no correlation energy")
		return 0, false
	}

	payloadStart := res.StartIndex + PreambleBits*w.cfg.ChipRate
	payloadLen := EncodedPayloadBits * w.cfg.ChipRate
	if payloadStart < 0 || payloadStart+payloadLen > len(res.Audio) {
		w.logf(logging.Debug, "watermark: extract failed, payload window out of range")
		return 0, false
	}

	payloadAudio := res.Audio[payloadStart : payloadStart+payloadLen]

	// The payload's PN chips come from the frame-local PN sequence (the
	// same one used to build the reference preamble), indexed by frame
	// position, not by final_start_index's position within audio.
	pnStart := PreambleBits * w.cfg.ChipRate
	frameChips := w.GeneratePN(uint32(pnStart + payloadLen))
	payloadPN := w.preprocess(frameChips[pnStart : pnStart+payloadLen])

	rawBits := demodulate(payloadAudio, payloadPN, res.Polarity, w.cfg.ChipRate)
	deinterleaved := interleave.Invert(rawBits, w.perm)

	decoded, err := fec.Decode(deinterleaved)
	if err != nil {
		panic(&MalformedFECError{err: err})
	}
	if len(decoded) != DataBits {
		return 0, false
	}

	payloadBits := decoded[:PayloadBits]
	crcBits := decoded[PayloadBits:]
	payloadBytes := bitcodec.BytesBigEndian(payloadBits)
	wantCRC := byte(bitcodec.ToUint(crcBits))
	gotCRC := crc8.Checksum(payloadBytes)
	if gotCRC != wantCRC {
		w.logf(logging.Debug, "watermark: extract failed, crc mismatch")
		return 0, false
	}

	logical := bitcodec.ToUint(payloadBits)
	id := logical & (MaxID - 1)
	w.logf(logging.Debug, "watermark: extracted frame", "id", id)
	return id, true
}

// referencePreamble returns the chip-expanded preamble waveform
// spread by this Watermarker's PN sequence, used as the synchronizer's
// matched-filter template.
func (w *Watermarker) referencePreamble() []float64 {
	n := PreambleBits * w.cfg.ChipRate
	chips := chipExpand(preamble, w.cfg.ChipRate)
	pnChips := w.GeneratePN(uint32(n))
	ref := make([]float64, n)
	for i := range ref {
		ref[i] = chips[i] * pnChips[i]
	}
	return ref
}

// preprocess applies this Watermarker's matched-filter pre-processing:
// band-pass plus z-score normalization in telecom mode, one-zero
// pre-emphasis otherwise. The same pre-processing must be applied to
// both the received signal and the reference waveform to keep the
// correlator matched.
func (w *Watermarker) preprocess(x []float64) []float64 {
	if w.cfg.TelecomMode {
		filtered := shape.BandPass(x, w.cfg.SampleRate, w.cfg.BandLowHz, w.cfg.BandHighHz)
		return shape.ZScoreNormalize(filtered)
	}
	return shape.PreEmphasis(x)
}

// chipExpand maps each bit b in bits to chipRate copies of the
// antipodal symbol 2b-1.
func chipExpand(bits []byte, chipRate int) []float64 {
	out := make([]float64, len(bits)*chipRate)
	for i, b := range bits {
		v := float64(2*int(b) - 1)
		for c := 0; c < chipRate; c++ {
			out[i*chipRate+c] = v
		}
	}
	return out
}

// demodulate integrates audio*chips*polarity over successive chipRate-
// sample windows, returning one bit per window.
func demodulate(audio, chips []float64, polarity float64, chipRate int) []byte {
	numBits := len(audio) / chipRate
	out := make([]byte, numBits)
	for b := 0; b < numBits; b++ {
		var sum float64
		base := b * chipRate
		for c := 0; c < chipRate; c++ {
			sum += audio[base+c] * chips[base+c] * polarity
		}
		if sum > 0 {
			out[b] = 1
		}
	}
	return out
}

// renormalizeUnitVariance scales x to unit standard deviation, leaving
// it unchanged if its standard deviation is negligible.
func renormalizeUnitVariance(x []float64) []float64 {
	std := stat.StdDev(x, nil)
	if std < 1e-9 {
		return x
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v / std
	}
	return out
}
