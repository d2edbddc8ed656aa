/*
NAME
  config.go

DESCRIPTION
  config.go defines Watermarker's configuration: seed derivation,
  chip/sample rate, telecom mode, and the tunables for shaping and
  masking that spec.md's design notes call empirical rather than
  contractual.

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

import (
	"crypto/sha256"
	"encoding/binary"
)

// Default configuration values, applied by Config.withDefaults.
const (
	DefaultSeed       = 42
	DefaultChipRate   = 256
	DefaultSampleRate = 44100
	DefaultMaskWindow = 1024

	// DefaultMaskDB and DefaultTelecomMaskDB are the amplitude-mask
	// levels (in dB) used in standard and telecom mode respectively.
	DefaultMaskDB        = -25.0
	DefaultTelecomMaskDB = -15.0

	// DefaultBandLowHz and DefaultBandHighHz bound the telecom-mode
	// band-pass filter.
	DefaultBandLowHz  = 500.0
	DefaultBandHighHz = 3000.0

	// DefaultSpectralFloor is the minimum normalized spectral envelope
	// value used by the spectral-shaping stage.
	DefaultSpectralFloor = 0.2
)

// Log matches the injectable leveled-logger signature used elsewhere
// in the AusOcean stack (github.com/ausocean/utils/logging.Logger
// callers commonly bind a method value to this shape). A nil Log
// disables logging.
type Log func(lvl int8, msg string, args ...interface{})

// Config configures a Watermarker. The zero value is valid: all
// fields default per the constants above.
type Config struct {
	// Seed explicitly sets the PN and reference-waveform seed,
	// overriding Key. A nil Seed falls through to Key, then to
	// DefaultSeed.
	Seed *uint32

	// Key derives the seed as the first 4 big-endian bytes of
	// SHA-256(Key), when Seed is nil.
	Key string

	// ChipRate is the number of PN chips per frame bit. Default 256;
	// 512 is more robust to noise and filtering at the cost of a
	// longer frame.
	ChipRate int

	// SampleRate is the host audio's sample rate in Hz, used to size
	// the synchronizer's coarse search window.
	SampleRate int

	// TelecomMode switches from pre-emphasis to band-pass filtering
	// (500-3000 Hz by default) and raises the default amplitude-mask
	// level from DefaultMaskDB to DefaultTelecomMaskDB, modeling
	// a telephony-bandwidth channel.
	TelecomMode bool

	// MaskWindow is the RMS envelope's moving-average window length in
	// samples. Default 1024.
	MaskWindow int

	// MaskDB overrides the amplitude-mask level in dB. Zero means use
	// DefaultTelecomMaskDB or DefaultMaskDB depending on TelecomMode.
	MaskDB float64

	// BandLowHz and BandHighHz override the telecom-mode band-pass
	// edges. Zero means use DefaultBandLowHz / DefaultBandHighHz.
	BandLowHz, BandHighHz float64

	// SpectralFloor overrides the spectral-shaping envelope's minimum
	// normalized value. Zero means use DefaultSpectralFloor.
	SpectralFloor float64

	// Log, if set, receives debug traces from the synchronizer's
	// multi-pass search loop.
	Log Log
}

// withDefaults returns a copy of c with zero-valued fields replaced
// by their documented defaults, the same normalize-on-copy shape
// revid/config.Config's Validate pass uses.
func (c Config) withDefaults() Config {
	if c.ChipRate <= 0 {
		c.ChipRate = DefaultChipRate
	}
	if c.SampleRate <= 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.MaskWindow <= 0 {
		c.MaskWindow = DefaultMaskWindow
	}
	if c.MaskDB == 0 {
		if c.TelecomMode {
			c.MaskDB = DefaultTelecomMaskDB
		} else {
			c.MaskDB = DefaultMaskDB
		}
	}
	if c.BandLowHz <= 0 {
		c.BandLowHz = DefaultBandLowHz
	}
	if c.BandHighHz <= 0 {
		c.BandHighHz = DefaultBandHighHz
	}
	if c.SpectralFloor <= 0 {
		c.SpectralFloor = DefaultSpectralFloor
	}
	return c
}

// resolveSeed returns the 32-bit PN seed per the priority order:
// explicit Seed, then SHA-256(Key)'s first 4 bytes, then DefaultSeed.
func (c Config) resolveSeed() uint32 {
	if c.Seed != nil {
		return *c.Seed
	}
	if c.Key != "" {
		sum := sha256.Sum256([]byte(c.Key))
		return binary.BigEndian.Uint32(sum[:4])
	}
	return DefaultSeed
}
