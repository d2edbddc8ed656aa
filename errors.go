/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the error values Embed can return. Channel
  failures (no watermark found) are never errors; Extract reports
  those by returning found=false.

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

import "github.com/pkg/errors"

// ErrInvalidID is returned by Embed when id is outside [0, MaxID).
var ErrInvalidID = errors.New("watermark: id exceeds 28-bit capacity")

// ErrHostTooShort is returned by Embed when the host audio is shorter
// than one full frame (FrameBits * ChipRate samples).
var ErrHostTooShort = errors.New("watermark: host audio shorter than one frame")

// MalformedFECError wraps an internal/fec length error. It indicates a
// bug in this package, not a channel failure: every call site passes
// fixed-length slices, so it should never occur outside of a test
// exercising the boundary directly.
type MalformedFECError struct {
	err error
}

func (e *MalformedFECError) Error() string {
	return "watermark: malformed fec input: " + e.err.Error()
}

func (e *MalformedFECError) Unwrap() error { return e.err }
