// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package nibblelink implements a half-duplex, point-to-point link layer
// over a 4-bit parallel I/O cable.
//
// Each endpoint can only read and write one nibble (four bits) at a time on
// a shared pinset. The cable carries no clock signal and both endpoints
// poll the line independently, so a receiver can only perceive a new
// symbol by observing a *transition*: a repeated nibble value is
// indistinguishable from an idle line. nibblelink turns an arbitrary byte
// stream into a transition-rich nibble stream on send, and reassembles it
// into frames on receive.
//
// Semantics and design:
//   - Framing: bytes are escape-doubled (Escaper), packed into fixed-size
//     Frames (EncodeFrame), and serialised into a nibble stream that
//     guarantees every adjacent pair of emitted nibbles differs
//     (OutputStream). The receive side runs a sliding 4-nibble window
//     decoder (InputStream) that recognises control codes and reassembles
//     frames.
//   - Non-blocking first: a Device's Read may return iox.ErrWouldBlock to
//     mean "line unchanged, nothing new yet". Connection.Poll treats that
//     the same as an unobserved transition and keeps going.
//   - No hidden threads: one Connection drives one Device, stepping both
//     streams once per Poll call. Pacing (the inter-tick sleep that sets
//     the effective symbol rate) is the caller's responsibility.
package nibblelink

// Frame layout constants. FrameDataLen and ChecksumLen are the protocol's
// tunable constants; ChecksumLen is an extension point reserved for a
// future checksum algorithm and is zero in this implementation (see the
// doc.go entry in DESIGN.md).
const (
	FrameDataLen = 64
	ChecksumLen  = 0

	// FrameLen is the total wire size of one frame:
	// [SOF] [data x FrameDataLen] [checksum x ChecksumLen] [EOF].
	FrameLen = 1 + FrameDataLen + ChecksumLen + 1
)

// Frame is a fixed-size frame payload: frame[0] is always SOF,
// frame[FrameLen-1] is always EOF. Kept as a value type (not a slice) so
// frames can be copied on the stack, matching the hot-path-allocation-free
// posture of the rest of the package.
type Frame [FrameLen]byte
