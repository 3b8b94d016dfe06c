// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nibblelink

import "io"

// Escaper doubles every reserved control byte read from src so that, once
// packed into a frame, a literal data byte equal to a control value can
// never be mistaken for the control code itself. Bytes that are not
// reserved pass through unchanged.
//
// Escaper implements io.ByteReader and is meant to sit directly in front
// of EncodeFrame.
type Escaper struct {
	src  io.ByteReader
	held bool
	next byte
	done bool
}

// NewEscaper wraps src. src is read lazily, one byte at a time.
func NewEscaper(src io.ByteReader) *Escaper {
	return &Escaper{src: src}
}

// Done reports whether src has yielded io.EOF.
func (e *Escaper) Done() bool { return e.done }

// ReadByte returns the next byte of the escaped stream.
func (e *Escaper) ReadByte() (byte, error) {
	if e.held {
		e.held = false
		return e.next, nil
	}
	b, err := e.src.ReadByte()
	if err != nil {
		if err == io.EOF {
			e.done = true
		}
		return 0, err
	}
	if _, ok := EscapeCodeFromByte(b); ok {
		e.held = true
		e.next = b
	}
	return b, nil
}
