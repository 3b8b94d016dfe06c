// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nibblelink

import (
	"go.uber.org/zap"

	"code.hybscloud.com/nibblelink/internal/nib"
)

type outputState uint8

const (
	outputWaitingForFrame outputState = iota
	outputWritingFrame
)

// OutputStream serialises one Frame at a time into a nibble stream that
// never repeats a value on two consecutive calls to Next, so an
// edge-triggered peer can always perceive every emitted symbol.
type OutputStream struct {
	log   *zap.Logger
	state outputState

	frame     Frame
	index     int  // next frame nibble to read, in nibbles (0..FrameLen*2)
	frameDone bool // index has reached the end; waiting for pending to drain

	pending []byte // nibbles already decided, not yet returned by Next
	last    byte
	hasLast bool

	idleHigh bool // idle alternation toggle: true emits 0xF next, false emits 0x0
}

// NewOutputStream returns a stream in WaitingForFrame, emitting the idle
// pattern until SendFrame is called.
func NewOutputStream(opts ...Option) *OutputStream {
	o := buildOptions(opts...)
	return &OutputStream{log: o.Logger, idleHigh: true}
}

// SendFrame arms f for transmission and resets the nibble index.
func (o *OutputStream) SendFrame(f Frame) {
	o.state = outputWritingFrame
	o.frame = f
	o.index = 0
	o.frameDone = false
	o.pending = o.pending[:0]
	o.log.Debug("output: send frame")
}

// ResendFrame resets the nibble index without discarding the armed frame.
func (o *OutputStream) ResendFrame() {
	o.state = outputWritingFrame
	o.index = 0
	o.frameDone = false
	o.pending = o.pending[:0]
	o.log.Debug("output: resend frame")
}

// Next returns the next nibble to place on the wire. It never blocks and
// never returns the same value it returned on the previous call.
func (o *OutputStream) Next() byte {
	if len(o.pending) == 0 {
		o.fill()
	}
	nibble := o.pending[0]
	o.pending = o.pending[1:]
	o.last, o.hasLast = nibble, true
	if o.frameDone && len(o.pending) == 0 {
		o.frameDone = false
		o.state = outputWaitingForFrame
	}
	return nibble
}

// Idle reports whether the stream has fully drained the armed frame
// (including any trailing Buffer filler) and is back to emitting the idle
// pattern.
func (o *OutputStream) Idle() bool { return o.state == outputWaitingForFrame }

// fill appends at least one nibble to the pending queue: either the next
// idle symbol, or the next frame nibble (with a Buffer escape inserted
// ahead of it if it would collide with the nibble last returned).
func (o *OutputStream) fill() {
	if o.state == outputWaitingForFrame {
		var nibble byte
		if o.idleHigh {
			nibble = 0xf
		} else {
			nibble = 0x0
		}
		o.idleHigh = !o.idleHigh
		o.pending = append(o.pending, nibble)
		return
	}

	nibble := frameNibble(&o.frame, o.index)
	o.index++

	if o.hasLast && nibble == o.last {
		o.insertBuffer(nibble)
	}
	o.pending = append(o.pending, nibble)

	if o.index >= FrameLen*2 {
		o.frameDone = true
	}
}

// insertBuffer queues a Buffer escape to separate the nibble about to be
// appended from the one last queued, which is known to equal it. Buffer's
// own nibbles (0x5, 0x6) can themselves collide with either neighbour: with
// whatever precedes the escape, if that happens to be 0x5 too, or with
// nibble itself, if nibble is 0x6. Both are handled by emitting one extra
// guard nibble on the affected side; the two cases are mutually exclusive
// since nibble cannot be both 0x5 and 0x6 at once.
func (o *OutputStream) insertBuffer(nibble byte) {
	bufHi, bufLo := nib.High(byte(Buffer)), nib.Low(byte(Buffer))

	if nibble == bufHi { // nibble equals o.last by the caller's precondition
		o.pending = append(o.pending, bufLo)
	}
	o.pending = append(o.pending, bufHi, bufLo)

	if nibble == bufLo {
		o.pending = append(o.pending, bufHi)
	}
}

// frameNibble returns nibble i (0-indexed, high-then-low per byte) of f.
func frameNibble(f *Frame, i int) byte {
	b := f[i/2]
	if i%2 == 0 {
		return nib.High(b)
	}
	return nib.Low(b)
}
