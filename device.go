// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nibblelink

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/nibblelink/internal/nib"
)

// These are re-exported so callers can recognise the control-flow signal a
// Device.Read may return without importing iox directly.
var (
	// ErrWouldBlock means "line unchanged, no new symbol observed yet".
	// Connection.Poll treats it exactly like an unchanged nibble.
	ErrWouldBlock = iox.ErrWouldBlock
)

// Device is the physical I/O driver contract: one nibble in, one nibble
// out, assumed bounded-time. Implementations own their resources; Device
// itself carries no lifecycle methods.
type Device interface {
	// Send writes the low 4 bits of nibble to the cable.
	Send(nibble byte) error
	// Read returns the last observed low nibble. It may return
	// ErrWouldBlock to mean no new symbol is available yet.
	Read() (byte, error)
}

// loopbackCell is a single shared nibble register, safe for concurrent
// access by two Connections driving either end of a LoopbackDevice pair
// from different goroutines.
type loopbackCell struct {
	v atomic.Uint32
}

func (c *loopbackCell) store(nibble byte) { c.v.Store(uint32(nibble)) }
func (c *loopbackCell) load() byte        { return byte(c.v.Load()) }

// LoopbackDevice is an in-process mirror: its Read returns whatever the
// paired device last Sent, and vice versa. No threads, no blocking.
type LoopbackDevice struct {
	out *loopbackCell
	in  *loopbackCell
}

// NewLoopbackPair returns two LoopbackDevices wired to each other's
// registers, one per endpoint of a simulated cable.
func NewLoopbackPair() (a, b *LoopbackDevice) {
	x, y := &loopbackCell{}, &loopbackCell{}
	return &LoopbackDevice{out: x, in: y}, &LoopbackDevice{out: y, in: x}
}

func (d *LoopbackDevice) Send(nibble byte) error {
	d.out.store(nib.Low(nibble))
	return nil
}

func (d *LoopbackDevice) Read() (byte, error) {
	return d.in.load(), nil
}

// FileDevice is a file-backed Device stub: nibbles are written one byte at
// a time to w and read one byte at a time from r. r must support read
// deadlines (an *os.File over a FIFO or pipe is the intended case); a
// deadline timeout is reported as ErrWouldBlock rather than an error,
// matching the non-blocking-first posture of Connection.Poll.
type FileDevice struct {
	w       fileWriter
	r       fileReader
	timeout time.Duration
	buf     [1]byte
}

type fileWriter interface {
	Write(p []byte) (int, error)
}

type fileReader interface {
	Read(p []byte) (int, error)
	SetReadDeadline(t time.Time) error
}

// NewFileDevice wraps w and r. timeout bounds how long each Read call may
// block before it is reported as ErrWouldBlock; zero selects 1ms.
func NewFileDevice(w *os.File, r *os.File, timeout time.Duration) *FileDevice {
	if timeout <= 0 {
		timeout = time.Millisecond
	}
	return &FileDevice{w: w, r: r, timeout: timeout}
}

func (d *FileDevice) Send(nibble byte) error {
	if _, err := d.w.Write([]byte{nib.Low(nibble)}); err != nil {
		return fmt.Errorf("nibblelink: device send: %w", err)
	}
	return nil
}

func (d *FileDevice) Read() (byte, error) {
	if err := d.r.SetReadDeadline(time.Now().Add(d.timeout)); err != nil {
		return 0, fmt.Errorf("nibblelink: device read: %w", err)
	}
	n, err := d.r.Read(d.buf[:])
	if err != nil {
		if errors.Is(err, os.ErrDeadlineExceeded) {
			return 0, ErrWouldBlock
		}
		return 0, fmt.Errorf("nibblelink: device read: %w", err)
	}
	if n == 0 {
		return 0, ErrWouldBlock
	}
	return nib.Low(d.buf[0]), nil
}
