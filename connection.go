// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nibblelink

import (
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

// Connection is the polled half-duplex driver: it owns a Device, the
// escape-encoded byte source being sent, a sink for received data, and
// one OutputStream/InputStream pair. A single call to Poll steps both
// streams exactly once; there are no hidden goroutines.
type Connection struct {
	log *zap.Logger

	dev    Device
	source *Escaper
	sink   io.Writer

	out *OutputStream
	in  *InputStream

	pollDelay     time.Duration
	doneReceiving bool
}

// NewConnection constructs a Connection and immediately arms the first
// frame: the core spec only builds a new frame on SendNextFrame (which
// normally fires on receiving the peer's acknowledgment), so a Connection
// treats its own construction as that first event. Without this, nothing
// would ever be on the wire for the peer to acknowledge.
func NewConnection(dev Device, source io.ByteReader, sink io.Writer, opts ...Option) (*Connection, error) {
	if dev == nil || source == nil || sink == nil {
		return nil, ErrInvalidArgument
	}
	o := buildOptions(opts...)
	c := &Connection{
		log:       o.Logger,
		dev:       dev,
		source:    NewEscaper(source),
		sink:      sink,
		out:       NewOutputStream(opts...),
		in:        NewInputStream(opts...),
		pollDelay: o.PollDelay,
	}
	if err := c.sendNextFrame(); err != nil {
		return nil, err
	}
	return c, nil
}

// PollDelay is the inter-tick sleep recommended to the caller's poll loop,
// configured via WithPollDelay or one of the device-kind default options.
func (c *Connection) PollDelay() time.Duration { return c.pollDelay }

func (c *Connection) sendNextFrame() error {
	frame, err := EncodeFrame(c.source)
	if err != nil {
		return fmt.Errorf("nibblelink: connection: source: %w", err)
	}
	c.out.SendFrame(frame)
	return nil
}

// Poll steps the connection once: send one nibble, read one nibble,
// dispatch whatever Command the decoder surfaces. It reports whether the
// caller should keep polling (true) or the connection has run its course
// (false), and any fatal device or source error encountered along the way.
func (c *Connection) Poll() (bool, error) {
	if err := c.dev.Send(c.out.Next()); err != nil {
		return false, fmt.Errorf("nibblelink: connection: device send: %w", err)
	}

	nibble, err := c.dev.Read()
	if err != nil {
		if errors.Is(err, ErrWouldBlock) {
			return true, nil
		}
		return false, fmt.Errorf("nibblelink: connection: device read: %w", err)
	}

	cmd := c.in.Push(nibble)
	c.log.Debug("connection: dispatch", zap.Stringer("command", cmd.Kind))

	switch cmd.Kind {
	case CommandReceived:
		if _, err := c.sink.Write(cmd.Data[:]); err != nil {
			return false, fmt.Errorf("nibblelink: connection: sink write: %w", err)
		}
	case CommandSendNextFrame:
		// The source has nothing left: stay in OutputStream's idle pattern
		// rather than keep arming empty frames. See DESIGN.md's Connection
		// entry for why no FinishedSending is emitted here.
		if !c.source.Done() {
			if err := c.sendNextFrame(); err != nil {
				return false, err
			}
		}
	case CommandResendLastFrame:
		c.out.ResendFrame()
	case CommandStopReceivingData:
		c.doneReceiving = true
	}

	return !(c.source.Done() && c.doneReceiving), nil
}
