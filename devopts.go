// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nibblelink

import "time"

// Device kind → recommended poll delay.
//
// The spec leaves pacing to the caller (reference: 1ms); the right value
// depends on what is on the other end of the cable:
//   - Hardware  → sub-millisecond, the register itself is the rate limit
//   - File      → 1ms, matches the reference pace
//   - Loopback  → 0, there is no physical cable to rate-limit against
type deviceKind uint8

const (
	deviceHardware deviceKind = iota
	deviceFile
	deviceLoopback
)

func pollDelayFor(kind deviceKind) time.Duration {
	switch kind {
	case deviceHardware:
		return 100 * time.Microsecond
	case deviceLoopback:
		return 0
	case deviceFile:
		return time.Millisecond
	default:
		return time.Millisecond
	}
}

// WithHardwareDefaults sets the poll delay recommended for a bounded-time
// hardware register Device.
func WithHardwareDefaults() Option {
	return func(o *Options) { o.PollDelay = pollDelayFor(deviceHardware) }
}

// WithFileDefaults sets the poll delay recommended for a FileDevice.
func WithFileDefaults() Option {
	return func(o *Options) { o.PollDelay = pollDelayFor(deviceFile) }
}

// WithLoopbackDefaults sets the poll delay recommended for a
// LoopbackDevice: zero, since there is no physical line to pace against.
func WithLoopbackDefaults() Option {
	return func(o *Options) { o.PollDelay = pollDelayFor(deviceLoopback) }
}
