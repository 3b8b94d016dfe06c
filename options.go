// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nibblelink

import (
	"time"

	"go.uber.org/zap"
)

// Options configures a Connection and the streams it owns.
type Options struct {
	Logger *zap.Logger

	// PollDelay is the inter-tick sleep recommended to callers driving
	// Connection.Poll in a loop (reference: 1ms). Connection itself never
	// sleeps; this value is only carried here so there is one place to
	// configure it.
	PollDelay time.Duration
}

var defaultOptions = Options{
	Logger:    zap.NewNop(),
	PollDelay: time.Millisecond,
}

type Option func(*Options)

// WithLogger attaches a structured logger. Connection and both streams log
// at Debug level only: decoded escape codes, frames armed for sending or
// resending, and dispatched commands. The default is a no-op logger, so
// leaving this unset costs nothing on the hot path.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithPollDelay overrides the reference inter-tick sleep recommended to
// callers driving Connection.Poll in a loop.
func WithPollDelay(d time.Duration) Option {
	return func(o *Options) { o.PollDelay = d }
}

func buildOptions(opts ...Option) Options {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
