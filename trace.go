// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nibblelink

import "go.uber.org/zap"

// TracingDevice wraps a Device and records every nibble sent and read,
// matching the eprintln-on-every-send/read posture of a debug device:
// useful in tests and when diagnosing a misbehaving peer.
type TracingDevice struct {
	Device
	log *zap.Logger

	sent []byte
	read []byte
}

// NewTracingDevice wraps dev. Logging is at Debug level and costs nothing
// with the default no-op logger.
func NewTracingDevice(dev Device, opts ...Option) *TracingDevice {
	o := buildOptions(opts...)
	return &TracingDevice{Device: dev, log: o.Logger}
}

func (t *TracingDevice) Send(nibble byte) error {
	err := t.Device.Send(nibble)
	if err == nil {
		t.sent = append(t.sent, nibble&0x0f)
	}
	t.log.Debug("device send", zap.Uint8("nibble", nibble&0x0f), zap.Error(err))
	return err
}

func (t *TracingDevice) Read() (byte, error) {
	nibble, err := t.Device.Read()
	if err == nil {
		t.read = append(t.read, nibble&0x0f)
	}
	t.log.Debug("device read", zap.Uint8("nibble", nibble&0x0f), zap.Error(err))
	return nibble, err
}

// Sent returns every nibble this device has successfully sent, in order.
func (t *TracingDevice) Sent() []byte { return t.sent }

// History returns every nibble this device has successfully observed, in
// the order Read returned them.
func (t *TracingDevice) History() []byte { return t.read }
