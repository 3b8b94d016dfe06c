// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nibblelink

import "errors"

// ErrInvalidArgument reports a nil Device, source, or sink passed to
// NewConnection. Framing violations never surface as errors: the decoder
// handles them internally by asking the peer to resend (see
// InputStream.Push and CommandResendLastFrame).
var ErrInvalidArgument = errors.New("nibblelink: invalid argument")
