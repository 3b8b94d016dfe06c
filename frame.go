// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nibblelink

import (
	"errors"
	"fmt"
	"io"
)

// EncodeFrame fills one fixed-size Frame from src, which must already be
// escape-encoded (see Escaper). Short reads are tolerated: any data cell
// not filled before src runs dry is left zero. A non-EOF read error from
// src is returned wrapped, since it is fatal to the sender.
func EncodeFrame(src io.ByteReader) (Frame, error) {
	var f Frame
	f[0] = byte(StartOfFrame)
	for i := 0; i < FrameDataLen; i++ {
		b, err := src.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return f, fmt.Errorf("nibblelink: encode frame: %w", err)
		}
		f[1+i] = b
	}
	f[FrameLen-1] = byte(EndOfFrame)
	return f, nil
}
