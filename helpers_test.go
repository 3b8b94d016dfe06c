// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nibblelink_test

import (
	"bytes"
	"testing"

	"code.hybscloud.com/nibblelink"
)

// encodeOneFrame runs data (shorter than or equal to FrameDataLen) through
// the escape encoder, the packer, and a fresh OutputStream, returning every
// nibble OutputStream.Next produced for that one frame followed by the first
// two idle nibbles after it. The window decoder only classifies EOF once two
// further nibbles have arrived behind it, as the idle pattern does on a live
// wire.
func encodeOneFrame(t *testing.T, data []byte) []byte {
	t.Helper()
	f, err := nibblelink.EncodeFrame(nibblelink.NewEscaper(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("EncodeFrame: %v", err)
	}
	out := nibblelink.NewOutputStream()
	out.SendFrame(f)
	var nibbles []byte
	for {
		nibbles = append(nibbles, out.Next())
		if out.Idle() {
			return append(nibbles, out.Next(), out.Next())
		}
	}
}

func pushAll(in *nibblelink.InputStream, nibbles []byte) []nibblelink.Command {
	cmds := make([]nibblelink.Command, 0, len(nibbles))
	for _, n := range nibbles {
		cmds = append(cmds, in.Push(n))
	}
	return cmds
}

func received(cmds []nibblelink.Command) []nibblelink.Command {
	var out []nibblelink.Command
	for _, c := range cmds {
		if c.Kind == nibblelink.CommandReceived {
			out = append(out, c)
		}
	}
	return out
}

func idleNibbles(bytesCount int) []byte {
	n := make([]byte, 0, bytesCount*2)
	for i := 0; i < bytesCount; i++ {
		n = append(n, 0xf, 0x0)
	}
	return n
}
