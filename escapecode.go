// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nibblelink

// EscapeCode is one of the six reserved byte values that carry
// control meaning on the wire instead of literal data. Any of these
// values appearing in the source byte stream is doubled by the
// Escaper before it reaches the packer.
type EscapeCode byte

const (
	StartOfFrame       EscapeCode = 0x12
	EndOfFrame         EscapeCode = 0x23
	CorrectFrameData   EscapeCode = 0x34
	IncorrectFrameData EscapeCode = 0x45
	Buffer             EscapeCode = 0x56
	FinishedSending    EscapeCode = 0x67
)

// EscapeCodeFromByte reports whether b is one of the six reserved
// control values and, if so, which one.
func EscapeCodeFromByte(b byte) (EscapeCode, bool) {
	switch EscapeCode(b) {
	case StartOfFrame, EndOfFrame, CorrectFrameData, IncorrectFrameData, Buffer, FinishedSending:
		return EscapeCode(b), true
	default:
		return 0, false
	}
}

func (c EscapeCode) String() string {
	switch c {
	case StartOfFrame:
		return "SOF"
	case EndOfFrame:
		return "EOF"
	case CorrectFrameData:
		return "ACK"
	case IncorrectFrameData:
		return "NAK"
	case Buffer:
		return "BUF"
	case FinishedSending:
		return "FIN"
	default:
		return "?"
	}
}
