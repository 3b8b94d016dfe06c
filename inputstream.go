// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nibblelink

import (
	"go.uber.org/zap"

	"code.hybscloud.com/nibblelink/internal/nib"
)

type inputState uint8

const (
	inputWaitingForFrame inputState = iota
	inputReadingFrame
)

// dataLen is the size of one decoded frame payload: the data region plus
// the (currently zero-length) checksum region.
const dataLen = FrameDataLen + ChecksumLen

// CommandKind is the high-level instruction InputStream.Push surfaces to
// the driving Connection.
type CommandKind uint8

const (
	CommandNone CommandKind = iota
	CommandReceived
	CommandSendNextFrame
	CommandResendLastFrame
	CommandStopReceivingData
)

func (k CommandKind) String() string {
	switch k {
	case CommandReceived:
		return "Received"
	case CommandSendNextFrame:
		return "SendNextFrame"
	case CommandResendLastFrame:
		return "ResendLastFrame"
	case CommandStopReceivingData:
		return "StopReceivingData"
	default:
		return "None"
	}
}

// Command is the result of one InputStream.Push call. Data is only
// meaningful when Kind is CommandReceived.
type Command struct {
	Kind CommandKind
	Data [dataLen]byte
}

// InputStream reassembles frames from a nibble-at-a-time feed. It holds a
// sliding 4-nibble window and recognises control codes and literal data
// the way OutputStream and the packer encoded them.
type InputStream struct {
	log   *zap.Logger
	state inputState

	window       uint16
	windowLength uint8

	data      [dataLen]byte
	dataIndex int
}

// NewInputStream returns a stream in WaitingForFrame.
func NewInputStream(opts ...Option) *InputStream {
	o := buildOptions(opts...)
	return &InputStream{log: o.Logger}
}

// Push feeds one observed nibble into the decoder. Call it once per
// Connection tick with the value last read from the Device.
func (in *InputStream) Push(nibble byte) Command {
	if !in.windowPush(nibble) {
		return Command{Kind: CommandNone}
	}
	if in.state == inputWaitingForFrame {
		return in.waitingForFrame()
	}
	return in.readingFrame()
}

// windowPush applies the transition filter and shifts nibble into the
// window. It reports whether the window now holds 4 fresh nibbles and
// should be decoded.
func (in *InputStream) windowPush(nibble byte) bool {
	nibble = nib.Low(nibble)
	if nibble == nib.Low(byte(in.window)) {
		return false
	}
	in.window = in.window<<4 | uint16(nibble)
	if in.windowLength < 4 {
		in.windowLength++
	}
	return in.windowLength == 4
}

type decodedKind uint8

const (
	decodedNibble decodedKind = iota
	decodedByte
	decodedEscape
)

type decoded struct {
	kind   decodedKind
	nibble byte
	byte   byte
	code   EscapeCode
}

// windowDecode classifies the current 4-nibble window and shrinks
// windowLength so the already-consumed nibbles are not decoded again.
func (in *InputStream) windowDecode() decoded {
	hi := byte(in.window >> 8)
	lo := byte(in.window)

	if code, ok := EscapeCodeFromByte(hi); ok {
		if hi == lo {
			in.windowLength = 0
			return decoded{kind: decodedByte, byte: hi}
		}
		in.windowLength = 2
		return decoded{kind: decodedEscape, code: code}
	}
	in.windowLength = 3
	return decoded{kind: decodedNibble, nibble: nib.High(hi)}
}

func (in *InputStream) waitingForFrame() Command {
	d := in.windowDecode()
	if d.kind != decodedEscape {
		return Command{Kind: CommandNone}
	}
	in.log.Debug("input: waiting, decoded escape", zap.Stringer("code", d.code))
	switch d.code {
	case StartOfFrame:
		in.state = inputReadingFrame
		in.dataIndex = 0
	case CorrectFrameData:
		return Command{Kind: CommandSendNextFrame}
	case IncorrectFrameData:
		return Command{Kind: CommandResendLastFrame}
	case FinishedSending:
		return Command{Kind: CommandStopReceivingData}
	case Buffer, EndOfFrame:
		// Unexpected while waiting; spec calls for ignoring both.
	}
	return Command{Kind: CommandNone}
}

func (in *InputStream) readingFrame() Command {
	d := in.windowDecode()
	if d.kind != decodedEscape && in.dataIndex/2 >= len(in.data) {
		// data is full: count the symbol without storing it, so the next EOF
		// sees a length mismatch and asks for a resend.
		if d.kind == decodedNibble {
			in.dataIndex++
		} else {
			in.dataIndex += 2
		}
		return Command{Kind: CommandNone}
	}
	switch d.kind {
	case decodedNibble:
		in.writeNibble(d.nibble)
		return Command{Kind: CommandNone}
	case decodedByte:
		in.writeByte(d.byte)
		return Command{Kind: CommandNone}
	}

	in.log.Debug("input: reading, decoded escape", zap.Stringer("code", d.code))
	switch d.code {
	case StartOfFrame:
		if in.dataIndex != 0 {
			in.dataIndex = 0
			return Command{Kind: CommandResendLastFrame}
		}
		return Command{Kind: CommandNone}
	case EndOfFrame:
		var cmd Command
		if in.dataIndex/2 == len(in.data) {
			cmd.Kind = CommandReceived
			cmd.Data = in.data
		} else {
			cmd.Kind = CommandResendLastFrame
		}
		in.dataIndex = 0
		in.data = [dataLen]byte{}
		return cmd
	case CorrectFrameData:
		return Command{Kind: CommandSendNextFrame}
	case IncorrectFrameData:
		return Command{Kind: CommandResendLastFrame}
	case FinishedSending:
		return Command{Kind: CommandStopReceivingData}
	default: // Buffer: line filler, ignore.
		return Command{Kind: CommandNone}
	}
}

func (in *InputStream) writeNibble(n byte) {
	shift := uint(0)
	if in.dataIndex%2 == 0 {
		shift = 4
	}
	in.data[in.dataIndex/2] |= n << shift
	in.dataIndex++
}

func (in *InputStream) writeByte(b byte) {
	in.data[in.dataIndex/2] = b
	in.dataIndex += 2
}
