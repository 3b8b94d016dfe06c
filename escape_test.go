// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package nibblelink_test

import (
	"bytes"
	"io"
	"testing"

	"code.hybscloud.com/nibblelink"
)

func TestEscaper_DoublesReservedBytes(t *testing.T) {
	src := bytes.NewReader([]byte{0x01, 0x12, 0x02, 0x67, 0x03})
	e := nibblelink.NewEscaper(src)

	var got []byte
	for {
		b, err := e.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadByte: %v", err)
		}
		got = append(got, b)
	}

	want := []byte{0x01, 0x12, 0x12, 0x02, 0x67, 0x67, 0x03}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x want %x", got, want)
	}
	if !e.Done() {
		t.Fatalf("Done() = false after EOF")
	}
}

func TestEscaper_PassesThroughPlainBytes(t *testing.T) {
	src := bytes.NewReader([]byte{0x00, 0xff, 0x11, 0x99})
	e := nibblelink.NewEscaper(src)

	var got []byte
	for {
		b, err := e.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadByte: %v", err)
		}
		got = append(got, b)
	}

	want := []byte{0x00, 0xff, 0x11, 0x99}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x want %x", got, want)
	}
}
