package nib

import "testing"

func TestHighLow(t *testing.T) {
	cases := []struct {
		b      byte
		hi, lo byte
	}{
		{0x12, 0x1, 0x2},
		{0xff, 0xf, 0xf},
		{0x00, 0x0, 0x0},
		{0xa0, 0xa, 0x0},
	}
	for _, c := range cases {
		if got := High(c.b); got != c.hi {
			t.Errorf("High(%#x) = %#x, want %#x", c.b, got, c.hi)
		}
		if got := Low(c.b); got != c.lo {
			t.Errorf("Low(%#x) = %#x, want %#x", c.b, got, c.lo)
		}
	}
}
