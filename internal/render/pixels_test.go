package render

import "testing"

func TestFillRGBAUnpacksChannels(t *testing.T) {
	frame := []uint32{0xFF112233, 0x80FFEEDD}
	buf := make([]byte, 8)
	FillRGBA(buf, frame)

	want := []byte{0x11, 0x22, 0x33, 0xFF, 0xFF, 0xEE, 0xDD, 0x80}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("buf[%d] = %02X, want %02X", i, buf[i], want[i])
		}
	}
}

func TestFillRGBAIgnoresShortBuffer(t *testing.T) {
	frame := []uint32{0xFFFFFFFF}
	buf := make([]byte, 3)
	FillRGBA(buf, frame)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("short buffer written at %d", i)
		}
	}
}
