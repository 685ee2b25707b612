package app

import "testing"

func TestPackedToRGBA(t *testing.T) {
	src := []uint32{0x000000, 0xFFFFFF, 0x66CC99, 0x123456}
	dst := make([]byte, 4*len(src))
	packedToRGBA(src, dst)

	want := []byte{
		0x00, 0x00, 0x00, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF,
		0x66, 0xCC, 0x99, 0xFF,
		0x12, 0x34, 0x56, 0xFF,
	}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst[%d] = %#02x, want %#02x", i, dst[i], want[i])
		}
	}
}
