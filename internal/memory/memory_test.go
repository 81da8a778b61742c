package memory

import "testing"

func TestRamWrapsAtSize(t *testing.T) {
	r := NewRam(2 * 1024)
	r.Write(0x0000, 0x42)
	if got := r.Read(0x0800); got != 0x42 {
		t.Errorf("expected mirrored read to see 0x42, got %#x", got)
	}
}

func TestRamIndependentBytes(t *testing.T) {
	r := NewRam(32)
	for i := 0; i < 32; i++ {
		r.Write(i, uint8(i))
	}
	for i := 0; i < 32; i++ {
		if got := r.Read(i); got != uint8(i) {
			t.Errorf("byte %d: got %#x", i, got)
		}
	}
}
