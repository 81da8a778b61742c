package input

import "testing"

func TestStrobeFallingEdgeLatchesButtonsAndReadsShiftOutMSBFirst(t *testing.T) {
	io := New()
	io.Pad1.SetButton(ButtonA, true)
	io.Pad1.SetButton(ButtonRight, true)

	io.Write(0x4016, 1)
	io.Write(0x4016, 0) // falling edge: latch snapshot

	want := []uint8{1, 0, 0, 0, 0, 0, 0, 1} // A (bit7), then 6 zeros, then Right (bit0)
	for i, w := range want {
		if got := io.Read(0x4016); got != w {
			t.Fatalf("bit %d = %d, want %d", i, got, w)
		}
	}
}

func TestUnplugPort2ReadsZero(t *testing.T) {
	io := New()
	io.Pad2.Plugged = false
	io.Write(0x4016, 1)
	io.Write(0x4016, 0)
	if got := io.Read(0x4017); got != 0 {
		t.Fatalf("unplugged port 2 read = %d, want 0", got)
	}
}

func TestReadWithoutStrobeKeepsShiftingStaleRegister(t *testing.T) {
	io := New()
	io.Pad1.SetButton(ButtonA, true)
	io.Write(0x4016, 1)
	io.Write(0x4016, 0)
	io.Read(0x4016)
	io.Read(0x4016)

	io.Pad1.SetButton(ButtonB, true)
	got := io.Read(0x4016)
	if got != 0 {
		t.Fatalf("read after strobe without re-latching should not reflect new button presses, got %d", got)
	}
}

func TestFirstReadAfterStrobeReturnsButtonAState(t *testing.T) {
	io := New()
	io.Pad1.SetButton(ButtonA, true)
	io.Write(0x4016, 1) // strobe high; the falling edge below latches the buttons
	io.Write(0x4016, 0)
	first := io.Read(0x4016)
	if first != 1 {
		t.Fatalf("first read = %d, want 1 (button A pressed)", first)
	}
}
