package ppu

import "testing"

type fakeBus struct {
	mem [0x4000]uint8
}

func (b *fakeBus) Read(address uint16) uint8  { return b.mem[address&0x3fff] }
func (b *fakeBus) Write(address uint16, v uint8) { b.mem[address&0x3fff] = v }

type fakeNMI struct{ count int }

func (n *fakeNMI) NMI() { n.count++ }

func newTestPPU() (*PPU, *fakeBus, *fakeNMI) {
	bus := &fakeBus{}
	nmi := &fakeNMI{}
	p := New(bus, nmi)
	return p, bus, nmi
}

func TestStatusReadClearsVblankAndWriteLatch(t *testing.T) {
	p, _, _ := newTestPPU()
	p.status = statusVblank | statusSprite0Hit
	p.w = true

	got := p.ReadRegister(0x2002)
	if got != statusVblank|statusSprite0Hit {
		t.Fatalf("ReadRegister(0x2002) = %#02x, want %#02x", got, statusVblank|statusSprite0Hit)
	}
	if p.status&statusVblank != 0 {
		t.Fatalf("vblank bit not cleared after status read")
	}
	if p.w {
		t.Fatalf("write latch not cleared after status read")
	}
}

func TestScrollWriteLatchesCoarseXThenCoarseYAndFineY(t *testing.T) {
	p, _, _ := newTestPPU()
	p.WriteRegister(0x2005, 0b0101_1011) // coarse X = 0b01011, fine X = 0b011
	if coarseX(p.t) != 0b01011 {
		t.Fatalf("coarse X = %#b, want 0b01011", coarseX(p.t))
	}
	if p.x != 0b011 {
		t.Fatalf("fine X = %#b, want 0b011", p.x)
	}
	if !p.w {
		t.Fatalf("write latch should be set after first scroll write")
	}

	p.WriteRegister(0x2005, 0b0100_0010) // coarse Y = 0b01000, fine Y = 0b010
	if coarseY(p.t) != 0b01000 {
		t.Fatalf("coarse Y = %#b, want 0b01000", coarseY(p.t))
	}
	if fineY(p.t) != 0b010 {
		t.Fatalf("fine Y = %#b, want 0b010", fineY(p.t))
	}
	if p.w {
		t.Fatalf("write latch should be cleared after second scroll write")
	}
}

func TestAddressWriteCopiesTToVOnSecondWrite(t *testing.T) {
	p, _, _ := newTestPPU()
	p.WriteRegister(0x2006, 0x21)
	if p.v == p.t {
		t.Fatalf("v should not be updated after first address write")
	}
	p.WriteRegister(0x2006, 0x08)
	if p.t != 0x2108 {
		t.Fatalf("t = %#04x, want 0x2108", p.t)
	}
	if p.v != p.t {
		t.Fatalf("v = %#04x, want copy of t (%#04x) after second address write", p.v, p.t)
	}
}

func TestDataReadIsBufferedBelowPaletteRange(t *testing.T) {
	p, bus, _ := newTestPPU()
	bus.mem[0x0010] = 0xaa
	bus.mem[0x0011] = 0xbb
	p.v = 0x0010

	first := p.ReadRegister(0x2007)
	if first != 0 {
		t.Fatalf("first buffered read = %#02x, want 0 (stale buffer)", first)
	}
	second := p.ReadRegister(0x2007)
	if second != 0xaa {
		t.Fatalf("second buffered read = %#02x, want 0xaa", second)
	}
}

func TestDataReadBypassesBufferInPaletteRange(t *testing.T) {
	p, bus, _ := newTestPPU()
	bus.mem[0x3f05] = 0x2c
	p.v = 0x3f05

	got := p.ReadRegister(0x2007)
	if got != 0x2c {
		t.Fatalf("palette read = %#02x, want 0x2c (direct, unbuffered)", got)
	}
}

func TestDataAddressIncrementsByStepFromControl(t *testing.T) {
	p, _, _ := newTestPPU()
	p.v = 0x2000
	p.ReadRegister(0x2007)
	if p.v != 0x2001 {
		t.Fatalf("v after increment-by-1 read = %#04x, want 0x2001", p.v)
	}

	p.control |= ctrlIncrementMode
	p.ReadRegister(0x2007)
	if p.v != 0x2021 {
		t.Fatalf("v after increment-by-32 read = %#04x, want 0x2021", p.v)
	}
}

func TestVBlankSetAndNMIFiredAtScanline241Dot1(t *testing.T) {
	p, _, nmi := newTestPPU()
	p.control |= ctrlNMIEnable
	p.Scanline = 240
	p.Dot = 340
	p.Tick() // rolls over to scanline 241, dot 0
	if p.Scanline != 241 || p.Dot != 0 {
		t.Fatalf("scanline/dot = %d/%d, want 241/0", p.Scanline, p.Dot)
	}
	p.Tick() // processes scanline 241 dot 0, moves to dot 1
	p.Tick() // processes dot 1: vblank flag set and NMI fired
	if !p.vblank {
		t.Fatalf("vblank flag not set at scanline 241 dot 1")
	}
	if nmi.count != 1 {
		t.Fatalf("NMI fired %d times, want 1", nmi.count)
	}
}

func TestPreRenderScanlineClearsStatusFlags(t *testing.T) {
	p, _, _ := newTestPPU()
	p.status = statusVblank | statusSprite0Hit | statusSpriteOverflow
	p.Scanline = 261
	p.Dot = 1
	p.Tick() // processing dot 1 clears the flags
	if p.status != 0 {
		t.Fatalf("status = %#02x after pre-render dot 1, want 0", p.status)
	}
	if p.vblank {
		t.Fatalf("vblank flag not cleared on pre-render scanline")
	}
}

func TestOddFrameSkipsFirstPreRenderDot(t *testing.T) {
	p, _, _ := newTestPPU()
	p.mask |= maskShowBackground
	p.Scanline = 261
	p.Dot = 340
	p.odd = true
	p.Tick()
	if p.Scanline != 0 || p.Dot != 1 {
		t.Fatalf("scanline/dot after odd-frame wraparound = %d/%d, want 0/1", p.Scanline, p.Dot)
	}
}

func TestEvenFrameDoesNotSkipPreRenderDot(t *testing.T) {
	p, _, _ := newTestPPU()
	p.mask |= maskShowBackground
	p.Scanline = 261
	p.Dot = 340
	p.odd = false
	p.Tick()
	if p.Scanline != 0 || p.Dot != 0 {
		t.Fatalf("scanline/dot after even-frame wraparound = %d/%d, want 0/0", p.Scanline, p.Dot)
	}
}

func TestIncrementVHorizontalWrapsCoarseXAndTogglesNametable(t *testing.T) {
	p, _, _ := newTestPPU()
	setCoarseX(&p.v, 31)
	setNametableSel(&p.v, 0b00)
	p.incrementVHorizontal()
	if coarseX(p.v) != 0 {
		t.Fatalf("coarse X = %d, want 0 after wraparound", coarseX(p.v))
	}
	if nametableSel(p.v)&0b01 == 0 {
		t.Fatalf("horizontal nametable bit not toggled after coarse X wraparound")
	}
}

func TestIncrementVVerticalWrapsAtRow29AndTogglesNametable(t *testing.T) {
	p, _, _ := newTestPPU()
	setFineY(&p.v, 7)
	setCoarseY(&p.v, 29)
	setNametableSel(&p.v, 0b00)
	p.incrementVVertical()
	if coarseY(p.v) != 0 {
		t.Fatalf("coarse Y = %d, want 0 after row-29 wraparound", coarseY(p.v))
	}
	if nametableSel(p.v)&0b10 == 0 {
		t.Fatalf("vertical nametable bit not toggled after row-29 wraparound")
	}
}

func TestIncrementVVerticalWrapsAtRow31WithoutTogglingNametable(t *testing.T) {
	p, _, _ := newTestPPU()
	setFineY(&p.v, 7)
	setCoarseY(&p.v, 31)
	setNametableSel(&p.v, 0b00)
	p.incrementVVertical()
	if coarseY(p.v) != 0 {
		t.Fatalf("coarse Y = %d, want 0 after out-of-bounds row-31 wraparound", coarseY(p.v))
	}
	if nametableSel(p.v) != 0 {
		t.Fatalf("nametable bits should not change when wrapping from the out-of-bounds row 31")
	}
}

func TestClearSecondaryOAMFillsWithFF(t *testing.T) {
	p, _, _ := newTestPPU()
	p.secondaryOAM[10] = 0x42
	p.clearSecondaryOAM()
	for i, v := range p.secondaryOAM {
		if v != 0xff {
			t.Fatalf("secondaryOAM[%d] = %#02x, want 0xff", i, v)
		}
	}
}

func TestEvaluateSpritesFindsInRangeSpritesAndFlagsSprite0(t *testing.T) {
	p, _, _ := newTestPPU()
	p.Scanline = 10
	// sprite 0 at Y=8, height 8, in range for scanline 10
	p.oam[0] = 8
	p.oam[1] = 0x01
	p.oam[2] = 0x00
	p.oam[3] = 0x05
	// sprite 1 out of range
	p.oam[4] = 200
	p.evaluateSprites()
	if !p.sprite0NextScanline {
		t.Fatalf("sprite 0 should be flagged in-range")
	}
	if p.spritesNextLine != 1 {
		t.Fatalf("spritesNextLine = %d, want 1", p.spritesNextLine)
	}
	if p.secondaryOAM[3] != 0x05 {
		t.Fatalf("secondary OAM byte 3 = %#02x, want 0x05", p.secondaryOAM[3])
	}
}

func TestWriteOAMUsedByDMAWritesDirectly(t *testing.T) {
	p, _, _ := newTestPPU()
	p.WriteOAM(5, 0x77)
	if p.oam[5] != 0x77 {
		t.Fatalf("oam[5] = %#02x, want 0x77", p.oam[5])
	}
}

func TestFrameBufferAdvancesAndWrapsFrameCount(t *testing.T) {
	p, _, _ := newTestPPU()
	p.frameIndex = 256*240 - 1
	before := p.FrameCount
	p.drawPixel()
	if p.frameIndex != 0 {
		t.Fatalf("frameIndex = %d, want 0 after wraparound", p.frameIndex)
	}
	if p.FrameCount != before+1 {
		t.Fatalf("FrameCount = %d, want %d", p.FrameCount, before+1)
	}
}

func TestReverseBitsFlipsByteOrder(t *testing.T) {
	if got := reverseBits(0b1000_0001); got != 0b1000_0001 {
		t.Fatalf("reverseBits(0b10000001) = %#08b, want 0b10000001", got)
	}
	if got := reverseBits(0b1111_0000); got != 0b0000_1111 {
		t.Fatalf("reverseBits(0b11110000) = %#08b, want 0b00001111", got)
	}
}
