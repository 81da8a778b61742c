package console

import (
	"testing"

	"gones/internal/cartridge"
)

// nromROM builds a minimal iNES image for mapper 0 (NROM) with a RESET
// vector pointing at a short program: LDA #$42, STA $0010, then an
// infinite JMP to itself, so Step can be exercised deterministically.
func nromROM(t *testing.T) *cartridge.GameFile {
	t.Helper()
	header := []uint8{'N', 'E', 'S', 0x1a, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	prg := make([]uint8, 16384)
	prg[0] = 0xa9 // LDA #$42
	prg[1] = 0x42
	prg[2] = 0x85 // STA $10 (zero page)
	prg[3] = 0x10
	prg[4] = 0x4c // JMP $8004
	prg[5] = 0x04
	prg[6] = 0x80
	// reset vector at $FFFC -> $8000
	prg[16384-4] = 0x00
	prg[16384-3] = 0x80
	chr := make([]uint8, 8192)
	data := append(header, prg...)
	data = append(data, chr...)

	game, err := cartridge.Parse("test.nes", data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return game
}

func TestNewResetsCPUToGameResetVector(t *testing.T) {
	c, err := New(nromROM(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if c.CPU.PC != 0x8000 {
		t.Fatalf("PC = %#04x, want 0x8000", c.CPU.PC)
	}
}

func TestStepExecutesProgramAndWritesZeroPage(t *testing.T) {
	c, err := New(nromROM(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	// 8 idle reset cycles, then LDA #$42 (2 cycles) + STA $10 (3 cycles):
	// 13 CPU steps to complete both.
	for i := 0; i < 13; i++ {
		c.Step()
	}
	if got := c.cpuBus.Read(0x0010); got != 0x42 {
		t.Fatalf("zero page $10 = %#02x, want 0x42", got)
	}
}

func TestStepAdvancesPPUThreeDotsPerCPUCycle(t *testing.T) {
	c, err := New(nromROM(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	startDot := c.PPU.Dot
	c.Step()
	// The first Step is one of the CPU's 8 idle reset cycles, but the PPU
	// always advances three dots per Step regardless of what the CPU does.
	advanced := (c.PPU.Dot + 341 - startDot) % 341
	if advanced != 3 {
		t.Fatalf("PPU dot advanced by %d, want 3", advanced)
	}
}

func TestOamDMATransfersPageIntoPPUObjectAttributeMemory(t *testing.T) {
	c, err := New(nromROM(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c.cpuBus.RAM.Write(0x0200, 0xAB)
	c.cpuBus.OAMDMA.Request(0x02)
	c.cpuBus.OAMDMA.Arm(false)

	for c.cpuBus.OAMDMA.Active() {
		c.Step()
	}

	if got := c.PPU.ReadRegister(0x2004); got != 0xAB {
		// OAMADDR starts at 0 and DMA writes byte 0 of the page first.
		t.Fatalf("OAM[0] = %#02x, want 0xab", got)
	}
}
