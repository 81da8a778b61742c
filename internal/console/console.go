// Package console wires the CPU, PPU, APU, input ports and cartridge
// mapper together behind a single Step operation implementing the fixed
// 1:3:1 CPU:PPU:APU clock ratio.
//
// Grounded on polones-core/src/nes.rs's Nes.run_one_cpu_tick; the APU call
// site (once per CPU tick, after the PPU's three sub-ticks) and the OAM DMA
// stall/drain wiring are this core's own resolution of open questions the
// reference left implicit (see DESIGN.md).
package console

import (
	"gones/internal/apu"
	"gones/internal/bus"
	"gones/internal/cartridge"
	"gones/internal/cpu"
	"gones/internal/input"
	"gones/internal/ppu"
)

// Console owns every piece of console state and advances it one CPU cycle
// at a time via Step.
type Console struct {
	CPU    *cpu.CPU
	PPU    *ppu.PPU
	APU    *apu.APU
	Mapper cartridge.Mapper
	Input  *input.Io

	cpuBus *bus.CPUBus
	ppuBus *bus.PPUBus

	cycleOdd bool
}

// New constructs a fully wired console for the given cartridge image and
// resets the CPU to its power-up vector.
func New(game *cartridge.GameFile) (*Console, error) {
	mapper, err := cartridge.FromGameFile(game)
	if err != nil {
		return nil, err
	}

	c := &Console{
		Mapper: mapper,
		APU:    apu.New(),
		Input:  input.New(),
	}

	c.ppuBus = bus.NewPPUBus(mapper)
	c.PPU = ppu.New(c.ppuBus, nil)
	c.cpuBus = bus.NewCPUBus(c.PPU, c.APU, c.Input, mapper)
	c.CPU = cpu.New(c.cpuBus)
	c.PPU.SetNMITrigger(c.CPU)

	c.CPU.Reset()
	return c, nil
}

// Step advances the console by one CPU cycle: CPU.Tick (or, while an OAM
// DMA transfer is in flight, a stalled cycle that drains one byte into the
// PPU's OAM instead), DMA arming, three PPU ticks, one APU tick, and one
// mapper tick, in that fixed order.
func (c *Console) Step() {
	dma := c.cpuBus.OAMDMA

	if dma.Active() {
		if transfer, index := dma.Tick(); transfer {
			address := uint16(dma.SourcePage())<<8 | uint16(index)
			value := c.cpuBus.Read(address)
			c.PPU.WriteOAM(index, value)
		}
	} else {
		c.CPU.Tick()
		// A $4014 write during this tick may have requested a transfer;
		// Arm is a no-op otherwise. Finalizing here, now that this step's
		// cycle parity is known, fixes the 513/514-cycle stall length.
		dma.Arm(c.cycleOdd)
	}

	c.PPU.Tick()
	c.PPU.Tick()
	c.PPU.Tick()

	c.APU.Tick(c.CPU)

	c.Mapper.Tick(c.CPU)

	c.cycleOdd = !c.cycleOdd
}

// FrameBuffer returns the PPU's live frame buffer (see ppu.PPU.FrameBuffer
// for when it holds one whole frame).
func (c *Console) FrameBuffer() *[240][256]uint32 { return c.PPU.FrameBuffer() }

// AudioSamples returns the APU's most recently published 64-sample buffer.
func (c *Console) AudioSamples() [64]uint16 { return c.APU.Samples() }
