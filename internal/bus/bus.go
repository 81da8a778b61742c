// Package bus implements the address decoding that connects the CPU, PPU,
// APU, controllers and cartridge mapper into one NES system. It owns no
// timing of its own; the console package drives ticking and calls into the
// bus only to route reads and writes to the right component.
//
// Grounded on polones-core/src/nes.rs's cpu_bus_read/cpu_bus_write and
// ppu_bus_read/ppu_bus_write free functions, reshaped into two small Go
// structs so cpu and ppu each depend only on a narrow Bus interface instead
// of on every other component package.
package bus

import (
	"log"

	"gones/internal/cartridge"
	"gones/internal/memory"
)

// PPURegisters is the narrow view of the PPU the CPU bus needs: register
// file access at $2000-$2007 (mirrored through $3FFF) plus OAM DMA.
type PPURegisters interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
	WriteOAM(index uint8, value uint8)
}

// APURegisters is the narrow view of the APU the CPU bus needs.
type APURegisters interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
}

// Ports is the narrow view of controller I/O the CPU bus needs, matching
// $4016/$4017.
type Ports interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CPUBus implements the CPU-visible address map: 2 KiB of work RAM mirrored
// through $1FFF, the PPU register file mirrored through $3FFF, the APU and
// I/O registers at $4000-$4017, and everything $4020 and up (plus $6000+ for
// cartridges that map PRG-RAM there) delegated to the mapper.
type CPUBus struct {
	RAM     *memory.Ram
	PPU     PPURegisters
	APU     APURegisters
	Ports   Ports
	Mapper  cartridge.Mapper
	OAMDMA  *OamDMA
}

// NewCPUBus wires a CPU bus against an already-loaded mapper.
func NewCPUBus(ppu PPURegisters, apu APURegisters, ports Ports, mapper cartridge.Mapper) *CPUBus {
	return &CPUBus{
		RAM:    memory.NewRam(2 * 1024),
		PPU:    ppu,
		APU:    apu,
		Ports:  ports,
		Mapper: mapper,
		OAMDMA: &OamDMA{},
	}
}

func (b *CPUBus) Read(address uint16) uint8 {
	switch {
	case address <= 0x1fff:
		return b.RAM.Read(int(address))
	case address <= 0x3fff:
		return b.PPU.ReadRegister(0x2000 + address%8)
	case address == 0x4015:
		return b.APU.ReadRegister(address)
	case address == 0x4016 || address == 0x4017:
		return b.Ports.Read(address)
	case address <= 0x4017:
		return b.APU.ReadRegister(address)
	case b.Mapper.CPUAddressMapped(address):
		return b.Mapper.CPURead(address)
	default:
		log.Printf("bus: CPU read from unmapped address %#04x", address)
		return 0
	}
}

func (b *CPUBus) Write(address uint16, value uint8) {
	switch {
	case address <= 0x1fff:
		b.RAM.Write(int(address), value)
	case address <= 0x3fff:
		b.PPU.WriteRegister(0x2000+address%8, value)
	case address == 0x4014:
		b.OAMDMA.Request(value)
	case address == 0x4016:
		b.Ports.Write(address, value)
	case address <= 0x4017:
		b.APU.WriteRegister(address, value)
	case b.Mapper.CPUAddressMapped(address):
		b.Mapper.CPUWrite(address, value)
	default:
		log.Printf("bus: CPU write to unmapped address %#04x ignored", address)
	}
}

// PPUBus implements the PPU-visible address map: pattern tables ($0000-$1FFF)
// and nametable mirroring decisions delegated to the mapper, 2 KiB of
// nametable RAM, and 32 bytes of palette RAM with its well-known mirroring
// and $10/$14/$18/$1C aliasing quirk.
type PPUBus struct {
	Nametables *memory.Ram
	Palette    *memory.Ram
	Mapper     cartridge.Mapper
}

func NewPPUBus(mapper cartridge.Mapper) *PPUBus {
	return &PPUBus{
		Nametables: memory.NewRam(2 * 1024),
		Palette:    memory.NewRam(32),
		Mapper:     mapper,
	}
}

func (b *PPUBus) Read(address uint16) uint8 {
	address &= 0x3fff
	switch {
	case address <= 0x1fff:
		return b.Mapper.PPURead(address)
	case address <= 0x3eff:
		return b.Nametables.Read(int(b.Mapper.PPUNametableAddressMapped(address)))
	default:
		return b.Palette.Read(int(paletteAddress(address)))
	}
}

func (b *PPUBus) Write(address uint16, value uint8) {
	address &= 0x3fff
	switch {
	case address <= 0x1fff:
		b.Mapper.PPUWrite(address, value)
	case address <= 0x3eff:
		b.Nametables.Write(int(b.Mapper.PPUNametableAddressMapped(address)), value)
	default:
		b.Palette.Write(int(paletteAddress(address)), value)
	}
}

// paletteAddress folds the $3F00-$3FFF range into the 32-byte palette RAM,
// aliasing the backdrop-color indices $10/$14/$18/$1C onto $00/$04/$08/$0C.
func paletteAddress(address uint16) uint16 {
	a := address & 0x1f
	if a&0b11 == 0 {
		return a &^ 0b10000
	}
	return a
}
