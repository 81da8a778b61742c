package cartridge

import "log"

// mapper000 implements NROM. Grounded on polones-core/src/mapper/mapper_000.rs.
type mapper000 struct {
	game *GameFile
	ram  *ramBlock // present when the header declares PRG-RAM
}

// ramBlock is a tiny byte-array wrapper local to this package; mirrors
// polones' Ram<N> the same way internal/memory.Ram does, kept local since
// mapper-private RAM sizes vary per variant and per instance (optional 2/4
// KiB here, fixed 8/32 KiB elsewhere) in ways that don't warrant a shared
// exported type.
type ramBlock struct {
	data []uint8
	mask int
}

func newRAMBlock(size int) *ramBlock {
	return &ramBlock{data: make([]uint8, size), mask: size - 1}
}

func (r *ramBlock) read(addr int) uint8       { return r.data[addr&r.mask] }
func (r *ramBlock) write(addr int, v uint8)   { r.data[addr&r.mask] = v }

func newMapper000(game *GameFile) (*mapper000, error) {
	if len(game.PRGROM()) != 16*1024 && len(game.PRGROM()) != 32*1024 {
		return nil, &ParseError{"mapper 000: unexpected PRG-ROM size"}
	}
	if game.CHRROM() == nil || len(game.CHRROM()) != 8*1024 {
		return nil, &ParseError{"mapper 000: unexpected CHR-ROM size"}
	}

	var ram *ramBlock
	if game.PRGRAMSize != nil {
		size := *game.PRGRAMSize
		if size != 2*1024 && size != 4*1024 {
			return nil, &ParseError{"mapper 000: unexpected PRG-RAM size"}
		}
		ram = newRAMBlock(size)
	}

	return &mapper000{game: game, ram: ram}, nil
}

func (m *mapper000) CPUAddressMapped(address uint16) bool {
	switch {
	case address >= 0x6000 && address <= 0x7fff:
		return m.ram != nil
	case address >= 0x8000:
		return true
	default:
		return false
	}
}

func (m *mapper000) CPURead(address uint16) uint8 {
	switch {
	case address >= 0x6000 && address <= 0x7fff && m.ram != nil:
		return m.ram.read(int(address) - 0x6000)
	case address >= 0x8000:
		prg := m.game.PRGROM()
		return prg[int(address-0x8000)&(len(prg)-1)]
	default:
		log.Printf("mapper000: CPU read from %#04x out of bounds", address)
		return 0
	}
}

func (m *mapper000) CPUWrite(address uint16, value uint8) {
	switch {
	case address >= 0x6000 && address <= 0x7fff && m.ram != nil:
		m.ram.write(int(address)-0x6000, value)
	case address >= 0x8000:
		log.Printf("mapper000: CPU write to %#04x ignored", address)
	default:
		log.Printf("mapper000: CPU write to %#04x out of bounds", address)
	}
}

func (m *mapper000) PPUAddressMapped(address uint16) bool {
	return address <= 0x1fff
}

func (m *mapper000) PPURead(address uint16) uint8 {
	return m.game.CHRROM()[address]
}

func (m *mapper000) PPUWrite(address uint16, _ uint8) {
	log.Printf("mapper000: PPU write to %#04x ignored", address)
}

func (m *mapper000) PPUNametableAddressMapped(address uint16) uint16 {
	return mirrorNametable(address, m.game.Mirroring == MirrorVertical)
}

func (m *mapper000) Tick(IRQRaiser) {}
