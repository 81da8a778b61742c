package cartridge

// mapper003 implements CNROM. Grounded on polones-core/src/mapper/mapper_003.rs.
type mapper003 struct {
	game        *GameFile
	chrROMBank  uint8
}

func newMapper003(game *GameFile) (*mapper003, error) {
	if len(game.PRGROM()) != 16*1024 && len(game.PRGROM()) != 32*1024 {
		return nil, &ParseError{"mapper 003: unexpected PRG-ROM size"}
	}
	if game.CHRROM() == nil || len(game.CHRROM()) > 2048*1024 {
		return nil, &ParseError{"mapper 003: unexpected CHR-ROM size"}
	}
	return &mapper003{game: game}, nil
}

func (m *mapper003) CPUAddressMapped(address uint16) bool {
	return address >= 0x8000
}

func (m *mapper003) CPURead(address uint16) uint8 {
	prg := m.game.PRGROM()
	return prg[int(address-0x8000)&(len(prg)-1)]
}

func (m *mapper003) CPUWrite(address uint16, value uint8) {
	m.chrROMBank = value
}

func (m *mapper003) PPUAddressMapped(address uint16) bool {
	return address <= 0x1fff
}

func (m *mapper003) PPURead(address uint16) uint8 {
	chr := m.game.CHRROM()
	page := (8 * 1024 * int(m.chrROMBank)) & (len(chr) - 1)
	return chr[page|int(address)]
}

func (m *mapper003) PPUWrite(uint16, uint8) {}

func (m *mapper003) PPUNametableAddressMapped(address uint16) uint16 {
	return mirrorNametable(address, m.game.Mirroring == MirrorVertical)
}

func (m *mapper003) Tick(IRQRaiser) {}
