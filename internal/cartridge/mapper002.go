package cartridge

// mapper002 implements UxROM. Grounded on polones-core/src/mapper/mapper_002.rs.
type mapper002 struct {
	game    *GameFile
	prgBank uint8
	chrRAM  *ramBlock // present when the cartridge has no CHR-ROM
}

func newMapper002(game *GameFile) (*mapper002, error) {
	if len(game.PRGROM()) == 0 {
		return nil, &ParseError{"mapper 002: empty PRG-ROM"}
	}
	var chrRAM *ramBlock
	if game.CHRROM() == nil {
		chrRAM = newRAMBlock(8 * 1024)
	}
	return &mapper002{game: game, chrRAM: chrRAM}, nil
}

func (m *mapper002) CPUAddressMapped(address uint16) bool {
	return address >= 0x8000
}

func (m *mapper002) CPURead(address uint16) uint8 {
	prg := m.game.PRGROM()
	if address <= 0xbfff {
		return prg[((int(m.prgBank)<<14)&(len(prg)-1))|int(address&0x3fff)]
	}
	return prg[(len(prg)-0x4000)|int(address&0x3fff)]
}

func (m *mapper002) CPUWrite(address uint16, value uint8) {
	m.prgBank = value
}

func (m *mapper002) PPUAddressMapped(address uint16) bool {
	return address <= 0x1fff
}

func (m *mapper002) PPURead(address uint16) uint8 {
	if chr := m.game.CHRROM(); chr != nil {
		return chr[address]
	}
	return m.chrRAM.read(int(address))
}

func (m *mapper002) PPUWrite(address uint16, value uint8) {
	if m.game.CHRROM() == nil {
		m.chrRAM.write(int(address), value)
	}
}

func (m *mapper002) PPUNametableAddressMapped(address uint16) uint16 {
	return mirrorNametable(address, m.game.Mirroring == MirrorVertical)
}

func (m *mapper002) Tick(IRQRaiser) {}
