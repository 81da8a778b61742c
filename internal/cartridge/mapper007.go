package cartridge

// mapper007 implements AxROM. Grounded on polones-core/src/mapper/mapper_007.rs.
// CHR is always RAM for this board; there is no CHR-ROM variant.
type mapper007 struct {
	game *GameFile
	chr  *ramBlock

	prgROMPrefix          int
	nametableAddressPrefix uint16
}

func newMapper007(game *GameFile) (*mapper007, error) {
	prgLen := len(game.PRGROM())
	if prgLen > 512*1024 || prgLen%(32*1024) != 0 {
		return nil, &ParseError{"mapper 007: unexpected PRG-ROM size"}
	}
	return &mapper007{game: game, chr: newRAMBlock(8 * 1024)}, nil
}

func (m *mapper007) CPUAddressMapped(address uint16) bool {
	return address >= 0x8000
}

func (m *mapper007) CPURead(address uint16) uint8 {
	prg := m.game.PRGROM()
	return prg[m.prgROMPrefix|int(address&0x7fff)]
}

func (m *mapper007) CPUWrite(address uint16, value uint8) {
	bankSizeMask := (len(m.game.PRGROM()) >> 15) - 1
	bank := int(value & 0b1111)
	m.prgROMPrefix = (bank & bankSizeMask) << 15
	m.nametableAddressPrefix = uint16((value&0b1_0000)>>4) << 10
}

func (m *mapper007) PPUAddressMapped(address uint16) bool {
	return address <= 0x1fff
}

func (m *mapper007) PPURead(address uint16) uint8 {
	return m.chr.read(int(address))
}

func (m *mapper007) PPUWrite(address uint16, value uint8) {
	m.chr.write(int(address), value)
}

func (m *mapper007) PPUNametableAddressMapped(address uint16) uint16 {
	return (address & 0b11_1111_1111) | m.nametableAddressPrefix
}

func (m *mapper007) Tick(IRQRaiser) {}
