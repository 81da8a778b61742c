package cartridge

// mapper001 implements MMC1. Grounded on polones-core/src/mapper/mapper_001.rs.
type mapper001 struct {
	game *GameFile

	control         uint8
	loadRegister    uint8
	loadRegisterLen uint8
	chrBank0        uint8
	chrBank1        uint8
	prgBank         uint8

	ram *ramBlock // 32 KiB PRG-RAM at $6000-$7FFF
}

func newMapper001(game *GameFile) (*mapper001, error) {
	return &mapper001{
		game:    game,
		control: 0b01100,
		ram:     newRAMBlock(32 * 1024),
	}, nil
}

func (m *mapper001) CPUAddressMapped(address uint16) bool {
	return address >= 0x6000
}

func (m *mapper001) CPURead(address uint16) uint8 {
	prg := m.game.PRGROM()
	switch {
	case address >= 0x6000 && address <= 0x7fff:
		return m.ram.read(int(address) - 0x6000)
	case address >= 0x8000 && address <= 0xbfff:
		switch (m.control >> 2) & 0b11 {
		case 0, 1:
			return prg[(int(m.prgBank&0b11110)<<14)|int(address&0x3fff)]
		case 2:
			return prg[int(address&0x3fff)]
		default: // 3
			return prg[(int(m.prgBank)<<14)|int(address&0x3fff)]
		}
	default: // 0xC000-0xFFFF
		switch (m.control >> 2) & 0b11 {
		case 0, 1:
			return prg[(int(m.prgBank|0b00001)<<14)|int(address&0x3fff)]
		case 2:
			return prg[(int(m.prgBank)<<14)|int(address&0x3fff)]
		default: // 3
			return prg[len(prg)-0x4000+int(address&0x3fff)]
		}
	}
}

func (m *mapper001) CPUWrite(address uint16, value uint8) {
	switch {
	case address >= 0x6000 && address <= 0x7fff:
		m.ram.write(int(address)-0x6000, value)
	default: // 0x8000-0xFFFF
		if value&0b10000000 != 0 {
			m.loadRegister = 0
			m.loadRegisterLen = 0
			m.control |= 0x0c
			return
		}
		m.loadRegister = (m.loadRegister << 1) | (value & 1)
		m.loadRegisterLen++
		if m.loadRegisterLen == 5 {
			switch {
			case address <= 0x9fff:
				m.control = m.loadRegister
			case address <= 0xbfff:
				m.chrBank0 = m.loadRegister
			case address <= 0xdfff:
				m.chrBank1 = m.loadRegister
			default:
				m.prgBank = m.loadRegister
			}
			m.loadRegister = 0
			m.loadRegisterLen = 0
		}
	}
}

func (m *mapper001) lowerCHRBank() uint16 {
	if m.control&0b10000 != 0 {
		return 0x1000 * uint16(m.chrBank0)
	}
	return 0x1000 * uint16(m.chrBank0&0b11110)
}

func (m *mapper001) upperCHRBank() uint16 {
	if m.control&0b10000 != 0 {
		return 0x1000 * uint16(m.chrBank1)
	}
	return 0x1000 * uint16(m.chrBank0|0b00001)
}

func (m *mapper001) PPUAddressMapped(address uint16) bool {
	return address <= 0x1fff
}

func (m *mapper001) PPURead(address uint16) uint8 {
	chr := m.game.CHRROM()
	if address <= 0x0fff {
		return chr[(m.lowerCHRBank()|(address&0x0fff))]
	}
	return chr[(m.upperCHRBank() | (address & 0x0fff))]
}

func (m *mapper001) PPUWrite(uint16, uint8) {}

func (m *mapper001) PPUNametableAddressMapped(address uint16) uint16 {
	switch m.control & 0b11 {
	case 0:
		return address & 0b0000_0011_1111_1111
	case 1:
		return (address & 0b0000_0011_1111_1111) | 0b0000_0100_0000_0000
	case 2:
		return address & 0b0000_0111_1111_1111
	default: // 3, horizontal
		return (address & 0b0000_0011_1111_1111) | ((address & 0b0000_1000_0000_0000) >> 1)
	}
}

func (m *mapper001) Tick(IRQRaiser) {}
