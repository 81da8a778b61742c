package cartridge

import "log"

// mapper009 implements MMC2. Grounded on polones-core/src/mapper/mapper_009.rs.
// The latch trigger ranges are intentionally asymmetric between the two CHR
// halves: the low half triggers on single addresses ($0FD8/$0FE8), the high
// half on ranges ($1FD8-$1FDF/$1FE8-$1FEF). That asymmetry is a real hardware
// quirk of the board and is reproduced here rather than normalized away.
type mapper009 struct {
	game *GameFile
	ram  *ramBlock // present only when the header declares 8 KiB PRG-RAM

	prgROMBankSelect uint8

	chrROMFD0BankSelect uint8
	chrROMFE0BankSelect uint8
	chrROMFD1BankSelect uint8
	chrROMFE1BankSelect uint8

	latch0FE bool
	latch1FE bool

	mirroringHorizontal bool
}

func newMapper009(game *GameFile) (*mapper009, error) {
	if len(game.PRGROM()) != 128*1024 {
		return nil, &ParseError{"mapper 009: unexpected PRG-ROM size"}
	}
	if game.CHRROM() == nil || len(game.CHRROM()) != 128*1024 {
		return nil, &ParseError{"mapper 009: unexpected CHR-ROM size"}
	}
	var ram *ramBlock
	if game.PRGRAMSize != nil {
		if *game.PRGRAMSize != 8*1024 {
			return nil, &ParseError{"mapper 009: unexpected PRG-RAM size"}
		}
		ram = newRAMBlock(8 * 1024)
	}
	return &mapper009{game: game, ram: ram}, nil
}

func (m *mapper009) CPUAddressMapped(address uint16) bool {
	return address >= 0x6000
}

func (m *mapper009) CPURead(address uint16) uint8 {
	prg := m.game.PRGROM()
	switch {
	case address <= 0x7fff:
		if m.ram != nil {
			return m.ram.read(int(address) - 0x6000)
		}
		log.Printf("mapper009: CPU read from %#04x with no PRG-RAM present", address)
		return 0
	case address <= 0x9fff:
		return prg[(int(m.prgROMBankSelect)*8*1024)|int(address&0x1fff)]
	case address <= 0xbfff:
		return prg[len(prg)-3*8*1024+int(address&0x1fff)]
	case address <= 0xdfff:
		return prg[len(prg)-2*8*1024+int(address&0x1fff)]
	default: // 0xE000-0xFFFF
		return prg[len(prg)-8*1024+int(address&0x1fff)]
	}
}

func (m *mapper009) CPUWrite(address uint16, value uint8) {
	switch {
	case address <= 0x7fff:
		if m.ram != nil {
			m.ram.write(int(address)-0x6000, value)
		}
	case address <= 0xafff:
		m.prgROMBankSelect = value & 0b1111
	case address <= 0xbfff:
		m.chrROMFD0BankSelect = value & 0b0001_1111
	case address <= 0xcfff:
		m.chrROMFE0BankSelect = value & 0b0001_1111
	case address <= 0xdfff:
		m.chrROMFD1BankSelect = value & 0b0001_1111
	case address <= 0xefff:
		m.chrROMFE1BankSelect = value & 0b0001_1111
	default: // 0xF000-0xFFFF
		m.mirroringHorizontal = value&1 != 0
	}
}

func (m *mapper009) PPUAddressMapped(address uint16) bool {
	return address <= 0x1fff
}

func (m *mapper009) PPURead(address uint16) uint8 {
	chr := m.game.CHRROM()
	mask := len(chr) - 1
	if address <= 0x0fff {
		var page uint8
		if m.latch0FE {
			page = m.chrROMFE0BankSelect
		} else {
			page = m.chrROMFD0BankSelect
		}
		result := chr[(int(page)*4*1024+int(address))&mask]
		switch address {
		case 0x0fd8:
			m.latch0FE = false
		case 0x0fe8:
			m.latch0FE = true
		}
		return result
	}
	var page uint8
	if m.latch1FE {
		page = m.chrROMFE1BankSelect
	} else {
		page = m.chrROMFD1BankSelect
	}
	result := chr[(int(page)*4*1024+int(address&0x0fff))&mask]
	switch {
	case address >= 0x1fd8 && address <= 0x1fdf:
		m.latch1FE = false
	case address >= 0x1fe8 && address <= 0x1fef:
		m.latch1FE = true
	}
	return result
}

func (m *mapper009) PPUWrite(address uint16, _ uint8) {
	log.Printf("mapper009: PPU write to %#04x ignored (CHR-ROM)", address)
}

func (m *mapper009) PPUNametableAddressMapped(address uint16) uint16 {
	return mirrorNametable(address, !m.mirroringHorizontal)
}

func (m *mapper009) Tick(IRQRaiser) {}
