package cartridge

import "log"

// mapper004 implements MMC3. Grounded on polones-core/src/mapper/mapper_004.rs.
// The MMC3 revision modeled is left unstated, matching the reference source's
// open question (see DESIGN.md); the A12-edge IRQ filter below is carried
// over exactly, including firing from both PPU reads and writes.
type mapper004 struct {
	game *GameFile
	ram  *ramBlock

	bankToUpdate       uint8
	prgROMBankMode     bool
	chrA12Inversion    bool
	nametableMirroring bool
	ramWriteProtect    bool
	ramEnable          bool

	irqLatch     uint8
	irqCounter   uint8
	irqEnabled   bool
	irqReload    bool
	irqRequested bool

	r0, r1, r2, r3, r4, r5, r6, r7 uint8

	cycleCountA12High uint64
	cycleCount        uint64
}

func newMapper004(game *GameFile) (*mapper004, error) {
	var ram *ramBlock
	// Only NES 2.0 can positively confirm RAM presence; for other formats assume present.
	if (game.Format == FormatNes20 && game.PRGRAMSize != nil) || game.Format != FormatNes20 {
		ram = newRAMBlock(8 * 1024)
	}
	return &mapper004{game: game, ram: ram, cycleCount: 10}, nil
}

func (m *mapper004) updateA12(address uint16) {
	a12High := address&0b0001_0000_0000_0000 != 0

	if a12High && absDiffU64(m.cycleCount, m.cycleCountA12High) > 4 {
		if m.irqCounter == 0 || m.irqReload {
			m.irqCounter = m.irqLatch
			m.irqReload = false
		} else {
			m.irqCounter--
		}
		if m.irqCounter == 0 && m.irqEnabled {
			m.irqRequested = true
		}
	}

	if a12High {
		m.cycleCountA12High = m.cycleCount
	}
}

func absDiffU64(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}

func (m *mapper004) CPUAddressMapped(address uint16) bool {
	switch {
	case address >= 0x6000 && address <= 0x7fff:
		return m.ram != nil
	case address >= 0x8000:
		return true
	default:
		return false
	}
}

func (m *mapper004) CPURead(address uint16) uint8 {
	prg := m.game.PRGROM()
	rel := int(address & 0x1fff)
	switch {
	case address >= 0x6000 && address <= 0x7fff:
		if m.ram != nil && m.ramEnable {
			return m.ram.read(int(address) - 0x6000)
		}
		return 0
	case address <= 0x9fff:
		if m.prgROMBankMode {
			return prg[(len(prg)-0x4000)|rel]
		}
		return prg[(int(m.r6)<<13)|rel]
	case address <= 0xbfff:
		return prg[(int(m.r7)<<13)|rel]
	case address <= 0xdfff:
		if m.prgROMBankMode {
			return prg[(int(m.r6)<<13)|rel]
		}
		return prg[(len(prg)-0x4000)|rel]
	default: // 0xE000-0xFFFF
		return prg[(len(prg)-0x2000)|rel]
	}
}

func (m *mapper004) CPUWrite(address uint16, value uint8) {
	switch {
	case address >= 0x6000 && address <= 0x7fff:
		if m.ram != nil && m.ramEnable && !m.ramWriteProtect {
			m.ram.write(int(address)-0x6000, value)
		}
	case address <= 0x9fff && address%2 == 0:
		m.bankToUpdate = value & 0b111
		m.prgROMBankMode = value&0b0100_0000 != 0
		m.chrA12Inversion = value&0b1000_0000 != 0
	case address <= 0x9fff:
		switch m.bankToUpdate {
		case 0:
			m.r0 = value & 0b1111_1110
		case 1:
			m.r1 = value & 0b1111_1110
		case 2:
			m.r2 = value
		case 3:
			m.r3 = value
		case 4:
			m.r4 = value
		case 5:
			m.r5 = value
		case 6:
			m.r6 = value & 0b0011_1111
		default:
			m.r7 = value & 0b0011_1111
		}
	case address <= 0xbfff && address%2 == 0:
		m.nametableMirroring = value&1 != 0
	case address <= 0xbfff:
		m.ramWriteProtect = value&0b0100_0000 != 0
		m.ramEnable = value&0b1000_0000 != 0
	case address <= 0xdfff && address%2 == 0:
		m.irqLatch = value
	case address <= 0xdfff:
		m.irqReload = true
	case address%2 == 0:
		m.irqEnabled = false
	default:
		m.irqEnabled = true
	}
}

func (m *mapper004) PPUAddressMapped(address uint16) bool {
	return address <= 0x1fff
}

func (m *mapper004) PPURead(address uint16) uint8 {
	chr := m.game.CHRROM()
	mask := len(chr) - 1
	rel := int(address & 0x03ff)
	var byteValue uint8
	switch {
	case address <= 0x03ff:
		if m.chrA12Inversion {
			byteValue = chr[(int(m.r2)<<10|rel)&mask]
		} else {
			byteValue = chr[(int(m.r0)<<10|rel)&mask]
		}
	case address <= 0x07ff:
		if m.chrA12Inversion {
			byteValue = chr[(int(m.r3)<<10|rel)&mask]
		} else {
			byteValue = chr[(int(m.r0|1)<<10|rel)&mask]
		}
	case address <= 0x0bff:
		if m.chrA12Inversion {
			byteValue = chr[(int(m.r4)<<10|rel)&mask]
		} else {
			byteValue = chr[(int(m.r1)<<10|rel)&mask]
		}
	case address <= 0x0fff:
		if m.chrA12Inversion {
			byteValue = chr[(int(m.r5)<<10|rel)&mask]
		} else {
			byteValue = chr[(int(m.r1|1)<<10|rel)&mask]
		}
	case address <= 0x13ff:
		if m.chrA12Inversion {
			byteValue = chr[(int(m.r0)<<10|rel)&mask]
		} else {
			byteValue = chr[(int(m.r2)<<10|rel)&mask]
		}
	case address <= 0x17ff:
		if m.chrA12Inversion {
			byteValue = chr[(int(m.r0|1)<<10|rel)&mask]
		} else {
			byteValue = chr[(int(m.r3)<<10|rel)&mask]
		}
	case address <= 0x1bff:
		if m.chrA12Inversion {
			byteValue = chr[(int(m.r1)<<10|rel)&mask]
		} else {
			byteValue = chr[(int(m.r4)<<10|rel)&mask]
		}
	default: // 0x1C00-0x1FFF
		if m.chrA12Inversion {
			byteValue = chr[(int(m.r1|1)<<10|rel)&mask]
		} else {
			byteValue = chr[(int(m.r5)<<10|rel)&mask]
		}
	}
	m.updateA12(address)
	return byteValue
}

func (m *mapper004) PPUWrite(address uint16, _ uint8) {
	log.Printf("mapper004: PPU write to %#04x ignored", address)
	m.updateA12(address)
}

func (m *mapper004) PPUNametableAddressMapped(address uint16) uint16 {
	return mirrorNametable(address, !m.nametableMirroring)
}

func (m *mapper004) Tick(irq IRQRaiser) {
	if m.irqRequested {
		m.irqRequested = false
		irq.IRQ()
	}
	m.cycleCount++
}
