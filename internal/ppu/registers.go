package ppu

import "log"

// ReadRegister handles a CPU read from $2000-$2007 (already demirrored by
// the bus to one of these eight addresses).
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch 0x2000 + address&7 {
	case 0x2002:
		result := p.status
		p.status &^= statusVblank
		p.w = false
		return result
	case 0x2004:
		return p.oam[p.oamAddress]
	case 0x2007:
		var result uint8
		if p.v&0x3fff < 0x3f00 {
			result = p.readBuffer
			p.readBuffer = p.bus.Read(p.v)
		} else {
			result = p.bus.Read(p.v)
			p.readBuffer = p.bus.Read((p.v & 0x3fff) - 0x1000)
		}
		p.advanceAddress()
		return result
	default:
		log.Printf("ppu: read from write-only register %#04x", address)
		return 0
	}
}

// WriteRegister handles a CPU write to $2000-$2007.
func (p *PPU) WriteRegister(address uint16, value uint8) {
	switch 0x2000 + address&7 {
	case 0x2000:
		p.control = value
		setNametableSel(&p.t, uint16(value&ctrlNametableMask))
	case 0x2001:
		p.mask = value
	case 0x2003:
		p.oamAddress = value
	case 0x2004:
		p.oam[p.oamAddress] = value
		p.oamAddress++
	case 0x2005:
		if !p.w {
			setCoarseX(&p.t, uint16(value>>3))
			p.x = value & 0b111
		} else {
			setCoarseY(&p.t, uint16(value>>3))
			setFineY(&p.t, uint16(value))
		}
		p.w = !p.w
	case 0x2006:
		if !p.w {
			p.t = (p.t & 0x00ff) | (uint16(value)<<8)&0b0011_1111_1111_1111
		} else {
			p.t = (p.t & 0xff00) | uint16(value)&0b0011_1111_1111_1111
			p.v = p.t
		}
		p.w = !p.w
	case 0x2007:
		p.bus.Write(p.v&0b0011_1111_1111_1111, value)
		p.advanceAddress()
	default:
		log.Printf("ppu: write to unmapped register %#04x ignored", address)
	}
}

func (p *PPU) advanceAddress() {
	step := uint16(1)
	if p.control&ctrlIncrementMode != 0 {
		step = 32
	}
	p.v = (p.v + step) & 0b0011_1111_1111_1111
}
