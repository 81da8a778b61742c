package ppu

// Tick advances the PPU by one dot. The (scanline, dot) space is split into
// regions checked biggest-range first: visible scanlines 0-239 then the
// post-render/vblank scanlines 240-260, then the pre-render scanline 261,
// each further split into the draw/fetch, sprite-fetch, next-tile-fetch and
// garbage-read dot ranges.
func (p *PPU) Tick() {
	switch {
	case p.Scanline < 240:
		p.tickVisibleOrPreRender(false)
	case p.Scanline < 261:
		p.tickPostRenderAndVBlank()
	default:
		p.tickVisibleOrPreRender(true)
	}
}

func (p *PPU) tickPostRenderAndVBlank() {
	if p.Scanline == 241 && p.Dot == 1 {
		p.vblank = true
		p.status |= statusVblank
		if p.control&ctrlNMIEnable != 0 {
			p.nmi.NMI()
		}
	}
	if p.Dot == 340 {
		p.Dot = 0
		p.Scanline++
	} else {
		p.Dot++
	}
}

func (p *PPU) tickVisibleOrPreRender(preRender bool) {
	switch {
	case p.Dot < 257:
		if p.Dot > 0 {
			if preRender && p.Dot == 1 {
				p.vblank = false
				p.status &^= statusVblank | statusSprite0Hit | statusSpriteOverflow
			}
			if !preRender {
				if p.Dot == 64 {
					p.clearSecondaryOAM()
				} else if p.Dot == 256 {
					p.evaluateSprites()
				}
				p.drawPixel()
			}
			p.fetchBackgroundTiles()
			p.rotateShiftRegisters()
			p.loadShiftRegisters()
			p.rotateSpritePatterns()
		}
		p.Dot++
	case p.Dot < 321:
		p.fetchSprites()
		switch p.Dot {
		case 320:
			p.fetchSprites8to64()
		case 257:
			p.updateScrollHorizontal()
		default:
			if preRender && p.Dot >= 280 && p.Dot <= 304 {
				p.updateScrollVertical()
			}
		}
		p.Dot++
	case p.Dot < 337:
		p.fetchBackgroundTiles()
		p.rotateShiftRegisters()
		p.loadShiftRegisters()
		p.Dot++
	default:
		if p.Dot&1 == 1 {
			p.nametableByte = p.bus.Read(0x2000 + p.v&0x0fff)
		}
		if p.Dot == 340 {
			if preRender {
				p.Scanline = 0
				if p.odd {
					p.Dot = 1
				} else {
					p.Dot = 0
				}
				p.odd = !p.odd
			} else {
				p.Dot = 0
				p.Scanline++
			}
		} else {
			p.Dot++
		}
	}
}

func (p *PPU) rotateShiftRegisters() {
	p.patternLowShift <<= 1
	p.patternHighShift <<= 1
	p.attributeLowShift <<= 1
	p.attributeHighShift <<= 1
}

func (p *PPU) loadShiftRegisters() {
	if p.Dot&0b111 != 0 {
		return
	}
	p.patternLowShift |= uint16(p.bgTileByteLow)
	p.patternHighShift |= uint16(p.bgTileByteHigh)
	if p.attribute&0b01 != 0 {
		p.attributeLowShift |= 0xff
	}
	if p.attribute&0b10 != 0 {
		p.attributeHighShift |= 0xff
	}
}

func (p *PPU) rotateSpritePatterns() {
	for i := 0; i < p.spritesCurrentLine; i++ {
		if p.spriteCounters[i] > 0 {
			p.spriteCounters[i]--
		} else {
			p.spritePatternsLow[i] <<= 1
			p.spritePatternsHigh[i] <<= 1
		}
	}
}

func (p *PPU) fetchBackgroundTiles() {
	switch (p.Dot - 1) & 0b111 {
	case 0:
		p.nametableByte = p.bus.Read(0x2000 | (p.v & 0x0fff))
	case 2:
		attributeByte := p.bus.Read(0x2000 |
			(nametableSel(p.v) << 10) |
			0x03c0 |
			(coarseY(p.v)>>2<<3) |
			(coarseX(p.v) >> 2))
		p.attribute = (attributeByte >> ((coarseY(p.v) & 2) << 1) >> (coarseX(p.v) & 2)) & 0b11
	case 4:
		bgTable := uint16(0)
		if p.control&ctrlBGTileSelect != 0 {
			bgTable = 1
		}
		p.bgTileByteLow = p.bus.Read(bgTable<<12 | uint16(p.nametableByte)<<4 | fineY(p.v))
	case 6:
		bgTable := uint16(0)
		if p.control&ctrlBGTileSelect != 0 {
			bgTable = 1
		}
		p.bgTileByteHigh = p.bus.Read(bgTable<<12 | uint16(p.nametableByte)<<4 | 0b1000 | fineY(p.v))
	case 7:
		if p.Dot != 256 {
			if p.isRenderingEnabled() {
				p.incrementVHorizontal()
			}
		} else {
			if p.isRenderingEnabled() {
				p.incrementVHorizontal()
				p.incrementVVertical()
			}
		}
	}
}

func (p *PPU) fetchSprites() {
	nth := p.Dot - 257
	spriteNumber := int(nth >> 3)
	switch nth & 0b111 {
	case 0:
		p.bus.Read(0x2000)
	case 2:
		p.bus.Read(0x23c0)
		p.spriteAttributes[spriteNumber] = p.secondaryOAM[spriteNumber*4+2]
	case 3:
		p.spriteCounters[spriteNumber] = p.secondaryOAM[spriteNumber*4+3]
	case 4:
		p.setSpritePattern(spriteNumber, false)
	case 6:
		p.setSpritePattern(spriteNumber, true)
	}
}

func (p *PPU) fetchSprites8to64() {
	for i := 8; i < p.spriteLimit; i++ {
		p.spriteCounters[i] = p.secondaryOAM[i*4+3]
		p.setSpritePattern(i, false)
		p.setSpritePattern(i, true)
	}
	p.sprite0CurScanline = p.sprite0NextScanline
	p.spritesCurrentLine = p.spritesNextLine
}
