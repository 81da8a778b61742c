package ppu

func between(start, end, value uint8) bool {
	return value >= start && value < end
}

func (p *PPU) clearSecondaryOAM() {
	for i := range p.secondaryOAM {
		p.secondaryOAM[i] = 0xff
	}
}

// evaluateSprites runs once per visible scanline, at dot 256, selecting up
// to spriteLimit in-range sprites for the NEXT scanline into secondary OAM
// and flagging overflow using the authentic hardware bug: once the eighth
// in-range sprite is found, the comparison continues but corrupts its own
// read offset by advancing `m` a false step each failed match.
func (p *PPU) evaluateSprites() {
	n := 0
	nOnOverflow := 0
	spritesFound := 0
	spriteHeight := uint8(8)
	if p.control&ctrlSpriteHeight != 0 {
		spriteHeight = 16
	}

	p.sprite0NextScanline = false

	for {
		y := p.oam[n*4+0]

		// The first OAM byte is copied to secondary OAM before the Y-range
		// check runs, exactly like the PPU_OAM wiki describes; this can in
		// principle paint a broken sprite for one pixel per line, but since
		// sprites_next_line is only set to the count of *matching* sprites,
		// that copy never becomes visible.
		p.secondaryOAM[spritesFound*4+0] = y

		end := y + spriteHeight
		if end < y {
			end = 0xff
		}
		if between(y, end, uint8(p.Scanline)) {
			p.secondaryOAM[spritesFound*4+1] = p.oam[n*4+1]
			p.secondaryOAM[spritesFound*4+2] = p.oam[n*4+2]
			p.secondaryOAM[spritesFound*4+3] = p.oam[n*4+3]
			spritesFound++
			if n == 0 {
				p.sprite0NextScanline = true
			}
		}
		n++
		if n == 64 {
			break
		}
		if spritesFound == 8 {
			nOnOverflow = n
		}
		if spritesFound == p.spriteLimit {
			break
		}
	}

	if spritesFound == 8 {
		m := 0
		n = nOnOverflow
		for n < 64 {
			y := p.oam[n*4+m]
			end := y + spriteHeight
			if end < y {
				end = 0xff
			}
			if between(y, end, uint8(p.Scanline)) {
				p.status |= statusSpriteOverflow
				break
			}
			n++
			m = (n + 1) & 0b11 // hardware bug: corrupts the read offset on each miss
			if n == 64 {
				break
			}
		}
	}

	p.spritesNextLine = spritesFound
}

func (p *PPU) setSpritePattern(spriteNumber int, patternHigh bool) {
	y := uint16(p.secondaryOAM[spriteNumber*4+0])
	index := p.secondaryOAM[spriteNumber*4+1]
	attributes := p.secondaryOAM[spriteNumber*4+2]
	flipH := attributes&0b0100_0000 != 0
	flipV := attributes&0b1000_0000 != 0

	spriteHeight := uint16(8)
	if p.control&ctrlSpriteHeight != 0 {
		spriteHeight = 16
	}

	target := &p.spritePatternsLow
	if patternHigh {
		target = &p.spritePatternsHigh
	}

	scanlineOffset := (p.Scanline - y) & (spriteHeight - 1)

	var characterTable uint16
	var tileOffset uint8
	var tileRowNumber uint16

	if spriteHeight == 8 {
		if p.control&ctrlSpriteTileSel != 0 {
			characterTable = 1
		}
		tileOffset = index
		if flipV {
			tileRowNumber = 7 - scanlineOffset
		} else {
			tileRowNumber = scanlineOffset
		}
	} else {
		characterTable = uint16(index & 1)
		if flipV {
			tileOffset = (index &^ 1) | uint8((scanlineOffset>>3)^1)
			tileRowNumber = 7 - (scanlineOffset & 0b111)
		} else {
			tileOffset = (index &^ 1) | uint8(scanlineOffset>>3)
			tileRowNumber = scanlineOffset & 0b111
		}
	}

	patternHighBit := uint16(0)
	if patternHigh {
		patternHighBit = 1
	}
	tileRow := p.bus.Read(characterTable<<12 | uint16(tileOffset)<<4 | patternHighBit<<3 | tileRowNumber)

	if flipH {
		tileRow = reverseBits(tileRow)
	}
	target[spriteNumber] = tileRow
}

func reverseBits(b uint8) uint8 {
	var r uint8
	for i := 0; i < 8; i++ {
		r = r<<1 | (b & 1)
		b >>= 1
	}
	return r
}

func (p *PPU) bgColorAt(color, pal uint8) uint8 {
	if color == 0 {
		return p.bus.Read(0x3f00)
	}
	return p.bus.Read(0x3f00 | uint16(pal)<<2 | uint16(color))
}

func (p *PPU) fgColorAt(color, pal uint8) uint8 {
	if color == 0 {
		return p.bus.Read(0x3f10)
	}
	return p.bus.Read(0x3f10 | uint16(pal)<<2 | uint16(color))
}

// drawPixel renders one output pixel per call at dots 1-256 of every
// visible scanline, combining the background shift-register output with
// up to 8 active sprites and resolving sprite-0-hit and priority.
func (p *PPU) drawPixel() {
	var haveBG, haveFG bool
	var bgColor, bgPalette uint8
	var fgColor, fgPalette uint8
	var fgPriorityBack bool
	var fgSpriteIndex int

	if p.mask&maskShowBackground != 0 && !(p.mask&maskShowBGLeft == 0 && p.Dot <= 8) {
		shift := uint16(0b1000_0000_0000_0000) >> p.x
		lo := boolBit(p.patternLowShift&shift != 0)
		hi := boolBit(p.patternHighShift&shift != 0)
		bgColor = hi<<1 | lo
		plo := boolBit(p.attributeLowShift&shift != 0)
		phi := boolBit(p.attributeHighShift&shift != 0)
		bgPalette = phi<<1 | plo
		haveBG = true
	}

	if p.mask&maskShowSprites != 0 && !(p.mask&maskShowSpritesLeft == 0 && p.Dot <= 8) {
		for i := 0; i < p.spritesCurrentLine; i++ {
			if p.spriteCounters[i] != 0 {
				continue
			}
			lo := p.spritePatternsLow[i] >> 7
			hi := p.spritePatternsHigh[i] >> 7
			if lo == 0 && hi == 0 {
				continue
			}
			fgColor = hi<<1 | lo
			fgPalette = p.spriteAttributes[i] & 0b11
			fgPriorityBack = (p.spriteAttributes[i]>>5)&1 == 1
			fgSpriteIndex = i
			haveFG = true
			break
		}
	}

	var color uint8
	switch {
	case haveFG && haveBG:
		if p.sprite0CurScanline && p.Dot != 256 && fgSpriteIndex == 0 && fgColor != 0 && bgColor != 0 {
			p.sprite0CurScanline = false
			p.status |= statusSprite0Hit
		}
		if (!fgPriorityBack && fgColor != 0) || bgColor == 0 {
			color = p.fgColorAt(fgColor, fgPalette)
		} else {
			color = p.bgColorAt(bgColor, bgPalette)
		}
	case haveFG:
		color = p.fgColorAt(fgColor, fgPalette)
	case haveBG:
		color = p.bgColorAt(bgColor, bgPalette)
	default:
		addr := p.v & 0b0011_1111_1111_1111
		if addr >= 0x3f00 {
			color = p.bus.Read(addr) & 0b0011_1111
		} else {
			color = p.bus.Read(0x3f00) & 0b0011_1111
		}
	}

	row := p.frameIndex / 256
	col := p.frameIndex % 256
	p.frame[row][col] = packRGB(palette[color&0x3f])
	p.frameIndex++
	if p.frameIndex == 256*240 {
		p.frameIndex = 0
		p.FrameCount++
	}
}

func boolBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
