// Package ppu implements the 2C02 picture processing unit as a dot-accurate
// shift-register pipeline. Tick() advances exactly one PPU dot; the
// (scanline, dot) space is split into named regions dispatched biggest-range
// first, the same region layout the reference emulator uses to keep the
// common-case path (background rendering) reachable with two comparisons.
//
// Grounded on polones-core/src/ppu.rs.
package ppu

// Bus is the narrow view of the PPU address space (pattern tables,
// nametables, palette RAM) the PPU ticks against.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// NMITrigger is the minimal view of the CPU the PPU needs to raise NMI.
type NMITrigger interface {
	NMI()
}

const (
	ctrlNMIEnable       = 1 << 7
	ctrlSpriteHeight    = 1 << 5
	ctrlBGTileSelect    = 1 << 4
	ctrlSpriteTileSel   = 1 << 3
	ctrlIncrementMode   = 1 << 2
	ctrlNametableMask   = 0b11

	maskShowSpritesLeft = 1 << 2
	maskShowBGLeft      = 1 << 1
	maskShowBackground  = 1 << 3
	maskShowSprites     = 1 << 4

	statusVblank         = 1 << 7
	statusSprite0Hit     = 1 << 6
	statusSpriteOverflow = 1 << 5
)

// PPU holds the full 2C02 pipeline state: scroll registers, background
// shift registers, sprite evaluation scratch space, and the assembled
// frame buffer.
type PPU struct {
	bus Bus
	nmi NMITrigger

	Scanline uint16
	Dot      uint16

	control uint8
	mask    uint8
	status  uint8

	vblank      bool
	oamAddress  uint8
	readBuffer  uint8

	v, t uint16 // loopy registers: fine-Y(3) | nametable(2) | coarseY(5) | coarseX(5)
	x    uint8
	w    bool

	odd bool

	patternLowShift, patternHighShift     uint16
	attributeLowShift, attributeHighShift uint16

	nametableByte           uint8
	attribute               uint8
	bgTileByteLow           uint8
	bgTileByteHigh          uint8

	oam [256]uint8

	spriteLimit         int
	secondaryOAM        [256]uint8
	spritePatternsLow   [64]uint8
	spritePatternsHigh  [64]uint8
	spriteAttributes    [64]uint8
	spriteCounters      [64]uint8
	sprite0NextScanline bool
	sprite0CurScanline  bool
	spritesNextLine     int
	spritesCurrentLine  int

	frame      [240][256]uint32
	frameIndex int
	FrameCount uint64
}

// New returns a powered-up PPU wired against bus and nmi. nmi may be nil if
// the caller has not yet constructed the CPU; SetNMITrigger fills it in
// once the cyclic CPU/bus/PPU wiring is complete.
func New(bus Bus, nmi NMITrigger) *PPU {
	return &PPU{
		bus:          bus,
		nmi:          nmi,
		spriteLimit:  8,
		secondaryOAM: [256]uint8{},
	}
}

// SetNMITrigger completes construction for callers that could not supply
// the NMI target until after the PPU itself was built.
func (p *PPU) SetNMITrigger(nmi NMITrigger) { p.nmi = nmi }

func (p *PPU) Reset() {
	*p = *New(p.bus, p.nmi)
	for i := range p.secondaryOAM {
		p.secondaryOAM[i] = 0xff
	}
	for i := range p.spriteCounters {
		p.spriteCounters[i] = 0xff
	}
}

func (p *PPU) isRenderingEnabled() bool {
	return p.mask&(maskShowBackground|maskShowSprites) != 0
}

// Loopy accessors. v/t layout: yyy NN YYYYY XXXXX (fine Y, nametable, coarse Y, coarse X).
func coarseX(l uint16) uint16     { return l & 0b11111 }
func setCoarseX(l *uint16, x uint16) { *l = (*l &^ 0b11111) | (x & 0b11111) }
func coarseY(l uint16) uint16     { return (l >> 5) & 0b11111 }
func setCoarseY(l *uint16, y uint16) { *l = (*l &^ (0b11111 << 5)) | ((y & 0b11111) << 5) }
func nametableSel(l uint16) uint16 { return (l >> 10) & 0b11 }
func setNametableSel(l *uint16, n uint16) {
	*l = (*l &^ (0b11 << 10)) | ((n & 0b11) << 10)
}
func fineY(l uint16) uint16 { return (l >> 12) & 0b111 }
func setFineY(l *uint16, y uint16) {
	*l = (*l &^ (0b111 << 12)) | ((y & 0b111) << 12)
}

func (p *PPU) incrementVHorizontal() {
	if coarseX(p.v) == 31 {
		setCoarseX(&p.v, 0)
		setNametableSel(&p.v, nametableSel(p.v)^0b01)
	} else {
		setCoarseX(&p.v, coarseX(p.v)+1)
	}
}

func (p *PPU) incrementVVertical() {
	if fineY(p.v) < 7 {
		setFineY(&p.v, fineY(p.v)+1)
		return
	}
	setFineY(&p.v, 0)
	switch coarseY(p.v) {
	case 29:
		setCoarseY(&p.v, 0)
		setNametableSel(&p.v, nametableSel(p.v)^0b10)
	case 31:
		setCoarseY(&p.v, 0)
	default:
		setCoarseY(&p.v, coarseY(p.v)+1)
	}
}

func (p *PPU) updateScrollHorizontal() {
	if !p.isRenderingEnabled() {
		return
	}
	setCoarseX(&p.v, coarseX(p.t))
	setNametableSel(&p.v, (nametableSel(p.v)&0b10)|(nametableSel(p.t)&0b01))
}

func (p *PPU) updateScrollVertical() {
	if !p.isRenderingEnabled() {
		return
	}
	setCoarseY(&p.v, coarseY(p.t))
	setFineY(&p.v, fineY(p.t))
	setNametableSel(&p.v, (nametableSel(p.v)&0b01)|(nametableSel(p.t)&0b10))
}

// FrameBuffer returns the 256x240 RGB buffer the PPU draws into, packed
// 0x00RRGGBB per pixel, row-major. It holds one whole frame only right
// after FrameCount increments; mid-frame, the pixels already drawn belong
// to the frame in progress and the rest to the previous frame.
func (p *PPU) FrameBuffer() *[240][256]uint32 { return &p.frame }

// WriteOAM is used by the console's OAM DMA controller to copy a page of
// CPU memory into OAM without going through the $2004 register protocol.
func (p *PPU) WriteOAM(index uint8, value uint8) { p.oam[index] = value }
