package ppu

// rgb is a single NTSC palette entry; the 2C02 exposes 64 of them, index by
// a 6-bit color value read back from palette RAM.
type rgb struct{ r, g, b uint8 }

// palette is the reference NTSC decode table. Grounded on polones-core/src/
// ppu.rs's PALLETTE constant.
var palette = [64]rgb{
	{0x65, 0x65, 0x65}, {0x00, 0x2d, 0x69}, {0x13, 0x1f, 0x7f}, {0x3c, 0x13, 0x7c},
	{0x60, 0x0b, 0x62}, {0x73, 0x0a, 0x37}, {0x71, 0x0f, 0x07}, {0x5a, 0x1a, 0x00},
	{0x34, 0x28, 0x00}, {0x0b, 0x34, 0x00}, {0x00, 0x3c, 0x00}, {0x00, 0x3d, 0x10},
	{0x00, 0x38, 0x40}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xae, 0xae, 0xae}, {0x0f, 0x63, 0xb3}, {0x40, 0x51, 0xd0}, {0x78, 0x41, 0xcc},
	{0xa7, 0x36, 0xa9}, {0xc0, 0x34, 0x70}, {0xbd, 0x3c, 0x30}, {0x9f, 0x4a, 0x00},
	{0x6d, 0x5c, 0x00}, {0x36, 0x6d, 0x00}, {0x07, 0x77, 0x04}, {0x00, 0x79, 0x3d},
	{0x00, 0x72, 0x7d}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xfe, 0xfe, 0xff}, {0x5d, 0xb3, 0xff}, {0x8f, 0xa1, 0xff}, {0xc8, 0x90, 0xff},
	{0xf7, 0x85, 0xfa}, {0xff, 0x83, 0xc0}, {0xff, 0x8b, 0x7f}, {0xef, 0x9a, 0x49},
	{0xbd, 0xac, 0x2c}, {0x85, 0xbc, 0x2f}, {0x55, 0xc7, 0x53}, {0x3c, 0xc9, 0x8c},
	{0x3e, 0xc2, 0xcd}, {0x4e, 0x4e, 0x4e}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xfe, 0xfe, 0xff}, {0xbc, 0xdf, 0xff}, {0xd1, 0xd8, 0xff}, {0xe8, 0xd1, 0xff},
	{0xfb, 0xcd, 0xfd}, {0xff, 0xcc, 0xe5}, {0xff, 0xcf, 0xca}, {0xf8, 0xd5, 0xb4},
	{0xe4, 0xdc, 0xa8}, {0xcc, 0xe3, 0xa9}, {0xb9, 0xe8, 0xb8}, {0xae, 0xe8, 0xd0},
	{0xaf, 0xe5, 0xea}, {0xb6, 0xb6, 0xb6}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
}

func packRGB(c rgb) uint32 {
	return uint32(c.r)<<16 | uint32(c.g)<<8 | uint32(c.b)
}
