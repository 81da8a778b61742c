package cpu

// addressingFunc decodes the operand for the instruction currently being
// fetched, advancing PC past the operand bytes and setting c.operand (or
// c.accumulator) plus c.pageCrossed where relevant.
type addressingFunc func(c *CPU)

func addrImplied(c *CPU) {}

func addrAccumulator(c *CPU) { c.accumulator = true }

func addrImmediate(c *CPU) {
	c.operand = c.PC
	c.PC++
}

func addrZeroPage(c *CPU) {
	c.operand = uint16(c.bus.Read(c.PC))
	c.PC++
}

func addrZeroPageX(c *CPU) {
	base := c.bus.Read(c.PC)
	c.PC++
	c.operand = uint16(base + c.X)
}

func addrZeroPageY(c *CPU) {
	base := c.bus.Read(c.PC)
	c.PC++
	c.operand = uint16(base + c.Y)
}

func addrAbsolute(c *CPU) {
	c.operand = c.readWord(c.PC)
	c.PC += 2
}

func addrAbsoluteX(c *CPU) {
	base := c.readWord(c.PC)
	c.PC += 2
	c.operand = base + uint16(c.X)
	c.pageCrossed = base&0xff00 != c.operand&0xff00
}

func addrAbsoluteY(c *CPU) {
	base := c.readWord(c.PC)
	c.PC += 2
	c.operand = base + uint16(c.Y)
	c.pageCrossed = base&0xff00 != c.operand&0xff00
}

// addrIndirect implements the JMP ($xxxx) page-wrap bug: when the low byte
// of the pointer is $FF, the high byte is fetched from the same page's $00
// instead of crossing into the next page.
func addrIndirect(c *CPU) {
	ptr := c.readWord(c.PC)
	c.PC += 2
	lo := c.bus.Read(ptr)
	var hiAddr uint16
	if ptr&0x00ff == 0x00ff {
		hiAddr = ptr & 0xff00
	} else {
		hiAddr = ptr + 1
	}
	hi := c.bus.Read(hiAddr)
	c.operand = uint16(hi)<<8 | uint16(lo)
}

func addrIndexedIndirect(c *CPU) {
	base := c.bus.Read(c.PC) + c.X
	c.PC++
	lo := c.bus.Read(uint16(base))
	hi := c.bus.Read(uint16(base + 1))
	c.operand = uint16(hi)<<8 | uint16(lo)
}

func addrIndirectIndexed(c *CPU) {
	zp := c.bus.Read(c.PC)
	c.PC++
	lo := c.bus.Read(uint16(zp))
	hi := c.bus.Read(uint16(zp + 1))
	base := uint16(hi)<<8 | uint16(lo)
	c.operand = base + uint16(c.Y)
	c.pageCrossed = base&0xff00 != c.operand&0xff00
}

func addrRelative(c *CPU) {
	offset := int8(c.bus.Read(c.PC))
	c.PC++
	c.branchOffset = offset
}
