package cpu

type opcodeEntry struct {
	mode             addressingFunc
	exec             execFunc
	cycles           uint8
	extraOnPageCross bool
}

// opcodeTable is the 256-entry dispatch table; unfilled slots (exec == nil)
// are illegal opcodes, logged and treated as a 2-cycle implied NOP.
var opcodeTable [256]opcodeEntry

func entry(mode addressingFunc, exec execFunc, cycles uint8, extraOnPageCross bool) opcodeEntry {
	return opcodeEntry{mode: mode, exec: exec, cycles: cycles, extraOnPageCross: extraOnPageCross}
}

func init() {
	set := func(op uint8, e opcodeEntry) { opcodeTable[op] = e }

	// ADC
	set(0x69, entry(addrImmediate, opADC, 2, false))
	set(0x65, entry(addrZeroPage, opADC, 3, false))
	set(0x75, entry(addrZeroPageX, opADC, 4, false))
	set(0x6d, entry(addrAbsolute, opADC, 4, false))
	set(0x7d, entry(addrAbsoluteX, opADC, 4, true))
	set(0x79, entry(addrAbsoluteY, opADC, 4, true))
	set(0x61, entry(addrIndexedIndirect, opADC, 6, false))
	set(0x71, entry(addrIndirectIndexed, opADC, 5, true))

	// SBC
	set(0xe9, entry(addrImmediate, opSBC, 2, false))
	set(0xe5, entry(addrZeroPage, opSBC, 3, false))
	set(0xf5, entry(addrZeroPageX, opSBC, 4, false))
	set(0xed, entry(addrAbsolute, opSBC, 4, false))
	set(0xfd, entry(addrAbsoluteX, opSBC, 4, true))
	set(0xf9, entry(addrAbsoluteY, opSBC, 4, true))
	set(0xe1, entry(addrIndexedIndirect, opSBC, 6, false))
	set(0xf1, entry(addrIndirectIndexed, opSBC, 5, true))

	// AND
	set(0x29, entry(addrImmediate, opAND, 2, false))
	set(0x25, entry(addrZeroPage, opAND, 3, false))
	set(0x35, entry(addrZeroPageX, opAND, 4, false))
	set(0x2d, entry(addrAbsolute, opAND, 4, false))
	set(0x3d, entry(addrAbsoluteX, opAND, 4, true))
	set(0x39, entry(addrAbsoluteY, opAND, 4, true))
	set(0x21, entry(addrIndexedIndirect, opAND, 6, false))
	set(0x31, entry(addrIndirectIndexed, opAND, 5, true))

	// ORA
	set(0x09, entry(addrImmediate, opORA, 2, false))
	set(0x05, entry(addrZeroPage, opORA, 3, false))
	set(0x15, entry(addrZeroPageX, opORA, 4, false))
	set(0x0d, entry(addrAbsolute, opORA, 4, false))
	set(0x1d, entry(addrAbsoluteX, opORA, 4, true))
	set(0x19, entry(addrAbsoluteY, opORA, 4, true))
	set(0x01, entry(addrIndexedIndirect, opORA, 6, false))
	set(0x11, entry(addrIndirectIndexed, opORA, 5, true))

	// EOR
	set(0x49, entry(addrImmediate, opEOR, 2, false))
	set(0x45, entry(addrZeroPage, opEOR, 3, false))
	set(0x55, entry(addrZeroPageX, opEOR, 4, false))
	set(0x4d, entry(addrAbsolute, opEOR, 4, false))
	set(0x5d, entry(addrAbsoluteX, opEOR, 4, true))
	set(0x59, entry(addrAbsoluteY, opEOR, 4, true))
	set(0x41, entry(addrIndexedIndirect, opEOR, 6, false))
	set(0x51, entry(addrIndirectIndexed, opEOR, 5, true))

	// BIT
	set(0x24, entry(addrZeroPage, opBIT, 3, false))
	set(0x2c, entry(addrAbsolute, opBIT, 4, false))

	// ASL
	set(0x0a, entry(addrAccumulator, opASL, 2, false))
	set(0x06, entry(addrZeroPage, opASL, 5, false))
	set(0x16, entry(addrZeroPageX, opASL, 6, false))
	set(0x0e, entry(addrAbsolute, opASL, 6, false))
	set(0x1e, entry(addrAbsoluteX, opASL, 7, false))

	// LSR
	set(0x4a, entry(addrAccumulator, opLSR, 2, false))
	set(0x46, entry(addrZeroPage, opLSR, 5, false))
	set(0x56, entry(addrZeroPageX, opLSR, 6, false))
	set(0x4e, entry(addrAbsolute, opLSR, 6, false))
	set(0x5e, entry(addrAbsoluteX, opLSR, 7, false))

	// ROL
	set(0x2a, entry(addrAccumulator, opROL, 2, false))
	set(0x26, entry(addrZeroPage, opROL, 5, false))
	set(0x36, entry(addrZeroPageX, opROL, 6, false))
	set(0x2e, entry(addrAbsolute, opROL, 6, false))
	set(0x3e, entry(addrAbsoluteX, opROL, 7, false))

	// ROR
	set(0x6a, entry(addrAccumulator, opROR, 2, false))
	set(0x66, entry(addrZeroPage, opROR, 5, false))
	set(0x76, entry(addrZeroPageX, opROR, 6, false))
	set(0x6e, entry(addrAbsolute, opROR, 6, false))
	set(0x7e, entry(addrAbsoluteX, opROR, 7, false))

	// INC/DEC
	set(0xe6, entry(addrZeroPage, opINC, 5, false))
	set(0xf6, entry(addrZeroPageX, opINC, 6, false))
	set(0xee, entry(addrAbsolute, opINC, 6, false))
	set(0xfe, entry(addrAbsoluteX, opINC, 7, false))
	set(0xc6, entry(addrZeroPage, opDEC, 5, false))
	set(0xd6, entry(addrZeroPageX, opDEC, 6, false))
	set(0xce, entry(addrAbsolute, opDEC, 6, false))
	set(0xde, entry(addrAbsoluteX, opDEC, 7, false))
	set(0xe8, entry(addrImplied, opINX, 2, false))
	set(0xca, entry(addrImplied, opDEX, 2, false))
	set(0xc8, entry(addrImplied, opINY, 2, false))
	set(0x88, entry(addrImplied, opDEY, 2, false))

	// LDA/LDX/LDY
	set(0xa9, entry(addrImmediate, opLDA, 2, false))
	set(0xa5, entry(addrZeroPage, opLDA, 3, false))
	set(0xb5, entry(addrZeroPageX, opLDA, 4, false))
	set(0xad, entry(addrAbsolute, opLDA, 4, false))
	set(0xbd, entry(addrAbsoluteX, opLDA, 4, true))
	set(0xb9, entry(addrAbsoluteY, opLDA, 4, true))
	set(0xa1, entry(addrIndexedIndirect, opLDA, 6, false))
	set(0xb1, entry(addrIndirectIndexed, opLDA, 5, true))

	set(0xa2, entry(addrImmediate, opLDX, 2, false))
	set(0xa6, entry(addrZeroPage, opLDX, 3, false))
	set(0xb6, entry(addrZeroPageY, opLDX, 4, false))
	set(0xae, entry(addrAbsolute, opLDX, 4, false))
	set(0xbe, entry(addrAbsoluteY, opLDX, 4, true))

	set(0xa0, entry(addrImmediate, opLDY, 2, false))
	set(0xa4, entry(addrZeroPage, opLDY, 3, false))
	set(0xb4, entry(addrZeroPageX, opLDY, 4, false))
	set(0xac, entry(addrAbsolute, opLDY, 4, false))
	set(0xbc, entry(addrAbsoluteX, opLDY, 4, true))

	// STA/STX/STY
	set(0x85, entry(addrZeroPage, opSTA, 3, false))
	set(0x95, entry(addrZeroPageX, opSTA, 4, false))
	set(0x8d, entry(addrAbsolute, opSTA, 4, false))
	set(0x9d, entry(addrAbsoluteX, opSTA, 5, false))
	set(0x99, entry(addrAbsoluteY, opSTA, 5, false))
	set(0x81, entry(addrIndexedIndirect, opSTA, 6, false))
	set(0x91, entry(addrIndirectIndexed, opSTA, 6, false))

	set(0x86, entry(addrZeroPage, opSTX, 3, false))
	set(0x96, entry(addrZeroPageY, opSTX, 4, false))
	set(0x8e, entry(addrAbsolute, opSTX, 4, false))

	set(0x84, entry(addrZeroPage, opSTY, 3, false))
	set(0x94, entry(addrZeroPageX, opSTY, 4, false))
	set(0x8c, entry(addrAbsolute, opSTY, 4, false))

	// Transfers
	set(0xaa, entry(addrImplied, opTAX, 2, false))
	set(0xa8, entry(addrImplied, opTAY, 2, false))
	set(0xba, entry(addrImplied, opTSX, 2, false))
	set(0x8a, entry(addrImplied, opTXA, 2, false))
	set(0x9a, entry(addrImplied, opTXS, 2, false))
	set(0x98, entry(addrImplied, opTYA, 2, false))

	// Stack
	set(0x48, entry(addrImplied, opPHA, 3, false))
	set(0x08, entry(addrImplied, opPHP, 3, false))
	set(0x68, entry(addrImplied, opPLA, 4, false))
	set(0x28, entry(addrImplied, opPLP, 4, false))

	// Branches
	set(0x90, entry(addrRelative, opBCC, 2, false))
	set(0xb0, entry(addrRelative, opBCS, 2, false))
	set(0xf0, entry(addrRelative, opBEQ, 2, false))
	set(0x30, entry(addrRelative, opBMI, 2, false))
	set(0xd0, entry(addrRelative, opBNE, 2, false))
	set(0x10, entry(addrRelative, opBPL, 2, false))
	set(0x50, entry(addrRelative, opBVC, 2, false))
	set(0x70, entry(addrRelative, opBVS, 2, false))

	// Control
	set(0x4c, entry(addrAbsolute, opJMP, 3, false))
	set(0x6c, entry(addrIndirect, opJMP, 5, false))
	set(0x20, entry(addrAbsolute, opJSR, 6, false))
	set(0x60, entry(addrImplied, opRTS, 6, false))
	set(0x40, entry(addrImplied, opRTI, 6, false))
	set(0x00, entry(addrImplied, opBRK, 7, false))

	// Flags
	set(0x18, entry(addrImplied, opCLC, 2, false))
	set(0x38, entry(addrImplied, opSEC, 2, false))
	set(0xd8, entry(addrImplied, opCLD, 2, false))
	set(0xf8, entry(addrImplied, opSED, 2, false))
	set(0x58, entry(addrImplied, opCLI, 2, false))
	set(0x78, entry(addrImplied, opSEI, 2, false))
	set(0xb8, entry(addrImplied, opCLV, 2, false))

	// Compare
	set(0xc9, entry(addrImmediate, opCMP, 2, false))
	set(0xc5, entry(addrZeroPage, opCMP, 3, false))
	set(0xd5, entry(addrZeroPageX, opCMP, 4, false))
	set(0xcd, entry(addrAbsolute, opCMP, 4, false))
	set(0xdd, entry(addrAbsoluteX, opCMP, 4, true))
	set(0xd9, entry(addrAbsoluteY, opCMP, 4, true))
	set(0xc1, entry(addrIndexedIndirect, opCMP, 6, false))
	set(0xd1, entry(addrIndirectIndexed, opCMP, 5, true))

	set(0xe0, entry(addrImmediate, opCPX, 2, false))
	set(0xe4, entry(addrZeroPage, opCPX, 3, false))
	set(0xec, entry(addrAbsolute, opCPX, 4, false))

	set(0xc0, entry(addrImmediate, opCPY, 2, false))
	set(0xc4, entry(addrZeroPage, opCPY, 3, false))
	set(0xcc, entry(addrAbsolute, opCPY, 4, false))

	// NOP
	set(0xea, entry(addrImplied, opNOP, 2, false))
}
