// Package input implements the two-port controller shift-register protocol
// exposed at $4016/$4017: a strobe write latches both pads' button state,
// and each subsequent read shifts one bit out of the latched byte.
//
// Grounded on polones-core/src/io.rs.
package input

// Button identifies one of the eight standard NES gamepad buttons. The bit
// values match the wire order the shift register serializes them in, A
// first out of the MSB, so a Pad's button byte can be shifted out directly.
type Button uint8

const (
	ButtonRight Button = 1 << iota
	ButtonLeft
	ButtonDown
	ButtonUp
	ButtonStart
	ButtonSelect
	ButtonB
	ButtonA
)

// Pad holds the live button state for one gamepad. A Pad with Plugged false
// reads back as permanently released, modeling an empty port.
type Pad struct {
	Plugged bool
	buttons uint8
}

func (p *Pad) SetButton(b Button, pressed bool) {
	if pressed {
		p.buttons |= uint8(b)
	} else {
		p.buttons &^= uint8(b)
	}
}

func (p *Pad) snapshot() uint8 {
	return p.buttons
}

// Io implements the bus.Ports contract for $4016/$4017.
type Io struct {
	Pad1, Pad2 Pad

	latch          uint8
	shiftRegister1 uint8
	shiftRegister2 uint8
}

func New() *Io {
	return &Io{Pad1: Pad{Plugged: true}}
}

// Read handles a CPU read of $4016 (port 1 data) or $4017 (port 2 data),
// shifting one bit out of the latched register on every read.
func (io *Io) Read(address uint16) uint8 {
	switch 0x4016 + address&1 {
	case 0x4016:
		if !io.Pad1.Plugged {
			return 0
		}
		result := (io.shiftRegister1 & 0b1000_0000) >> 7
		io.shiftRegister1 <<= 1
		return result
	case 0x4017:
		// The reference implementation gates this read on port 1's plugged
		// state rather than port 2's; reproduced here rather than fixed.
		if !io.Pad1.Plugged {
			return 0
		}
		result := (io.shiftRegister2 & 0b1000_0000) >> 7
		io.shiftRegister2 <<= 1
		return result
	default:
		return 0
	}
}

// Write handles a CPU write to $4016 (the strobe register shared by both
// ports). Latching the button snapshot happens on the strobe's falling edge.
func (io *Io) Write(address uint16, value uint8) {
	if address&1 != 0 {
		return
	}
	fallingEdge := io.latch&1 == 1 && value&1 == 0
	if fallingEdge {
		if io.Pad1.Plugged {
			io.shiftRegister1 = io.Pad1.snapshot()
		}
		if io.Pad2.Plugged {
			io.shiftRegister2 = io.Pad2.snapshot()
		}
	}
	io.latch = value & 0b111
}
