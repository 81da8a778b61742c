package bus

// OamDMA models the $4014 OAM DMA controller. Grounded on polones-core/src/
// nes.rs's OamDma struct: writing $4014 latches a source page and arms a
// 513/514-cycle CPU stall (514 when the write lands on an even CPU cycle,
// to account for the one-cycle alignment wait before the transfer proper
// starts); the console drains one byte per two CPU cycles while stalled.
type OamDMA struct {
	pending    bool
	sourcePage uint8
	cyclesLeft uint16
	startedOdd bool
}

// Request arms a transfer from the given CPU page. The console resolves the
// even/odd cycle count once it knows the current cycle parity and calls
// Arm.
func (d *OamDMA) Request(sourcePage uint8) {
	d.pending = true
	d.sourcePage = sourcePage
}

// Arm finalizes the stall length now that the console knows whether the
// triggering write landed on an odd CPU cycle.
func (d *OamDMA) Arm(cpuCycleOdd bool) {
	if !d.pending {
		return
	}
	d.pending = false
	d.startedOdd = cpuCycleOdd
	d.cyclesLeft = 512 + 1
	if !cpuCycleOdd {
		d.cyclesLeft++
	}
}

func (d *OamDMA) Active() bool { return d.cyclesLeft > 0 }

// SourcePage returns the page last requested; valid while Active.
func (d *OamDMA) SourcePage() uint8 { return d.sourcePage }

// Tick consumes one stalled CPU cycle and reports whether this is a cycle on
// which a byte should be copied (every other cycle once the alignment wait
// has elapsed, matching the real 513/514-cycle transfer shape).
func (d *OamDMA) Tick() (transferByte bool, index uint8) {
	if d.cyclesLeft == 0 {
		return false, 0
	}
	d.cyclesLeft--
	remaining := d.cyclesLeft
	if remaining%2 != 0 {
		return false, 0
	}
	transferred := (512 - int(remaining)) / 2
	if transferred < 0 || transferred >= 256 {
		return false, 0
	}
	return true, uint8(transferred)
}
