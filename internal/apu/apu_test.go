package apu

import "testing"

type fakeIRQ struct{ count int }

func (f *fakeIRQ) IRQ() { f.count++ }

func TestStatusReadReportsActiveLengthCountersAndClearsFrameIRQ(t *testing.T) {
	a := New()
	a.pulse1.lengthCounter = 1
	a.noise.lengthCounter = 1
	a.frameCounterInterrupt = true

	got := a.ReadRegister(0x4015)
	want := uint8(0b0100_1001) // bit0 pulse1, bit3 noise, bit6 frame IRQ
	if got != want {
		t.Fatalf("status = %#08b, want %#08b", got, want)
	}
	if a.frameCounterInterrupt {
		t.Fatalf("frame IRQ flag should clear on status read")
	}
}

func TestPulse1TimerWriteSetsHighBitsAndRestartsSequencer(t *testing.T) {
	a := New()
	a.pulse1.sequencerStep = 5
	a.WriteRegister(0x4002, 0xff)
	a.WriteRegister(0x4003, 0b0000_0011)
	if a.pulse1.timerPeriod != 0x3ff {
		t.Fatalf("timerPeriod = %#04x, want 0x3ff", a.pulse1.timerPeriod)
	}
	if a.pulse1.sequencerStep != 0 {
		t.Fatalf("sequencerStep = %d, want 0 (restarted)", a.pulse1.sequencerStep)
	}
	if !a.pulse1.envelopeStartFlag {
		t.Fatalf("envelopeStartFlag should be set after $4003 write")
	}
}

func TestLengthCounterLoadedFromTableOnlyWhenChannelEnabled(t *testing.T) {
	a := New()
	a.WriteRegister(0x4015, 0b0000_0001) // enable pulse1
	a.WriteRegister(0x4003, 0b1111_1000) // index 31 -> 30
	if a.pulse1.lengthCounter != lengthCounterTable[31] {
		t.Fatalf("pulse1 length counter = %d, want %d", a.pulse1.lengthCounter, lengthCounterTable[31])
	}

	a.WriteRegister(0x4015, 0b0000_0000) // disable pulse1, should clear length counter
	if a.pulse1.lengthCounter != 0 {
		t.Fatalf("pulse1 length counter should clear when channel disabled")
	}
}

func TestNoiseTimerWriteIndexesNoiseTimerTable(t *testing.T) {
	a := New()
	a.WriteRegister(0x400e, 0b0000_0101)
	if a.noise.timerLoad != noiseTimerTable[5] {
		t.Fatalf("noise timerLoad = %d, want %d", a.noise.timerLoad, noiseTimerTable[5])
	}
}

func TestFrameCounterFourStepFiresIRQUnlessInhibited(t *testing.T) {
	a := New()
	irq := &fakeIRQ{}
	a.frameCounter = 29828
	a.Tick(irq)
	if irq.count != 1 {
		t.Fatalf("IRQ fired %d times at frame counter boundary, want 1", irq.count)
	}
	if !a.frameCounterInterrupt {
		t.Fatalf("frameCounterInterrupt flag should be set")
	}

	a2 := New()
	irq2 := &fakeIRQ{}
	a2.frameCounterInterruptInhibit = true
	a2.frameCounter = 29828
	a2.Tick(irq2)
	if irq2.count != 0 {
		t.Fatalf("IRQ should not fire when inhibited")
	}
}

func TestFrameCounterWriteResetsSequencerAndModeFlag(t *testing.T) {
	a := New()
	a.frameCounter = 12345
	a.WriteRegister(0x4017, 0b1000_0000)
	if !a.frameCounterMode {
		t.Fatalf("frameCounterMode should be set to 5-step")
	}
	if a.frameCounter != 0 {
		t.Fatalf("frameCounter should reset to 0 on $4017 write")
	}
}

func TestPulseOddCycleSkipsTimerTickButTriangleAlwaysTicks(t *testing.T) {
	a := New()
	irq := &fakeIRQ{}
	a.pulse1.timerPeriod = 5
	a.pulse1.timerCounter = 5
	a.triangle.timerLoad = 5
	a.triangle.timer = 5
	a.triangle.linearCounter = 1
	a.triangle.lengthCounter = 1

	a.cpuCycleOdd = true // next tick will be treated as "odd", skipping pulse/noise
	beforePulseCounter := a.pulse1.timerCounter
	beforeTriCounter := a.triangle.timer
	a.Tick(irq)
	if a.pulse1.timerCounter != beforePulseCounter {
		t.Fatalf("pulse1 timer should not tick on odd cycle")
	}
	if a.triangle.timer == beforeTriCounter {
		t.Fatalf("triangle timer should tick every cycle regardless of parity")
	}
}

func TestMixAndPublishBumpsVersionOnceBufferFull(t *testing.T) {
	a := New()
	irq := &fakeIRQ{}
	before := a.SampleVersion
	needed := roundInt(samplesPerBuffer * (cpuHz / outputHz))
	for i := 0; i < needed; i++ {
		a.Tick(irq)
	}
	if a.SampleVersion != before+1 {
		t.Fatalf("SampleVersion = %d, want %d after filling one buffer", a.SampleVersion, before+1)
	}
	if len(a.pulse1Samples) != 0 {
		t.Fatalf("per-channel sample buffers should be cleared after mixing")
	}
}

func TestNoiseVolumeMutedWhenFeedbackBitSetOrLengthZero(t *testing.T) {
	n := newNoise()
	n.shiftRegister = 1 // bit 0 set -> muted
	n.lengthCounter = 5
	n.envelopeConstantVolume = true
	n.envelopeDividerPeriod = 9
	if v := n.volume(); v != 0 {
		t.Fatalf("volume = %d, want 0 when shift register bit 0 is set", v)
	}

	n.shiftRegister = 0
	if v := n.volume(); v != 9 {
		t.Fatalf("volume = %d, want 9 (constant volume)", v)
	}

	n.lengthCounter = 0
	if v := n.volume(); v != 0 {
		t.Fatalf("volume = %d, want 0 when length counter is zero", v)
	}
}
