// Package app provides emulator integration for the main application.
package app

import (
	"fmt"
	"time"

	"gones/internal/console"
)

// Emulator drives a console.Console at a fixed frame cadence and exposes the
// host-facing buffers (video, audio) and basic performance counters that the
// graphics backend and CLI reporting need.
type Emulator struct {
	console *console.Console
	config  *Config

	targetFrameTime time.Duration
	cyclesPerFrame  uint64

	frameBuffer  [256 * 240]uint32
	audioSamples []float32

	actualFrameTime  time.Duration
	emulationTime    time.Duration
	cycleCount       uint64
	frameCount       uint64
	averageFrameTime time.Duration

	isRunning     bool
	lastResetTime time.Time
}

// NewEmulator creates a new emulator instance with fixed NTSC timing.
func NewEmulator(c *console.Console, config *Config) *Emulator {
	e := &Emulator{
		console:         c,
		config:          config,
		targetFrameTime: time.Duration(16666667) * time.Nanosecond, // 60 FPS
		cyclesPerFrame:  29781,                                     // NTSC CPU cycles/frame
		audioSamples:    make([]float32, 0, 1024),
		lastResetTime:   time.Now(),
	}
	e.Reset()
	return e
}

// Reset clears frame/audio buffers and counters without touching the console
// itself; callers reset the console separately (it owns CPU power-up state).
func (e *Emulator) Reset() {
	e.actualFrameTime = 0
	e.emulationTime = 0
	e.cycleCount = 0
	e.frameCount = 0
	e.averageFrameTime = 0
	e.lastResetTime = time.Now()
	for i := range e.frameBuffer {
		e.frameBuffer[i] = 0
	}
	e.audioSamples = e.audioSamples[:0]
}

func (e *Emulator) Start() { e.isRunning = true }
func (e *Emulator) Stop()  { e.isRunning = false }

// Update runs exactly one frame's worth of console cycles.
func (e *Emulator) Update() error {
	if !e.isRunning {
		return nil
	}

	frameStart := time.Now()
	e.runFrame()
	e.actualFrameTime = time.Since(frameStart)
	e.updateAverageFrameTime()
	return nil
}

func (e *Emulator) runFrame() {
	emulationStart := time.Now()

	for i := uint64(0); i < e.cyclesPerFrame; i++ {
		e.console.Step()
	}
	e.cycleCount += e.cyclesPerFrame
	e.frameCount++

	fb := e.console.FrameBuffer()
	for row := 0; row < 240; row++ {
		copy(e.frameBuffer[row*256:row*256+256], fb[row][:])
	}

	samples := e.console.AudioSamples()
	if cap(e.audioSamples) < len(samples) {
		e.audioSamples = make([]float32, len(samples))
	} else {
		e.audioSamples = e.audioSamples[:len(samples)]
	}
	for i, s := range samples {
		e.audioSamples[i] = float32(s) / float32(^uint16(0))
	}

	e.emulationTime = time.Since(emulationStart)
}

func (e *Emulator) updateAverageFrameTime() {
	if e.averageFrameTime == 0 {
		e.averageFrameTime = e.actualFrameTime
		return
	}
	e.averageFrameTime = time.Duration(
		float64(e.averageFrameTime)*0.95 + float64(e.actualFrameTime)*0.05,
	)
}

// StepFrame executes exactly one frame regardless of running state; used by
// headless/test callers that want deterministic single-frame stepping.
func (e *Emulator) StepFrame() error {
	if e.console == nil {
		return fmt.Errorf("console not initialized")
	}
	e.runFrame()
	return nil
}

func (e *Emulator) GetFrameBuffer() []uint32           { return e.frameBuffer[:] }
func (e *Emulator) GetAudioSamples() []float32         { return e.audioSamples }
func (e *Emulator) GetFrameCount() uint64              { return e.frameCount }
func (e *Emulator) GetCycleCount() uint64              { return e.cycleCount }
func (e *Emulator) GetEmulationTime() time.Duration    { return e.emulationTime }
func (e *Emulator) GetActualFrameTime() time.Duration  { return e.actualFrameTime }
func (e *Emulator) GetAverageFrameTime() time.Duration { return e.averageFrameTime }
func (e *Emulator) GetTargetFrameTime() time.Duration  { return e.targetFrameTime }
func (e *Emulator) IsRunning() bool                    { return e.isRunning }
func (e *Emulator) GetUptime() time.Duration           { return time.Since(e.lastResetTime) }

// GetEmulationSpeed returns emulation speed as a percentage of real-time.
func (e *Emulator) GetEmulationSpeed() float64 {
	if e.actualFrameTime == 0 {
		return 0
	}
	return float64(e.targetFrameTime) / float64(e.actualFrameTime) * 100.0
}

// SetTargetFrameRate overrides the target frame rate (fps > 0).
func (e *Emulator) SetTargetFrameRate(fps int) {
	if fps > 0 {
		e.targetFrameTime = time.Duration(1000000/fps) * time.Microsecond
	}
}

// SetCyclesPerFrame overrides the CPU-cycle budget per frame (NTSC/PAL/Dendy
// region selection).
func (e *Emulator) SetCyclesPerFrame(cycles uint64) { e.cyclesPerFrame = cycles }

// Cleanup releases emulator-owned buffers.
func (e *Emulator) Cleanup() error {
	e.Stop()
	e.audioSamples = nil
	return nil
}
