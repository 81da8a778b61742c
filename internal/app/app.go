// Package app implements the main NES emulator application with GUI support.
package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"gones/internal/cartridge"
	"gones/internal/console"
	"gones/internal/graphics"
	"gones/internal/input"
)

// Application represents the main NES emulator application: it owns the
// console, the graphics backend/window, and the host-side input mapping
// between the backend's key/button events and the two controller ports.
type Application struct {
	console *console.Console

	graphicsBackend graphics.Backend
	window          graphics.Window
	videoProcessor  *graphics.VideoProcessor

	config   *Config
	emulator *Emulator

	running     bool
	paused      bool
	initialized bool
	headless    bool

	frameCount uint64
	startTime  time.Time

	romPath string
	loaded  bool

	lastESCTime time.Time
}

// ApplicationError represents application-specific errors.
type ApplicationError struct {
	Component string
	Operation string
	Err       error
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("application %s error during %s: %v", e.Component, e.Operation, e.Err)
}

// NewApplication creates a new NES emulator application.
func NewApplication(configPath string) (*Application, error) {
	return NewApplicationWithMode(configPath, false)
}

// NewApplicationWithMode creates a new NES emulator application with optional
// headless mode. The console itself is constructed once a ROM is loaded,
// since console.New requires a parsed cartridge image.
func NewApplicationWithMode(configPath string, headless bool) (*Application, error) {
	app := &Application{
		config:    NewConfig(),
		headless:  headless,
		startTime: time.Now(),
	}

	if configPath != "" {
		if err := app.config.LoadFromFile(configPath); err != nil {
			fmt.Printf("[app] could not load config from %s, using defaults: %v\n", configPath, err)
		}
	}

	if err := app.initializeGraphicsBackend(headless); err != nil {
		return nil, &ApplicationError{Component: "graphics", Operation: "initialize", Err: err}
	}

	app.initialized = true
	return app, nil
}

func (app *Application) initializeGraphicsBackend(headless bool) error {
	var backendType graphics.BackendType
	if headless {
		backendType = graphics.BackendHeadless
	} else {
		switch app.config.Video.Backend {
		case "headless":
			backendType = graphics.BackendHeadless
		case "terminal":
			backendType = graphics.BackendTerminal
		default:
			backendType = graphics.BackendEbitengine
		}
	}

	var err error
	app.graphicsBackend, err = graphics.CreateBackend(backendType)
	if err != nil {
		return fmt.Errorf("create backend: %v", err)
	}

	graphicsConfig := graphics.Config{
		WindowTitle:  "gones - Go NES Emulator",
		WindowWidth:  app.config.Window.Width,
		WindowHeight: app.config.Window.Height,
		Fullscreen:   app.config.Window.Fullscreen,
		VSync:        app.config.Video.VSync,
		Filter:       app.config.Video.Filter,
		AspectRatio:  app.config.Video.AspectRatio,
		Headless:     headless,
		Debug:        app.config.Debug.EnableLogging,
	}

	if err := app.graphicsBackend.Initialize(graphicsConfig); err != nil {
		if backendType != graphics.BackendHeadless {
			fmt.Printf("[app] %s backend failed (%v), falling back to headless\n", backendType, err)
			app.graphicsBackend, err = graphics.CreateBackend(graphics.BackendHeadless)
			if err != nil {
				return fmt.Errorf("create fallback headless backend: %v", err)
			}
			graphicsConfig.Headless = true
			if err := app.graphicsBackend.Initialize(graphicsConfig); err != nil {
				return fmt.Errorf("initialize fallback headless backend: %v", err)
			}
		} else {
			return fmt.Errorf("initialize backend: %v", err)
		}
	}

	if !headless && !app.graphicsBackend.IsHeadless() {
		app.window, err = app.graphicsBackend.CreateWindow(
			graphicsConfig.WindowTitle, graphicsConfig.WindowWidth, graphicsConfig.WindowHeight)
		if err != nil {
			return fmt.Errorf("create window: %v", err)
		}
	}

	app.videoProcessor = graphics.NewVideoProcessor(
		app.config.Video.Brightness, app.config.Video.Contrast, app.config.Video.Saturation)

	return nil
}

// LoadROM parses a ROM image, constructs the console around it, and starts
// emulation.
func (app *Application) LoadROM(romPath string) error {
	if !app.initialized {
		return errors.New("application not initialized")
	}

	game, err := cartridge.LoadFile(romPath)
	if err != nil {
		return &ApplicationError{Component: "cartridge", Operation: "load ROM", Err: err}
	}

	c, err := console.New(game)
	if err != nil {
		return &ApplicationError{Component: "console", Operation: "construct", Err: err}
	}

	app.console = c
	app.emulator = NewEmulator(c, app.config)
	app.romPath = romPath
	app.loaded = true

	if app.window != nil {
		app.window.SetTitle(fmt.Sprintf("gones - %s", filepath.Base(romPath)))
	}

	app.emulator.Start()
	return nil
}

// Run starts the main application loop.
func (app *Application) Run() error {
	if !app.initialized {
		return errors.New("application not initialized")
	}

	app.running = true
	app.startTime = time.Now()

	if app.graphicsBackend.GetName() == "Ebitengine" && app.window != nil {
		if ebitengineWindow, ok := graphics.AsEbitengineWindow(app.window); ok {
			ebitengineWindow.SetEmulatorUpdateFunc(func() error {
				if err := app.processInput(); err != nil && app.config.Debug.EnableLogging {
					fmt.Printf("[app] input error: %v\n", err)
				}
				if err := app.updateEmulator(); err != nil {
					return err
				}
				if err := app.render(); err != nil {
					return err
				}
				app.frameCount++
				if app.window.ShouldClose() {
					app.Stop()
				}
				return nil
			})
			return ebitengineWindow.Run()
		}
	}

	for app.running {
		if err := app.processInput(); err != nil && app.config.Debug.EnableLogging {
			fmt.Printf("[app] input error: %v\n", err)
		}
		if err := app.updateEmulator(); err != nil && app.config.Debug.EnableLogging {
			fmt.Printf("[app] emulator error: %v\n", err)
		}
		if err := app.render(); err != nil && app.config.Debug.EnableLogging {
			fmt.Printf("[app] render error: %v\n", err)
		}
		app.frameCount++
		if app.window != nil && app.window.ShouldClose() {
			app.Stop()
		}
		time.Sleep(16 * time.Millisecond)
	}

	return nil
}

func (app *Application) updateEmulator() error {
	if !app.paused && app.loaded {
		return app.emulator.Update()
	}
	return nil
}

// processInput processes input events from the graphics backend and latches
// them into the console's two controller ports.
func (app *Application) processInput() error {
	if app.window == nil {
		return nil
	}

	events := app.window.PollEvents()
	if len(events) == 0 {
		return nil
	}

	for _, event := range events {
		switch event.Type {
		case graphics.InputEventTypeQuit:
			app.Stop()
			return nil

		case graphics.InputEventTypeKey:
			app.handleSpecialKey(event)

		case graphics.InputEventTypeButton:
			if !app.loaded {
				continue
			}
			if btn, pressed, isPlayer2 := decodeButtonEvent(event); btn != 0 {
				if isPlayer2 {
					app.console.Input.Pad2.SetButton(btn, pressed)
				} else {
					app.console.Input.Pad1.SetButton(btn, pressed)
				}
			}
		}
	}

	return nil
}

// decodeButtonEvent maps a graphics.Button to an input.Button plus which
// controller port it targets.
func decodeButtonEvent(event graphics.InputEvent) (btn input.Button, pressed bool, isPlayer2 bool) {
	pressed = event.Pressed
	switch event.Button {
	case graphics.ButtonA:
		return input.ButtonA, pressed, false
	case graphics.ButtonB:
		return input.ButtonB, pressed, false
	case graphics.ButtonSelect:
		return input.ButtonSelect, pressed, false
	case graphics.ButtonStart:
		return input.ButtonStart, pressed, false
	case graphics.ButtonUp:
		return input.ButtonUp, pressed, false
	case graphics.ButtonDown:
		return input.ButtonDown, pressed, false
	case graphics.ButtonLeft:
		return input.ButtonLeft, pressed, false
	case graphics.ButtonRight:
		return input.ButtonRight, pressed, false
	case graphics.Button2A:
		return input.ButtonA, pressed, true
	case graphics.Button2B:
		return input.ButtonB, pressed, true
	case graphics.Button2Select:
		return input.ButtonSelect, pressed, true
	case graphics.Button2Start:
		return input.ButtonStart, pressed, true
	case graphics.Button2Up:
		return input.ButtonUp, pressed, true
	case graphics.Button2Down:
		return input.ButtonDown, pressed, true
	case graphics.Button2Left:
		return input.ButtonLeft, pressed, true
	case graphics.Button2Right:
		return input.ButtonRight, pressed, true
	default:
		return 0, false, false
	}
}

// handleSpecialKey handles the escape-to-quit double-tap gesture; all other
// keys are ignored (save states are out of scope for this core).
func (app *Application) handleSpecialKey(event graphics.InputEvent) {
	if !event.Pressed || event.Key != graphics.KeyEscape {
		if event.Key != graphics.KeyEscape {
			app.lastESCTime = time.Time{}
		}
		return
	}

	now := time.Now()
	if !app.lastESCTime.IsZero() && now.Sub(app.lastESCTime) < 3*time.Second {
		app.Stop()
		return
	}
	app.lastESCTime = now
}

func (app *Application) render() error {
	if app.window == nil {
		return nil
	}
	if !app.loaded {
		return nil
	}

	frameBufferSlice := app.emulator.GetFrameBuffer()
	if app.videoProcessor != nil {
		frameBufferSlice = app.videoProcessor.ProcessFrame(frameBufferSlice)
	}

	var frameBuffer [256 * 240]uint32
	copy(frameBuffer[:], frameBufferSlice)
	if err := app.window.RenderFrame(frameBuffer); err != nil {
		return fmt.Errorf("render frame: %v", err)
	}

	app.window.SwapBuffers()
	return nil
}

// Stop stops the application loop.
func (app *Application) Stop() { app.running = false }

// Pause pauses the emulator.
func (app *Application) Pause() { app.paused = true }

// Resume resumes the emulator.
func (app *Application) Resume() { app.paused = false }

// TogglePause toggles pause state.
func (app *Application) TogglePause() { app.paused = !app.paused }

// Reset resets the currently loaded console to its power-up vector.
func (app *Application) Reset() {
	if app.console != nil {
		app.console.CPU.Reset()
	}
}

func (app *Application) IsRunning() bool         { return app.running }
func (app *Application) IsPaused() bool          { return app.paused }
func (app *Application) GetFrameCount() uint64   { return app.frameCount }
func (app *Application) GetUptime() time.Duration { return time.Since(app.startTime) }
func (app *Application) GetROMPath() string      { return app.romPath }
func (app *Application) GetConfig() *Config      { return app.config }

// GetConsole returns the console for direct access (tests, advanced control).
func (app *Application) GetConsole() *console.Console { return app.console }

// GetFPS returns the emulator's measured frame rate, derived from its average
// frame time.
func (app *Application) GetFPS() float64 {
	if app.emulator == nil {
		return 0
	}
	avg := app.emulator.GetAverageFrameTime()
	if avg == 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}

// ApplyDebugSettings logs the active debug configuration. Per-subsystem debug
// hooks (CPU tracing, PPU overlay, watchpoints) are diagnostic surfaces left
// for a future pass; the core only exposes cpu.CPU.Halted() today.
func (app *Application) ApplyDebugSettings() {
	if app.config == nil || !app.config.Debug.EnableLogging {
		return
	}
	fmt.Printf("[app] debug logging enabled (cpu tracing=%v, ppu debugging=%v)\n",
		app.config.Debug.CPUTracing, app.config.Debug.PPUDebugging)
}

// Cleanup releases all resources and shuts down the application.
func (app *Application) Cleanup() error {
	var lastErr error

	if app.emulator != nil {
		if err := app.emulator.Cleanup(); err != nil {
			lastErr = err
		}
	}
	if app.window != nil {
		if err := app.window.Cleanup(); err != nil {
			lastErr = err
		}
	}
	if app.graphicsBackend != nil {
		if err := app.graphicsBackend.Cleanup(); err != nil {
			lastErr = err
		}
	}

	app.initialized = false
	return lastErr
}
