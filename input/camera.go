package input

import (
	"lighting-sandbox/core"
	"lighting-sandbox/scene"
)

// WindowControl is the part of the window the controller drives.
type WindowControl interface {
	SetCursorLocked(locked bool)
	Close()
}

// Capture reports whether the UI is consuming input this frame.
type Capture interface {
	WantsMouse() bool
	WantsKeyboard() bool
}

type ControllerConfig struct {
	MoveSpeed       float32 // units per second
	LookSensitivity float32 // degrees per pixel
	ZoomSpeed       float32 // FOV degrees per scroll notch
	StartLocked     bool
}

func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{
		MoveSpeed:       5,
		LookSensitivity: 0.1,
		ZoomSpeed:       3,
		StartLocked:     true,
	}
}

// Controller applies fly-camera input and keyboard toggles to a frame.
type Controller struct {
	in      *Manager
	win     WindowControl
	capture Capture
	cfg     ControllerConfig
	locked  bool
}

// NewController applies the starting cursor mode. capture may be nil.
func NewController(in *Manager, win WindowControl, capture Capture, cfg ControllerConfig) *Controller {
	c := &Controller{in: in, win: win, capture: capture, cfg: cfg}
	c.setLocked(cfg.StartLocked)
	return c
}

func (c *Controller) Locked() bool { return c.locked }

func (c *Controller) setLocked(locked bool) {
	c.locked = locked
	c.win.SetCursorLocked(locked)
	c.in.ResetMouse()
}

// Update reads this frame's input into f. Call after Manager.Update.
func (c *Controller) Update(f *scene.Frame) {
	keyboard, mouse := true, true
	if c.capture != nil {
		keyboard = !c.capture.WantsKeyboard()
		mouse = !c.capture.WantsMouse()
	}
	in := c.in

	if in.IsKeyPressed(core.KeyEscape) {
		c.win.Close()
	}
	if mouse && in.IsMousePressed(core.MouseButtonRight) {
		c.setLocked(!c.locked)
	}

	if keyboard {
		if in.IsKeyPressed(core.Key1) {
			f.Wireframe = !f.Wireframe
		}
		if in.IsKeyPressed(core.KeyR) {
			f.Camera.Reset()
		}
		forward := c.axis(core.KeyW, core.KeyS)
		right := c.axis(core.KeyD, core.KeyA)
		up := c.axis(core.KeyE, core.KeyQ)
		if forward != 0 || right != 0 || up != 0 {
			f.Camera.Move(forward, right, up, c.cfg.MoveSpeed*f.DeltaTime)
		}
	}

	// A locked cursor is invisible to the UI, so look ignores capture.
	if c.locked {
		f.Camera.Look(float32(in.MouseDeltaX), float32(in.MouseDeltaY), c.cfg.LookSensitivity)
	}
	if mouse && in.ScrollDelta != 0 {
		f.Camera.Zoom(float32(in.ScrollDelta), c.cfg.ZoomSpeed)
	}
}

func (c *Controller) axis(pos, neg int) float32 {
	var v float32
	if c.in.IsKeyDown(pos) {
		v++
	}
	if c.in.IsKeyDown(neg) {
		v--
	}
	return v
}
