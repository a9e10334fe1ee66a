// Package input polls keyboard and mouse state once per frame and turns it
// into camera movement and toggles.
package input

import "lighting-sandbox/core"

// Source is what the manager polls. *core.Window implements it.
type Source interface {
	IsKeyPressed(key int) bool
	IsMouseButtonPressed(button int) bool
	GetCursorPos() (float64, float64)
}

// Manager tracks mouse and keyboard state between frames.
type Manager struct {
	// Mouse state
	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	lastMouseX, lastMouseY   float64
	ScrollDelta              float64

	// Button states
	mouseButtons     [8]bool
	mouseButtonsPrev [8]bool

	// Key states
	keys     [512]bool
	keysPrev [512]bool

	src        Source
	firstFrame bool
}

// Keys the manager polls each frame.
var polledKeys = []int{
	core.KeyW, core.KeyA, core.KeyS, core.KeyD, core.KeyQ, core.KeyE,
	core.KeyR, core.Key1, core.KeyEscape,
}

var polledButtons = []int{
	core.MouseButtonLeft, core.MouseButtonRight, core.MouseButtonMiddle,
}

func NewManager(src Source) *Manager {
	return &Manager{src: src, firstFrame: true}
}

// AddScroll accumulates wheel movement until the next EndFrame. Hook it to
// the window's scroll callback.
func (m *Manager) AddScroll(yoff float64) {
	m.ScrollDelta += yoff
}

// Update polls the source. Call once per frame after event polling.
func (m *Manager) Update() {
	x, y := m.src.GetCursorPos()
	if m.firstFrame {
		m.lastMouseX = x
		m.lastMouseY = y
		m.firstFrame = false
	}
	m.MouseDeltaX = x - m.lastMouseX
	m.MouseDeltaY = y - m.lastMouseY
	m.lastMouseX = x
	m.lastMouseY = y
	m.MouseX = x
	m.MouseY = y

	copy(m.mouseButtonsPrev[:], m.mouseButtons[:])
	copy(m.keysPrev[:], m.keys[:])

	for _, b := range polledButtons {
		m.mouseButtons[b] = m.src.IsMouseButtonPressed(b)
	}
	for _, k := range polledKeys {
		if k >= 0 && k < len(m.keys) {
			m.keys[k] = m.src.IsKeyPressed(k)
		}
	}
}

// ResetMouse makes the next Update report zero cursor delta. Used when the
// cursor mode changes and GLFW warps the position.
func (m *Manager) ResetMouse() {
	m.firstFrame = true
}

// EndFrame clears per-frame state
func (m *Manager) EndFrame() {
	m.ScrollDelta = 0
}

// --- Mouse Queries ---

func (m *Manager) IsMouseDown(button int) bool {
	if button < 0 || button >= len(m.mouseButtons) {
		return false
	}
	return m.mouseButtons[button]
}

func (m *Manager) IsMousePressed(button int) bool {
	if button < 0 || button >= len(m.mouseButtons) {
		return false
	}
	return m.mouseButtons[button] && !m.mouseButtonsPrev[button]
}

// --- Key Queries ---

func (m *Manager) IsKeyDown(key int) bool {
	if key < 0 || key >= len(m.keys) {
		return false
	}
	return m.keys[key]
}

func (m *Manager) IsKeyPressed(key int) bool {
	if key < 0 || key >= len(m.keys) {
		return false
	}
	return m.keys[key] && !m.keysPrev[key]
}
