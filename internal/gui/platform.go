package gui

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"
)

var mouseButtons = [...]glfw.MouseButton{
	glfw.MouseButtonLeft,
	glfw.MouseButtonRight,
	glfw.MouseButtonMiddle,
}

// Platform feeds GLFW input and timing into ImGui. It installs its callbacks
// on top of any already set on the window and forwards every event to them,
// so application input handlers keep working.
type Platform struct {
	io     imgui.IO
	window *glfw.Window
	time   float64

	mouseJustPressed [len(mouseButtons)]bool

	prevMouse  glfw.MouseButtonCallback
	prevScroll glfw.ScrollCallback
	prevKey    glfw.KeyCallback
	prevChar   glfw.CharCallback
}

func NewPlatform(window *glfw.Window, io imgui.IO) *Platform {
	p := &Platform{io: io, window: window}
	p.mapKeys()
	p.prevMouse = window.SetMouseButtonCallback(p.onMouseButton)
	p.prevScroll = window.SetScrollCallback(p.onScroll)
	p.prevKey = window.SetKeyCallback(p.onKey)
	p.prevChar = window.SetCharCallback(p.onChar)
	return p
}

// Dispose hands the window callbacks back to whoever had them before.
func (p *Platform) Dispose() {
	p.window.SetMouseButtonCallback(p.prevMouse)
	p.window.SetScrollCallback(p.prevScroll)
	p.window.SetKeyCallback(p.prevKey)
	p.window.SetCharCallback(p.prevChar)
}

func (p *Platform) DisplaySize() [2]float32 {
	w, h := p.window.GetSize()
	return [2]float32{float32(w), float32(h)}
}

func (p *Platform) FramebufferSize() [2]float32 {
	w, h := p.window.GetFramebufferSize()
	return [2]float32{float32(w), float32(h)}
}

// NewFrame updates display size, delta time, cursor and buttons. Call it
// before imgui.NewFrame.
func (p *Platform) NewFrame() {
	size := p.DisplaySize()
	p.io.SetDisplaySize(imgui.Vec2{X: size[0], Y: size[1]})

	now := glfw.GetTime()
	if p.time > 0 {
		p.io.SetDeltaTime(float32(now - p.time))
	}
	p.time = now

	// A locked cursor drives the camera, not the UI.
	if p.window.GetAttrib(glfw.Focused) != 0 && p.window.GetInputMode(glfw.CursorMode) == glfw.CursorNormal {
		x, y := p.window.GetCursorPos()
		p.io.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
	} else {
		p.io.SetMousePosition(imgui.Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32})
	}

	for i, button := range mouseButtons {
		down := p.mouseJustPressed[i] || p.window.GetMouseButton(button) == glfw.Press
		p.io.SetMouseButtonDown(i, down)
		p.mouseJustPressed[i] = false
	}
}

func (p *Platform) mapKeys() {
	keys := map[int]glfw.Key{
		imgui.KeyTab:        glfw.KeyTab,
		imgui.KeyLeftArrow:  glfw.KeyLeft,
		imgui.KeyRightArrow: glfw.KeyRight,
		imgui.KeyUpArrow:    glfw.KeyUp,
		imgui.KeyDownArrow:  glfw.KeyDown,
		imgui.KeyPageUp:     glfw.KeyPageUp,
		imgui.KeyPageDown:   glfw.KeyPageDown,
		imgui.KeyHome:       glfw.KeyHome,
		imgui.KeyEnd:        glfw.KeyEnd,
		imgui.KeyInsert:     glfw.KeyInsert,
		imgui.KeyDelete:     glfw.KeyDelete,
		imgui.KeyBackspace:  glfw.KeyBackspace,
		imgui.KeySpace:      glfw.KeySpace,
		imgui.KeyEnter:      glfw.KeyEnter,
		imgui.KeyEscape:     glfw.KeyEscape,
		imgui.KeyA:          glfw.KeyA,
		imgui.KeyC:          glfw.KeyC,
		imgui.KeyV:          glfw.KeyV,
		imgui.KeyX:          glfw.KeyX,
		imgui.KeyY:          glfw.KeyY,
		imgui.KeyZ:          glfw.KeyZ,
	}
	for imguiKey, key := range keys {
		p.io.KeyMap(imguiKey, int(key))
	}
}

// ── Callbacks ────────────────────────────────────────────────────────────────

func (p *Platform) onMouseButton(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Press {
		if i := buttonIndex(button); i >= 0 {
			p.mouseJustPressed[i] = true
		}
	}
	if p.prevMouse != nil {
		p.prevMouse(w, button, action, mods)
	}
}

func (p *Platform) onScroll(w *glfw.Window, x, y float64) {
	p.io.AddMouseWheelDelta(float32(x), float32(y))
	if p.prevScroll != nil {
		p.prevScroll(w, x, y)
	}
}

func (p *Platform) onKey(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	switch action {
	case glfw.Press:
		p.io.KeyPress(int(key))
	case glfw.Release:
		p.io.KeyRelease(int(key))
	}
	p.io.KeyCtrl(int(glfw.KeyLeftControl), int(glfw.KeyRightControl))
	p.io.KeyShift(int(glfw.KeyLeftShift), int(glfw.KeyRightShift))
	p.io.KeyAlt(int(glfw.KeyLeftAlt), int(glfw.KeyRightAlt))
	p.io.KeySuper(int(glfw.KeyLeftSuper), int(glfw.KeyRightSuper))

	if p.prevKey != nil {
		p.prevKey(w, key, scancode, action, mods)
	}
}

func (p *Platform) onChar(w *glfw.Window, char rune) {
	p.io.AddInputCharacters(string(char))
	if p.prevChar != nil {
		p.prevChar(w, char)
	}
}

// buttonIndex maps a GLFW button to ImGui's mouse index, or -1.
func buttonIndex(button glfw.MouseButton) int {
	for i, b := range mouseButtons {
		if b == button {
			return i
		}
	}
	return -1
}
