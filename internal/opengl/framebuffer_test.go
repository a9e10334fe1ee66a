package opengl

import (
	"errors"
	"testing"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"lighting-sandbox/internal/opengl/gltest"
)

var _ Device = (*gltest.Recorder)(nil)

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestRenderTargetSetColorTargets(t *testing.T) {
	for n := 1; n <= MaxColorTargets; n++ {
		dev := gltest.NewRecorder()
		rts, err := NewRenderTargetSet(dev, zap.NewNop(), TargetSetConfig{
			Name: "scene", ColorTargets: n, Width: 640, Height: 480,
		})
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if rts.ColorCount() != n {
			t.Errorf("n=%d: ColorCount = %d", n, rts.ColorCount())
		}

		seen := make(map[uint32]bool)
		for i := 0; i < n; i++ {
			id, err := rts.ColorTexture(i)
			if err != nil {
				t.Fatalf("n=%d: ColorTexture(%d): %v", n, i, err)
			}
			if seen[id] {
				t.Errorf("n=%d: target %d reuses handle %d", n, i, id)
			}
			seen[id] = true

			tex := dev.Textures[id]
			if tex == nil {
				t.Fatalf("n=%d: target %d not a live texture", n, i)
			}
			if tex.Width != 640 || tex.Height != 480 {
				t.Errorf("n=%d: target %d is %dx%d", n, i, tex.Width, tex.Height)
			}
			if tex.InternalFormat != gl.RGBA8 {
				t.Errorf("n=%d: target %d format 0x%X", n, i, tex.InternalFormat)
			}
			if tex.Params[gl.TEXTURE_MIN_FILTER] != gl.LINEAR {
				t.Errorf("n=%d: target %d min filter 0x%X", n, i, tex.Params[gl.TEXTURE_MIN_FILTER])
			}
			if tex.Mipmapped {
				t.Errorf("n=%d: target %d should have no mip chain", n, i)
			}
		}

		bufs := dev.DrawBufs[rts.fbo]
		if len(bufs) != n {
			t.Fatalf("n=%d: %d draw buffers", n, len(bufs))
		}
		for i, b := range bufs {
			if b != gl.COLOR_ATTACHMENT0+uint32(i) {
				t.Errorf("n=%d: draw buffer %d = 0x%X", n, i, b)
			}
		}
		if !rts.Complete() {
			t.Errorf("n=%d: expected complete", n)
		}
	}
}

func TestRenderTargetSetInvalidConfig(t *testing.T) {
	cases := []TargetSetConfig{
		{ColorTargets: 0, Width: 10, Height: 10},
		{ColorTargets: MaxColorTargets + 1, Width: 10, Height: 10},
		{ColorTargets: 1, Width: 0, Height: 10},
		{ColorTargets: 1, Width: 10, Height: -1},
	}
	for _, cfg := range cases {
		dev := gltest.NewRecorder()
		_, err := NewRenderTargetSet(dev, nil, cfg)
		if !errors.Is(err, ErrInvalidTargetConfig) {
			t.Errorf("%+v: err = %v", cfg, err)
		}
		if dev.Live() != 0 {
			t.Errorf("%+v: %d objects leaked", cfg, dev.Live())
		}
	}
}

func TestRenderTargetSetMismatchedDepthIsIncomplete(t *testing.T) {
	dev := gltest.NewRecorder()
	log, logs := observedLogger()

	rts, err := NewRenderTargetSet(dev, log, TargetSetConfig{
		Name: "shadow", ColorTargets: 1, Width: 256, Height: 256,
		Depth: DepthTexture, DepthWidth: 128, DepthHeight: 128,
	})
	if err != nil {
		t.Fatalf("mismatch should not be a construction error: %v", err)
	}
	if rts.Complete() {
		t.Error("mismatched depth should be incomplete")
	}

	warnings := logs.FilterMessage("Render target set incomplete").All()
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings", len(warnings))
	}
	if warnings[0].Level != zapcore.WarnLevel {
		t.Errorf("level = %v", warnings[0].Level)
	}
	if got := warnings[0].ContextMap()["dimensionsMatch"]; got != false {
		t.Errorf("dimensionsMatch = %v", got)
	}

	// Still usable.
	rts.Bind()
	if dev.BoundFramebuffer == 0 {
		t.Error("Bind should bind the set even when incomplete")
	}
}

func TestRenderTargetSetDriverIncomplete(t *testing.T) {
	dev := gltest.NewRecorder()
	dev.Status = gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT
	log, logs := observedLogger()

	rts, err := NewRenderTargetSet(dev, log, DefaultTargetSetConfig("scene", 32, 32))
	if err != nil {
		t.Fatal(err)
	}
	if rts.Complete() {
		t.Error("driver status should make the set incomplete")
	}
	if logs.FilterMessage("Render target set incomplete").Len() != 1 {
		t.Error("expected an incomplete warning")
	}
}

func TestRenderTargetSetColorTextureOutOfRange(t *testing.T) {
	dev := gltest.NewRecorder()
	rts, err := NewRenderTargetSet(dev, nil, TargetSetConfig{ColorTargets: 2, Width: 8, Height: 8})
	if err != nil {
		t.Fatal(err)
	}
	for _, i := range []int{-1, 2, 100} {
		if _, err := rts.ColorTexture(i); !errors.Is(err, ErrTargetIndex) {
			t.Errorf("ColorTexture(%d): err = %v", i, err)
		}
	}
}

func TestRenderTargetSetDepthStrategies(t *testing.T) {
	dev := gltest.NewRecorder()
	rb, err := NewRenderTargetSet(dev, nil, TargetSetConfig{ColorTargets: 2, Width: 64, Height: 32})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := rb.DepthTexture(); !errors.Is(err, ErrNoDepthTexture) {
		t.Errorf("renderbuffer set: err = %v", err)
	}
	att := dev.Attachments[rb.fbo][gl.DEPTH_ATTACHMENT]
	if size, ok := dev.Renderbuffers[att]; !ok || size != [2]int32{64, 32} {
		t.Errorf("depth renderbuffer %d size %v", att, size)
	}

	tx, err := NewRenderTargetSet(dev, nil, TargetSetConfig{ColorTargets: 1, Width: 64, Height: 32, Depth: DepthTexture})
	if err != nil {
		t.Fatal(err)
	}
	id, err := tx.DepthTexture()
	if err != nil {
		t.Fatal(err)
	}
	if dev.Attachments[tx.fbo][gl.DEPTH_ATTACHMENT] != id {
		t.Error("depth texture not attached")
	}
	tex := dev.Textures[id]
	if tex.InternalFormat != gl.DEPTH_COMPONENT32F {
		t.Errorf("depth format 0x%X", tex.InternalFormat)
	}
	if tex.Params[gl.TEXTURE_COMPARE_MODE] != gl.COMPARE_REF_TO_TEXTURE {
		t.Error("depth texture should enable compare mode")
	}
}

func TestRenderTargetSetLeavesTextureBindingCleared(t *testing.T) {
	dev := gltest.NewRecorder()
	dev.ActiveTexture(3)
	dev.BindTexture(99)

	if _, err := NewRenderTargetSet(dev, nil, TargetSetConfig{ColorTargets: 1, Width: 4, Height: 4}); err != nil {
		t.Fatal(err)
	}
	if dev.UnitTextures[3] != 0 {
		t.Errorf("unit 3 binding = %d, want 0", dev.UnitTextures[3])
	}
	if dev.BoundFramebuffer != 0 {
		t.Error("construction should restore the default framebuffer")
	}
}

func TestRenderTargetSetBindSetsViewport(t *testing.T) {
	dev := gltest.NewRecorder()
	rts, err := NewRenderTargetSet(dev, nil, TargetSetConfig{ColorTargets: 1, Width: 300, Height: 200})
	if err != nil {
		t.Fatal(err)
	}
	rts.Bind()
	if dev.BoundFramebuffer != rts.fbo {
		t.Errorf("bound %d, want %d", dev.BoundFramebuffer, rts.fbo)
	}
	if dev.ViewportRect != [4]int32{0, 0, 300, 200} {
		t.Errorf("viewport %v", dev.ViewportRect)
	}
}

func TestRenderTargetSetResize(t *testing.T) {
	dev := gltest.NewRecorder()
	rts, err := NewRenderTargetSet(dev, nil, TargetSetConfig{ColorTargets: 2, Width: 100, Height: 100, Depth: DepthTexture})
	if err != nil {
		t.Fatal(err)
	}
	before := dev.Live()
	old, _ := rts.ColorTexture(0)

	if err := rts.Resize(200, 150); err != nil {
		t.Fatal(err)
	}
	if dev.Live() != before {
		t.Errorf("live objects %d, want %d", dev.Live(), before)
	}
	if _, ok := dev.Textures[old]; ok {
		t.Error("old colour target should be deleted")
	}
	for i := 0; i < 2; i++ {
		id, _ := rts.ColorTexture(i)
		if tex := dev.Textures[id]; tex.Width != 200 || tex.Height != 150 {
			t.Errorf("target %d is %dx%d", i, tex.Width, tex.Height)
		}
	}
	depth, _ := rts.DepthTexture()
	if tex := dev.Textures[depth]; tex.Width != 200 || tex.Height != 150 {
		t.Errorf("depth is %dx%d", tex.Width, tex.Height)
	}

	if err := rts.Resize(0, 10); !errors.Is(err, ErrInvalidTargetConfig) {
		t.Errorf("Resize(0,10): %v", err)
	}
}

func TestRenderTargetSetDestroyIsIdempotent(t *testing.T) {
	dev := gltest.NewRecorder()
	rts, err := NewRenderTargetSet(dev, nil, TargetSetConfig{ColorTargets: 3, Width: 16, Height: 16})
	if err != nil {
		t.Fatal(err)
	}
	rts.Destroy()
	if dev.Live() != 0 {
		t.Errorf("%d objects alive after Destroy", dev.Live())
	}
	deletes := dev.Count("DeleteTexture") + dev.Count("DeleteFramebuffer") + dev.Count("DeleteRenderbuffer")

	rts.Destroy()
	again := dev.Count("DeleteTexture") + dev.Count("DeleteFramebuffer") + dev.Count("DeleteRenderbuffer")
	if again != deletes {
		t.Errorf("second Destroy issued %d more deletes", again-deletes)
	}
	if err := rts.Resize(32, 32); err == nil {
		t.Error("Resize after Destroy should fail")
	}
}
