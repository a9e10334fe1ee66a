package ui

import (
	"strings"
	"testing"

	"lighting-sandbox/scene"
)

func TestSanitizeKeepsDefaults(t *testing.T) {
	f := scene.NewFrame(1080, 720)
	want := *f
	Sanitize(f)
	if f.Lights != want.Lights {
		t.Errorf("lights changed: %+v", f.Lights)
	}
	if f.Material != want.Material || f.Texture != want.Texture || f.Effect != want.Effect {
		t.Errorf("frame changed: %+v", f)
	}
}

func TestSanitizeClampsRanges(t *testing.T) {
	f := scene.NewFrame(1080, 720)
	f.Lights.Count = 12
	f.Lights.Spot.Range = 100
	f.Lights.Spot.OuterAngle = 400
	f.Lights.Spot.AngleFalloff = -1
	f.Material.Shininess = 0
	f.Material.SpecularK = 3
	f.Texture.ScrollSpeedX = -4
	f.Texture.ScaleY = 0.5
	f.Texture.NormalIntensity = 2
	f.Effect = 17

	Sanitize(f)

	checks := []struct {
		name      string
		got, want float32
	}{
		{"count", float32(f.Lights.Count), scene.MaxPointLights},
		{"spot range", f.Lights.Spot.Range, MaxSpotRange},
		{"outer angle", f.Lights.Spot.OuterAngle, MaxSpotAngle},
		{"falloff", f.Lights.Spot.AngleFalloff, 0},
		{"shininess", f.Material.Shininess, MinShininess},
		{"specular", f.Material.SpecularK, 1},
		{"scroll x", f.Texture.ScrollSpeedX, -MaxScroll},
		{"scale y", f.Texture.ScaleY, MinScale},
		{"normal intensity", f.Texture.NormalIntensity, 1},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if f.Effect != scene.EffectWave {
		t.Errorf("effect = %v", f.Effect)
	}
}

func TestSanitizeLeavesUnboundedValues(t *testing.T) {
	f := scene.NewFrame(1080, 720)
	f.Lights.Point.Intensity = 20
	f.Lights.Point.ConstK = -1
	f.Lights.Point.LinearK = 7
	f.Lights.Point.QuadraticK = 8
	f.Lights.Orbit.Radius = 80
	f.Lights.Orbit.Speed = -25
	f.Lights.Directional.Intensity = 3
	f.Lights.Spot.Intensity = 12

	Sanitize(f)

	checks := []struct {
		name      string
		got, want float32
	}{
		{"point intensity", f.Lights.Point.Intensity, 20},
		{"constK", f.Lights.Point.ConstK, -1},
		{"linearK", f.Lights.Point.LinearK, 7},
		{"quadraticK", f.Lights.Point.QuadraticK, 8},
		{"orbit radius", f.Lights.Orbit.Radius, 80},
		{"orbit speed", f.Lights.Orbit.Speed, -25},
		{"directional intensity", f.Lights.Directional.Intensity, 3},
		{"spot intensity", f.Lights.Spot.Intensity, 12},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestSanitizeInnerConeWithinOuter(t *testing.T) {
	f := scene.NewFrame(1080, 720)
	f.Lights.Spot.InnerAngle = 60
	f.Lights.Spot.OuterAngle = 45
	Sanitize(f)
	if f.Lights.Spot.InnerAngle != 45 {
		t.Errorf("inner = %v, want 45", f.Lights.Spot.InnerAngle)
	}
}

func TestSanitizeZeroLights(t *testing.T) {
	f := scene.NewFrame(1080, 720)
	f.Lights.Count = -2
	Sanitize(f)
	if f.Lights.Count != 0 {
		t.Errorf("count = %d", f.Lights.Count)
	}
}

func TestFrameStats(t *testing.T) {
	cs := NewControlSurface(scene.NewFrame(1080, 720))
	if got := cs.FrameStats(); got != "Frame: --" {
		t.Errorf("empty stats %q", got)
	}

	cs.sampleFrameTime(0.02)
	if got := cs.FrameStats(); !strings.Contains(got, "20.00 ms") || !strings.Contains(got, "50 FPS") {
		t.Errorf("stats %q", got)
	}

	cs.sampleFrameTime(0)
	if cs.frameTime != 0.02 {
		t.Errorf("zero delta changed average to %v", cs.frameTime)
	}

	cs.sampleFrameTime(0.12)
	if d := cs.frameTime - 0.03; d > 1e-6 || d < -1e-6 {
		t.Errorf("smoothed = %v, want 0.03", cs.frameTime)
	}
}
