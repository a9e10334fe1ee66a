package assets

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
)

func TestShadersEmbedded(t *testing.T) {
	sources := map[string]string{
		"LitVert":    LitVert,
		"LitFrag":    LitFrag,
		"UnlitFrag":  UnlitFrag,
		"ShadowVert": ShadowVert,
		"ShadowFrag": ShadowFrag,
		"PostVert":   PostVert,
		"PostFrag":   PostFrag,
	}
	for name, src := range sources {
		if !strings.HasPrefix(src, "#version 410 core") {
			t.Errorf("%s: missing #version 410 core header", name)
		}
	}
}

func TestLitShaderDeclaresUniforms(t *testing.T) {
	for _, u := range []string{
		"_Projection", "_View", "_Model",
	} {
		if !strings.Contains(LitVert, u) {
			t.Errorf("LitVert missing %s", u)
		}
	}
	for _, u := range []string{
		"time", "scrollSpeedX", "scrollSpeedY", "scalingX", "scalingY", "normalIntensity",
		"_Texture1", "_Texture2", "_Normal", "_ShadowMap",
		"_Material", "_CameraPosition", "_PointLights", "lightCount",
		"_DirectionalLight", "_SpotLight",
		"constK", "linearK", "quadraticK",
	} {
		if !strings.Contains(LitFrag, u) {
			t.Errorf("LitFrag missing %s", u)
		}
	}
}

func TestLitShaderWritesTwoTargets(t *testing.T) {
	for _, decl := range []string{"layout(location = 0) out", "layout(location = 1) out"} {
		if !strings.Contains(LitFrag, decl) {
			t.Errorf("LitFrag missing %q", decl)
		}
	}
}

func TestPostShaderDeclaresEffects(t *testing.T) {
	for _, u := range []string{"_Texture1", "effectIndex", "time"} {
		if !strings.Contains(PostFrag, u) {
			t.Errorf("PostFrag missing %s", u)
		}
	}
	defines := effectDefines(PostFrag)
	want := map[string]int{
		"EFFECT_NONE":     0,
		"EFFECT_INVERT":   1,
		"EFFECT_RED":      2,
		"EFFECT_ZOOM_OUT": 3,
		"EFFECT_WAVE":     4,
	}
	for name, v := range want {
		if got, ok := defines[name]; !ok || got != v {
			t.Errorf("%s = %d (defined %v), want %d", name, got, ok, v)
		}
	}
}

var (
	defineRe = regexp.MustCompile(`(?m)^#define\s+(EFFECT_\w+)\s+(\d+)\s*$`)
	ifRe     = regexp.MustCompile(`^(\}\s*else\s+)?if\s*\((.+)\)\s*\{$`)
	effectRe = regexp.MustCompile(`^effectIndex\s*==\s*(EFFECT_\w+)$`)
)

func effectDefines(src string) map[string]int {
	out := make(map[string]int)
	for _, m := range defineRe.FindAllStringSubmatch(src, -1) {
		v, _ := strconv.Atoi(m[2])
		out[m[1]] = v
	}
	return out
}

// With effectIndex 0 the post shader must return the sampled texel as is:
// the only statements reachable outside an effect branch are the identity
// ones, and every branch is guarded by a non-zero effect.
func TestPostShaderNoneIsPassThrough(t *testing.T) {
	defines := effectDefines(PostFrag)
	start := strings.Index(PostFrag, "void main() {")
	if start < 0 {
		t.Fatal("PostFrag has no main")
	}
	body := strings.Split(PostFrag[start+len("void main() {"):], "\n")

	identity := map[string]bool{
		"vec2 uv = UV;":                       true,
		"vec4 color = texture(_Texture1, uv);": true,
		"FragColor = color;":                  true,
	}
	seen := 0
	depth := 0
	for n, raw := range body {
		line := strings.TrimSpace(raw)
		switch {
		case line == "" || strings.HasPrefix(line, "//"):
			continue
		case ifRe.MatchString(line):
			m := ifRe.FindStringSubmatch(line)
			if m[1] == "" {
				depth++
			}
			if depth != 1 {
				t.Fatalf("line %d: nested branch %q", n, line)
			}
			e := effectRe.FindStringSubmatch(strings.TrimSpace(m[2]))
			if e == nil {
				t.Errorf("line %d: branch not keyed on an effect: %q", n, line)
				continue
			}
			if v, ok := defines[e[1]]; !ok || v == 0 {
				t.Errorf("line %d: branch reachable with effectIndex 0: %q", n, line)
			}
		case strings.HasPrefix(line, "}") && strings.Contains(line, "else"):
			t.Errorf("line %d: unguarded else reachable with effectIndex 0", n)
		case line == "}":
			if depth == 0 {
				// end of main
				if seen != len(identity) {
					t.Errorf("%d identity statements, want %d", seen, len(identity))
				}
				return
			}
			depth--
		case depth == 0:
			if !identity[line] {
				t.Errorf("line %d: unconditional statement %q changes the image", n, line)
			}
			seen++
		}
	}
	t.Error("main body not closed")
}
