package scene

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeTexture(t *testing.T) {
	data := encodePNG(t, 4, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	tex, err := DecodeTexture("tiny", bytes.NewReader(data), 0)
	if err != nil {
		t.Fatal(err)
	}
	if tex.Width != 4 || tex.Height != 2 || len(tex.Pixels) != 4*2*4 {
		t.Fatalf("%dx%d, %d bytes", tex.Width, tex.Height, len(tex.Pixels))
	}
	if got := tex.Pixels[:4]; !bytes.Equal(got, []byte{10, 20, 30, 255}) {
		t.Errorf("first pixel %v", got)
	}
}

func TestDecodeTextureDownscales(t *testing.T) {
	data := encodePNG(t, 64, 32, color.White)
	tex, err := DecodeTexture("big", bytes.NewReader(data), 16)
	if err != nil {
		t.Fatal(err)
	}
	if tex.Width != 16 || tex.Height != 8 {
		t.Errorf("%dx%d, want 16x8", tex.Width, tex.Height)
	}
	if len(tex.Pixels) != 16*8*4 {
		t.Errorf("%d bytes", len(tex.Pixels))
	}
}

func TestDecodeTextureRejectsGarbage(t *testing.T) {
	if _, err := DecodeTexture("junk", bytes.NewReader([]byte("not an image")), 0); err == nil {
		t.Fatal("expected error")
	}
}

func TestFitWithin(t *testing.T) {
	cases := []struct{ w, h, limit, ww, wh int }{
		{100, 50, 0, 100, 50},
		{100, 50, 200, 100, 50},
		{100, 50, 10, 10, 5},
		{50, 100, 10, 5, 10},
		{1000, 1, 10, 10, 1},
		{1, 1000, 10, 1, 10},
	}
	for _, c := range cases {
		w, h := fitWithin(c.w, c.h, c.limit)
		if w != c.ww || h != c.wh {
			t.Errorf("fitWithin(%d,%d,%d) = %d,%d want %d,%d", c.w, c.h, c.limit, w, h, c.ww, c.wh)
		}
	}
}

func TestLoadTexturesFallsBack(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ok.png"), encodePNG(t, 2, 2, color.Black), 0o644); err != nil {
		t.Fatal(err)
	}

	obs, logs := observer.New(zapcore.WarnLevel)
	cfg := LoaderConfig{Dir: dir, MaxSize: 64, Workers: 2}
	texs := LoadTextures(zap.New(obs), cfg,
		TextureRequest{File: "ok.png", Fallback: FallbackWhite},
		TextureRequest{File: "missing.jpg", Fallback: FallbackWhite},
		TextureRequest{File: "missing_normal.jpg", Fallback: FallbackNormal},
	)

	if len(texs) != 3 {
		t.Fatalf("%d textures", len(texs))
	}
	if texs[0].Width != 2 || texs[0].Height != 2 {
		t.Errorf("ok.png loaded as %dx%d", texs[0].Width, texs[0].Height)
	}
	if !bytes.Equal(texs[1].Pixels, FallbackWhite[:]) {
		t.Errorf("colour fallback %v", texs[1].Pixels)
	}
	if !bytes.Equal(texs[2].Pixels, FallbackNormal[:]) {
		t.Errorf("normal fallback %v", texs[2].Pixels)
	}
	if n := logs.FilterMessage("Texture load failed, using fallback").Len(); n != 2 {
		t.Errorf("%d fallback warnings, want 2", n)
	}
}

func TestLoadTexturesNilLogger(t *testing.T) {
	texs := LoadTextures(nil, LoaderConfig{Dir: t.TempDir()}, TextureRequest{File: "none.png", Fallback: FallbackWhite})
	if len(texs) != 1 || texs[0].Width != 1 {
		t.Fatalf("%+v", texs)
	}
}

func TestLoadTexturesReleasesWorkers(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ok.png"), encodePNG(t, 4, 4, color.White), 0o644); err != nil {
		t.Fatal(err)
	}
	before := runtime.NumGoroutine()

	cfg := LoaderConfig{Dir: dir, MaxSize: 64, Workers: 3}
	texs := LoadTextures(zap.NewNop(), cfg,
		TextureRequest{File: "ok.png", Fallback: FallbackWhite},
		TextureRequest{File: "ok.png", Fallback: FallbackWhite},
		TextureRequest{File: "missing.png", Fallback: FallbackWhite},
		TextureRequest{File: "ok.png", Fallback: FallbackWhite},
		TextureRequest{File: "missing.png", Fallback: FallbackNormal},
	)
	if len(texs) != 5 {
		t.Fatalf("%d textures", len(texs))
	}

	// Stopped workers exit asynchronously.
	deadline := time.Now().Add(2 * time.Second)
	for runtime.NumGoroutine() > before && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if after := runtime.NumGoroutine(); after > before {
		t.Errorf("goroutines before=%d after=%d", before, after)
	}
}

func TestShippedTexturesDecode(t *testing.T) {
	dir := filepath.Join("..", "assets", "textures")
	for _, name := range []string{"Bricks.png", "Tiles.png", "BricksNormal.png"} {
		tex, err := LoadTexture(filepath.Join(dir, name), DefaultLoaderConfig().MaxSize)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if tex.Width == 0 || tex.Height == 0 {
			t.Errorf("%s: empty %dx%d", name, tex.Width, tex.Height)
		}
		if name != "BricksNormal.png" {
			continue
		}
		// Tangent-space normals point mostly along +Z, stored in blue.
		var r, b int
		for i := 0; i < len(tex.Pixels); i += 4 {
			r += int(tex.Pixels[i])
			b += int(tex.Pixels[i+2])
		}
		if b <= r {
			t.Errorf("normal map not blue-dominant: r=%d b=%d", r, b)
		}
	}
}
