package scene

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Texture holds decoded RGBA8 pixels, row-major, top row first.
type Texture struct {
	Name   string
	Width  int
	Height int
	Pixels []byte
}

// LoaderConfig controls startup texture loading.
type LoaderConfig struct {
	Dir     string // resolved relative to the working directory
	MaxSize int    // larger images are downscaled to fit; 0 disables
	Workers int    // decode goroutines
}

func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{
		Dir:     filepath.Join("assets", "textures"),
		MaxSize: 4096,
		Workers: 3,
	}
}

// LoadTexture reads and decodes an image file (JPEG, PNG, BMP, TIFF, WebP).
func LoadTexture(path string, maxSize int) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()
	return DecodeTexture(path, f, maxSize)
}

// DecodeTexture decodes an image stream into RGBA8, downscaling it with a
// bilinear filter when either side exceeds maxSize.
func DecodeTexture(name string, r io.Reader, maxSize int) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", name, err)
	}

	b := img.Bounds()
	w, h := fitWithin(b.Dx(), b.Dy(), maxSize)
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(rgba, rgba.Bounds(), img, b, draw.Src, nil)
	}

	return &Texture{
		Name:   name,
		Width:  w,
		Height: h,
		Pixels: rgba.Pix,
	}, nil
}

// fitWithin scales w×h down to fit a limit×limit box, keeping aspect and never
// going below 1 pixel.
func fitWithin(w, h, limit int) (int, int) {
	if limit <= 0 || (w <= limit && h <= limit) {
		return w, h
	}
	if w >= h {
		h = h * limit / w
		w = limit
	} else {
		w = w * limit / h
		h = limit
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// NewSolidTexture creates a 1x1 texture of one colour.
func NewSolidTexture(name string, r, g, b, a uint8) *Texture {
	return &Texture{
		Name:   name,
		Width:  1,
		Height: 1,
		Pixels: []byte{r, g, b, a},
	}
}

// TextureRequest names a file under LoaderConfig.Dir and the colour used
// when it cannot be loaded.
type TextureRequest struct {
	File     string
	Fallback [4]uint8
}

// Fallback colours: opaque white for colour maps, a flat +Z normal for
// normal maps.
var (
	FallbackWhite  = [4]uint8{255, 255, 255, 255}
	FallbackNormal = [4]uint8{128, 128, 255, 255}
)

// LoadTextures decodes the requested files in parallel. The result has one
// entry per request, in order. A file that fails to load is logged and
// replaced by a 1x1 texture of its fallback colour, so the caller always
// gets something bindable.
func LoadTextures(log *zap.Logger, cfg LoaderConfig, reqs ...TextureRequest) []*Texture {
	if log == nil {
		log = zap.NewNop()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	out := make([]*Texture, len(reqs))
	errs := make([]error, len(reqs))

	// One single-worker pool per lane: Stop only reaches every worker of a
	// pool when it has exactly one.
	lanes := make([]worker.DynamicWorkerPool, min(workers, len(reqs)))
	for i := range lanes {
		lanes[i] = worker.NewDynamicWorkerPool(1, len(reqs), 1*time.Second)
	}
	defer func() {
		for _, lane := range lanes {
			lane.Stop()
		}
	}()

	var wg sync.WaitGroup
	for i, req := range reqs {
		i, path := i, filepath.Join(cfg.Dir, req.File)
		wg.Add(1)
		lanes[i%len(lanes)].SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				out[i], errs[i] = LoadTexture(path, cfg.MaxSize)
				return nil, errs[i]
			},
		})
	}
	wg.Wait()

	for i, req := range reqs {
		if errs[i] != nil || out[i] == nil {
			log.Warn("Texture load failed, using fallback",
				zap.String("texture", req.File), zap.Error(errs[i]))
			c := req.Fallback
			out[i] = NewSolidTexture(req.File, c[0], c[1], c[2], c[3])
			continue
		}
		log.Info("Texture loaded",
			zap.String("texture", req.File),
			zap.Int("width", out[i].Width), zap.Int("height", out[i].Height))
	}
	return out
}
