package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"lighting-sandbox/scene"
)

// TextureFormat is the storage format of a render target texture.
type TextureFormat int

const (
	FormatRGBA8    TextureFormat = iota // colour, 8 bits per channel
	FormatDepth32F                      // 32-bit float depth
)

func (f TextureFormat) String() string {
	switch f {
	case FormatRGBA8:
		return "RGBA8"
	case FormatDepth32F:
		return "DEPTH32F"
	}
	return fmt.Sprintf("TextureFormat(%d)", int(f))
}

// TextureTarget is a 2D texture that can be attached to a framebuffer and
// later sampled. It is owned by the RenderTargetSet that created it.
type TextureTarget struct {
	ID     uint32
	Width  int32
	Height int32
	Format TextureFormat
	Filter int32 // GL_LINEAR or GL_NEAREST
}

// newTextureTarget allocates storage without a mip chain. It leaves the
// TEXTURE_2D binding of the active unit at 0.
func newTextureTarget(dev Device, format TextureFormat, width, height int32) *TextureTarget {
	t := &TextureTarget{
		ID:     dev.GenTexture(),
		Width:  width,
		Height: height,
		Format: format,
		Filter: gl.LINEAR,
	}

	dev.BindTexture(t.ID)
	switch format {
	case FormatDepth32F:
		dev.TexImage2D(gl.DEPTH_COMPONENT32F, width, height, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
		dev.TexParameteri(gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		dev.TexParameteri(gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		dev.TexParameteri(gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
		dev.TexParameteri(gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
		// Samples outside the map read as fully lit.
		dev.TexParameterfv(gl.TEXTURE_BORDER_COLOR, []float32{1, 1, 1, 1})
		dev.TexParameteri(gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
		dev.TexParameteri(gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)
	default:
		dev.TexImage2D(gl.RGBA8, width, height, gl.RGBA, gl.UNSIGNED_BYTE, nil)
		dev.TexParameteri(gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		dev.TexParameteri(gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		dev.TexParameteri(gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		dev.TexParameteri(gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	}
	dev.BindTexture(0)
	return t
}

func (t *TextureTarget) release(dev Device) {
	if t == nil || t.ID == 0 {
		return
	}
	dev.DeleteTexture(t.ID)
	t.ID = 0
}

// UploadTexture uploads a decoded image as a repeating, mipmapped RGBA
// texture and returns its handle.
func UploadTexture(dev Device, tex *scene.Texture) (uint32, error) {
	if tex == nil {
		return 0, fmt.Errorf("nil texture")
	}
	if len(tex.Pixels) != tex.Width*tex.Height*4 {
		return 0, fmt.Errorf("texture %q: %d bytes for %dx%d RGBA", tex.Name, len(tex.Pixels), tex.Width, tex.Height)
	}

	id := dev.GenTexture()
	dev.BindTexture(id)
	dev.TexParameteri(gl.TEXTURE_WRAP_S, gl.REPEAT)
	dev.TexParameteri(gl.TEXTURE_WRAP_T, gl.REPEAT)
	dev.TexParameteri(gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	dev.TexParameteri(gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	dev.TexImage2D(gl.RGBA8, int32(tex.Width), int32(tex.Height), gl.RGBA, gl.UNSIGNED_BYTE, tex.Pixels)
	dev.GenerateMipmap()
	dev.BindTexture(0)
	return id, nil
}
