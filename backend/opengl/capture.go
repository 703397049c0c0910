package opengl

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Capture reads back the framebuffer drawn by the last Frame.
func (a *App) Capture() *image.RGBA {
	w, h := a.Window.GetFramebufferSize()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	flipRows(img.Pix, w*4, h)
	return img
}

// flipRows reverses the row order in place. GL's origin is bottom-left.
func flipRows(pix []byte, stride, height int) {
	tmp := make([]byte, stride)
	for y := range height / 2 {
		top := pix[y*stride : (y+1)*stride]
		bot := pix[(height-1-y)*stride : (height-y)*stride]
		copy(tmp, top)
		copy(top, bot)
		copy(bot, tmp)
	}
}

// WriteJPEG encodes img to path.
func WriteJPEG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
