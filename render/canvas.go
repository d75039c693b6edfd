// Package render provides a software canvas for headless frame rendering.
// Strokes are alpha-blended onto a persistent buffer that fades toward the
// background each frame, which is what gives trails their ghosting look.
package render

import (
	"image"
	"image/color"
)

// Canvas is a persistent grayscale drawing surface.
type Canvas struct {
	w, h    int
	img     *image.RGBA
	bg      color.RGBA
	palette color.Palette
}

// NewCanvas creates a canvas filled with the background color.
func NewCanvas(w, h int, bg color.RGBA) *Canvas {
	c := &Canvas{
		w:   w,
		h:   h,
		img: image.NewRGBA(image.Rect(0, 0, w, h)),
		bg:  bg,
	}

	// 256-level grayscale palette; strokes are white on black so every
	// pixel stays on the gray axis and quantization is exact.
	c.palette = make(color.Palette, 256)
	for i := range c.palette {
		g := uint8(i)
		c.palette[i] = color.RGBA{R: g, G: g, B: g, A: 255}
	}

	c.Clear()
	return c
}

// Clear resets the canvas to the background color.
func (c *Canvas) Clear() {
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			c.img.SetRGBA(x, y, c.bg)
		}
	}
}

// Fade blends every pixel toward the background by t in [0, 1].
// t=0 leaves the canvas unchanged; t=1 clears it.
func (c *Canvas) Fade(t float64) {
	if t <= 0 {
		return
	}
	pix := c.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = blendChannel(pix[i], c.bg.R, t)
		pix[i+1] = blendChannel(pix[i+1], c.bg.G, t)
		pix[i+2] = blendChannel(pix[i+2], c.bg.B, t)
		pix[i+3] = 255
	}
}

// DrawLine draws an alpha-blended line segment. Pixels outside the canvas
// are skipped. Blending matches the classic over operator against whatever
// is already on the canvas.
func (c *Canvas) DrawLine(x0, y0, x1, y1 float64, col color.RGBA, alpha float64) {
	if alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}

	// Bresenham over rounded endpoints
	ix0, iy0 := int(x0+0.5), int(y0+0.5)
	ix1, iy1 := int(x1+0.5), int(y1+0.5)

	dx := absInt(ix1 - ix0)
	dy := -absInt(iy1 - iy0)
	sx := 1
	if ix0 > ix1 {
		sx = -1
	}
	sy := 1
	if iy0 > iy1 {
		sy = -1
	}
	err := dx + dy

	for {
		c.blendPixel(ix0, iy0, col, alpha)
		if ix0 == ix1 && iy0 == iy1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ix0 += sx
		}
		if e2 <= dx {
			err += dx
			iy0 += sy
		}
	}
}

func (c *Canvas) blendPixel(x, y int, col color.RGBA, alpha float64) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	i := c.img.PixOffset(x, y)
	pix := c.img.Pix
	pix[i] = blendChannel(pix[i], col.R, alpha)
	pix[i+1] = blendChannel(pix[i+1], col.G, alpha)
	pix[i+2] = blendChannel(pix[i+2], col.B, alpha)
	pix[i+3] = 255
}

// blendChannel moves src toward dst by t.
func blendChannel(src, dst uint8, t float64) uint8 {
	return uint8((1-t)*float64(src) + t*float64(dst) + 0.5)
}

// At returns the canvas pixel at (x, y).
func (c *Canvas) At(x, y int) color.RGBA {
	return c.img.RGBAAt(x, y)
}

// Image returns the live backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Frame snapshots the canvas as a paletted frame for animation encoding.
func (c *Canvas) Frame() *image.Paletted {
	p := image.NewPaletted(image.Rect(0, 0, c.w, c.h), c.palette)
	pix := c.img.Pix
	for i := range p.Pix {
		// Red channel carries the gray level
		p.Pix[i] = pix[i*4]
	}
	return p
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
