package sim

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/gambino19/perlin-art/render"
)

var strokeWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// RenderCanvas draws the current frame onto the software canvas: fade the
// previous content toward the background, then blend this frame's segments
// on top.
func (s *Simulator) RenderCanvas(c *render.Canvas) {
	c.Fade(s.cfg.Render.Fade)
	for _, seg := range s.segments {
		c.DrawLine(seg.X0, seg.Y0, seg.X1, seg.Y1, strokeWhite, s.cfg.Render.LineAlpha)
	}
}

// Draw renders the current frame into the active raylib target (the
// preview's render texture). The translucent rectangle stands in for the
// canvas fade; additive blending gives overlapping trails the same buildup
// as the export path.
func (s *Simulator) Draw() {
	fade := uint8(s.cfg.Render.Fade * 255)
	rl.DrawRectangle(0, 0, int32(s.cfg.Canvas.Width), int32(s.cfg.Canvas.Height),
		rl.Color{R: 0, G: 0, B: 0, A: fade})

	alpha := uint8(s.cfg.Render.LineAlpha * 255)
	stroke := rl.Color{R: 255, G: 255, B: 255, A: alpha}

	rl.BeginBlendMode(rl.BlendAdditive)
	for _, seg := range s.segments {
		rl.DrawLineEx(
			rl.Vector2{X: float32(seg.X0), Y: float32(seg.Y0)},
			rl.Vector2{X: float32(seg.X1), Y: float32(seg.Y1)},
			1,
			stroke,
		)
	}
	rl.EndBlendMode()
}

// HUD returns the preview overlay line.
func (s *Simulator) HUD() string {
	return fmt.Sprintf("frame %d  lines %d", s.tick, s.count)
}
