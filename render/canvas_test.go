package render

import (
	"image/color"
	"testing"
)

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
)

func TestDrawLineFullAlpha(t *testing.T) {
	c := NewCanvas(10, 10, black)
	c.DrawLine(0, 5, 9, 5, white, 1.0)

	for x := 0; x < 10; x++ {
		if got := c.At(x, 5); got.R != 255 {
			t.Errorf("pixel (%d, 5).R = %d, want 255", x, got.R)
		}
	}
	if got := c.At(5, 4); got.R != 0 {
		t.Errorf("pixel off the line was painted: %v", got)
	}
}

func TestDrawLinePartialAlphaAccumulates(t *testing.T) {
	c := NewCanvas(4, 4, black)

	c.DrawLine(1, 1, 1, 1, white, 0.2)
	first := c.At(1, 1).R
	if first == 0 || first == 255 {
		t.Fatalf("partial alpha stroke gave %d, want intermediate gray", first)
	}

	c.DrawLine(1, 1, 1, 1, white, 0.2)
	second := c.At(1, 1).R
	if second <= first {
		t.Errorf("overdraw did not brighten: %d then %d", first, second)
	}
}

func TestDrawLineClipsOutside(t *testing.T) {
	c := NewCanvas(8, 8, black)
	// Must not panic; off-canvas pixels are dropped
	c.DrawLine(-20, -20, 30, 30, white, 1.0)

	if got := c.At(4, 4); got.R != 255 {
		t.Errorf("diagonal through canvas missing at (4,4): %v", got)
	}
}

func TestFade(t *testing.T) {
	c := NewCanvas(4, 4, black)
	c.DrawLine(0, 0, 3, 0, white, 1.0)

	c.Fade(0.5)
	if got := c.At(1, 0).R; got < 126 || got > 129 {
		t.Errorf("after 0.5 fade R = %d, want ~128", got)
	}

	c.Fade(1.0)
	if got := c.At(1, 0).R; got != 0 {
		t.Errorf("after full fade R = %d, want 0", got)
	}
}

func TestFrameSnapshot(t *testing.T) {
	c := NewCanvas(6, 6, black)
	c.DrawLine(0, 2, 5, 2, white, 1.0)

	f := c.Frame()
	if f.Bounds() != c.Image().Bounds() {
		t.Fatal("frame bounds differ from canvas bounds")
	}
	if idx := f.ColorIndexAt(3, 2); idx != 255 {
		t.Errorf("line pixel palette index = %d, want 255", idx)
	}
	if idx := f.ColorIndexAt(3, 4); idx != 0 {
		t.Errorf("background pixel palette index = %d, want 0", idx)
	}

	// Snapshot must be a copy, not a view
	c.Fade(1.0)
	if idx := f.ColorIndexAt(3, 2); idx != 255 {
		t.Error("frame changed after canvas fade; snapshot is not a copy")
	}
}
