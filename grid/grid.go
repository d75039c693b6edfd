// Package grid computes evenly spaced positioned shapes ("pshapes") that
// seed particle clusters on the canvas.
package grid

import (
	"fmt"

	"github.com/gambino19/perlin-art/config"
)

// Shape enumerates the containment shape attached to each grid cell.
type Shape int

const (
	ShapeRectangle Shape = iota
	ShapeCircle
)

// String returns the config spelling of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeRectangle:
		return "rectangle"
	case ShapeCircle:
		return "circle"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParseShape converts a config string into a Shape.
func ParseShape(s string) (Shape, error) {
	switch s {
	case "rectangle":
		return ShapeRectangle, nil
	case "circle":
		return ShapeCircle, nil
	default:
		return 0, &config.ConfigError{Field: "grid.shape", Reason: fmt.Sprintf("unknown shape %q", s)}
	}
}

// Cell is one positioned shape: a cell center plus the half-extents of the
// region its particles may draw in.
type Cell struct {
	X, Y  float64 // center
	HalfX float64 // horizontal half-extent
	HalfY float64 // vertical half-extent
	Shape Shape
}

// Contains reports whether (x, y) lies inside the cell's shape. Rectangles
// test the full extent box; circles test the inscribed ellipse around the
// cell center.
func (c *Cell) Contains(x, y float64) bool {
	switch c.Shape {
	case ShapeCircle:
		dx := (x - c.X) / c.HalfX
		dy := (y - c.Y) / c.HalfY
		return dx*dx+dy*dy <= 1
	default:
		return x >= c.X-c.HalfX && x <= c.X+c.HalfX &&
			y >= c.Y-c.HalfY && y <= c.Y+c.HalfY
	}
}

// Params configures a layout computation.
type Params struct {
	Rows    int
	Columns int
	Margin  float64
	XBounds float64 // per-cell horizontal half-extent
	YBounds float64 // per-cell vertical half-extent
	Shape   Shape
	Width   float64 // canvas width
	Height  float64 // canvas height
}

// FromConfig builds layout params from the loaded configuration.
func FromConfig(cfg *config.Config) (Params, error) {
	shape, err := ParseShape(cfg.Grid.Shape)
	if err != nil {
		return Params{}, err
	}
	return Params{
		Rows:    cfg.Derived.Rows,
		Columns: cfg.Derived.Columns,
		Margin:  cfg.Grid.Margin,
		XBounds: cfg.Grid.XBounds,
		YBounds: cfg.Grid.YBounds,
		Shape:   shape,
		Width:   cfg.Derived.Width64,
		Height:  cfg.Derived.Height64,
	}, nil
}

// Layout divides the margin-adjusted canvas into rows × columns evenly
// spaced cell centers and attaches the shape descriptor to each. Cells are
// produced row-major. A single row or column degenerates to the midline.
func Layout(p Params) ([]Cell, error) {
	if p.Rows <= 0 {
		return nil, &config.ConfigError{Field: "grid.rows", Reason: "must be positive"}
	}
	if p.Columns <= 0 {
		return nil, &config.ConfigError{Field: "grid.columns", Reason: "must be positive"}
	}
	if p.Width <= 0 || p.Height <= 0 {
		return nil, &config.ConfigError{Field: "canvas", Reason: "width and height must be positive"}
	}
	if p.Margin < 0 {
		return nil, &config.ConfigError{Field: "grid.margin", Reason: "must be non-negative"}
	}
	if p.Margin*2 >= p.Width || p.Margin*2 >= p.Height {
		return nil, &config.ConfigError{Field: "grid.margin", Reason: "exceeds half the canvas dimension"}
	}

	xs := linspace(p.Margin, p.Width-p.Margin, p.Columns)
	ys := linspace(p.Margin, p.Height-p.Margin, p.Rows)

	cells := make([]Cell, 0, p.Rows*p.Columns)
	for _, y := range ys {
		for _, x := range xs {
			cells = append(cells, Cell{
				X:     x,
				Y:     y,
				HalfX: p.XBounds,
				HalfY: p.YBounds,
				Shape: p.Shape,
			})
		}
	}
	return cells, nil
}

// linspace returns n evenly spaced values over [lo, hi] inclusive.
// n == 1 returns the midpoint.
func linspace(lo, hi float64, n int) []float64 {
	if n == 1 {
		return []float64{(lo + hi) / 2}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	// Pin the endpoint so accumulated float error never pushes a cell
	// outside the margin bound.
	out[n-1] = hi
	return out
}
