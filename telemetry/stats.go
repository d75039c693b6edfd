// Package telemetry collects per-frame statistics and writes windowed
// aggregates as CSV for offline analysis.
package telemetry

import (
	"gonum.org/v1/gonum/stat"
)

// FrameStats captures one simulation frame.
type FrameStats struct {
	Tick        int32
	Particles   int     // live particle count
	MeanStep    float64 // mean distance moved this frame
	InShapeFrac float64 // fraction of particles inside their home shape
	EdgeEvents  int     // wraps/clamps/reflections this frame
}

// WindowStats aggregates a window of frames. Fields carry gocsv tags so the
// struct marshals directly to telemetry.csv rows.
type WindowStats struct {
	WindowEnd   int32   `csv:"window_end"`
	Frames      int     `csv:"frames"`
	Particles   float64 `csv:"particles_mean"`
	StepMean    float64 `csv:"step_mean"`
	StepStdDev  float64 `csv:"step_stddev"`
	InShapeMean float64 `csv:"in_shape_mean"`
	EdgeEvents  int     `csv:"edge_events"`
}

// Collector buffers frame stats and emits a WindowStats every windowSize
// frames.
type Collector struct {
	windowSize int
	frames     []FrameStats
}

// NewCollector creates a collector with the given window size in frames.
func NewCollector(windowSize int) *Collector {
	if windowSize < 1 {
		windowSize = 1
	}
	return &Collector{
		windowSize: windowSize,
		frames:     make([]FrameStats, 0, windowSize),
	}
}

// Record adds one frame. When the window fills it returns the aggregate and
// true, and starts a new window.
func (c *Collector) Record(fs FrameStats) (WindowStats, bool) {
	c.frames = append(c.frames, fs)
	if len(c.frames) < c.windowSize {
		return WindowStats{}, false
	}
	ws := c.aggregate()
	c.frames = c.frames[:0]
	return ws, true
}

// Flush aggregates any partial window. Returns false if no frames are
// buffered.
func (c *Collector) Flush() (WindowStats, bool) {
	if len(c.frames) == 0 {
		return WindowStats{}, false
	}
	ws := c.aggregate()
	c.frames = c.frames[:0]
	return ws, true
}

func (c *Collector) aggregate() WindowStats {
	n := len(c.frames)
	particles := make([]float64, n)
	steps := make([]float64, n)
	inShape := make([]float64, n)
	edgeEvents := 0

	for i, fs := range c.frames {
		particles[i] = float64(fs.Particles)
		steps[i] = fs.MeanStep
		inShape[i] = fs.InShapeFrac
		edgeEvents += fs.EdgeEvents
	}

	ws := WindowStats{
		WindowEnd:   c.frames[n-1].Tick,
		Frames:      n,
		Particles:   stat.Mean(particles, nil),
		StepMean:    stat.Mean(steps, nil),
		InShapeMean: stat.Mean(inShape, nil),
		EdgeEvents:  edgeEvents,
	}
	if n > 1 {
		ws.StepStdDev = stat.StdDev(steps, nil)
	}
	return ws
}
