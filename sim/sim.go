// Package sim steps the grid of noise-driven particles frame by frame and
// hands drawable segments to the renderers.
package sim

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/gambino19/perlin-art/components"
	"github.com/gambino19/perlin-art/config"
	"github.com/gambino19/perlin-art/grid"
	"github.com/gambino19/perlin-art/noise"
	"github.com/gambino19/perlin-art/telemetry"
)

// Segment is one drawable piece of a trail: the particle's previous position
// to its current one.
type Segment struct {
	X0, Y0 float64
	X1, Y1 float64
}

// Simulator owns the particle world. All particles share one immutable noise
// field; each owns its trail exclusively, so stepping is a plain sequential
// loop.
type Simulator struct {
	world *ecs.World
	rng   *rand.Rand
	field noise.Field
	cells []grid.Cell
	cfg   *config.Config

	mapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Trail,
		components.Home,
	]
	filter *ecs.Filter4[
		components.Position,
		components.Velocity,
		components.Trail,
		components.Home,
	]

	steering Steering
	edge     EdgePolicy

	tick     int32
	count    int
	segments []Segment
}

// New builds a simulator from the loaded config and a seed. The seed drives
// the noise permutation table, per-cell line counts, and per-particle time
// offsets, so a rerun with the same seed reproduces every trail.
func New(cfg *config.Config, seed int64) (*Simulator, error) {
	params, err := grid.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	cells, err := grid.Layout(params)
	if err != nil {
		return nil, err
	}

	steering, err := ParseSteering(cfg.Particles.Steering)
	if err != nil {
		return nil, err
	}
	edge, err := ParseEdgePolicy(cfg.Particles.Edge)
	if err != nil {
		return nil, err
	}

	noiseSeed := cfg.Noise.Seed
	if noiseSeed == 0 {
		noiseSeed = seed
	}
	field, err := noise.New(noise.Options{
		Kind:       cfg.Noise.Kind,
		Seed:       noiseSeed,
		Octaves:    cfg.Noise.Octaves,
		Lacunarity: cfg.Noise.Lacunarity,
		Gain:       cfg.Noise.Gain,
	})
	if err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	s := &Simulator{
		world: world,
		rng:   rand.New(rand.NewSource(seed)),
		field: field,
		cells: cells,
		cfg:   cfg,
		mapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Trail,
			components.Home,
		](world),
		filter: ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Trail,
			components.Home,
		](world),
		steering: steering,
		edge:     edge,
	}

	s.spawnParticles()
	return s, nil
}

// spawnParticles seeds each grid cell with a random number of particles, all
// starting at the cell center. Initial velocities are uniform in
// ±drift_speed; heading mode ignores them.
func (s *Simulator) spawnParticles() {
	span := s.cfg.Grid.LinesMax - s.cfg.Grid.LinesMin + 1
	speed := s.cfg.Particles.DriftSpeed

	for i, cell := range s.cells {
		lines := s.cfg.Grid.LinesMin + s.rng.Intn(span)
		for l := 0; l < lines; l++ {
			pos := components.Position{X: cell.X, Y: cell.Y}
			vel := components.Velocity{
				X: (s.rng.Float64()*2 - 1) * speed,
				Y: (s.rng.Float64()*2 - 1) * speed,
			}
			trail := components.Trail{Points: []components.Position{pos}}
			home := components.Home{
				Cell: int32(i),
				ZOff: s.rng.Float64()*20 - 10,
			}
			s.mapper.NewEntity(&pos, &vel, &trail, &home)
			s.count++
		}
	}
}

// Tick returns the current frame number.
func (s *Simulator) Tick() int32 {
	return s.tick
}

// Particles returns the total particle count.
func (s *Simulator) Particles() int {
	return s.count
}

// Cells returns the grid cells particles were seeded from.
func (s *Simulator) Cells() []grid.Cell {
	return s.cells
}

// Segments returns the drawable segments produced by the last Step.
func (s *Simulator) Segments() []Segment {
	return s.segments
}

// Step advances every particle one frame and rebuilds the drawable segment
// list. It fails only if a particle position goes non-finite, which aborts
// the run before a corrupt frame is drawn.
func (s *Simulator) Step() (telemetry.FrameStats, error) {
	s.tick++
	t := float64(s.tick) * s.cfg.Noise.TimeScale

	s.segments = s.segments[:0]

	var (
		stepSum    float64
		inShape    int
		edgeEvents int
		stepErr    error
	)

	query := s.filter.Query()
	for query.Next() {
		pos, vel, trail, home := query.Get()
		prev := *pos

		moved, err := s.advance(pos, vel, home, t)
		if err != nil {
			// Finish the iteration so the world unlocks, then fail the step
			if stepErr == nil {
				stepErr = err
			}
			continue
		}
		stepSum += moved

		crossed := s.applyEdge(pos, vel)
		if crossed {
			edgeEvents++
		}

		cell := &s.cells[home.Cell]
		prevInside := cell.Contains(prev.X, prev.Y)
		if prevInside {
			inShape++
		}

		// Draw only while the segment starts inside the home shape and on
		// the canvas; an edge crossing would smear a line across the jump.
		if prevInside && !crossed && s.onCanvas(prev) {
			s.segments = append(s.segments, Segment{
				X0: prev.X, Y0: prev.Y,
				X1: pos.X, Y1: pos.Y,
			})
		}

		if crossed && s.edge == EdgeWrap {
			trail.Points = trail.Points[:0]
		}
		trail.Points = append(trail.Points, *pos)
	}

	if stepErr != nil {
		return telemetry.FrameStats{}, stepErr
	}

	fs := telemetry.FrameStats{
		Tick:       s.tick,
		Particles:  s.count,
		EdgeEvents: edgeEvents,
	}
	if s.count > 0 {
		fs.MeanStep = stepSum / float64(s.count)
		fs.InShapeFrac = float64(inShape) / float64(s.count)
	}
	return fs, nil
}

func (s *Simulator) onCanvas(p components.Position) bool {
	return p.X >= 0 && p.X < s.cfg.Derived.Width64 &&
		p.Y >= 0 && p.Y < s.cfg.Derived.Height64
}

// TrailPoints flattens every trail for CSV export.
func (s *Simulator) TrailPoints() []telemetry.TrailPoint {
	var out []telemetry.TrailPoint
	line := 0

	query := s.filter.Query()
	for query.Next() {
		_, _, trail, _ := query.Get()
		for i, p := range trail.Points {
			out = append(out, telemetry.TrailPoint{
				Line:  line,
				Index: i,
				X:     p.X,
				Y:     p.Y,
			})
		}
		line++
	}
	return out
}
