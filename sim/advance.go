package sim

import (
	"fmt"
	"math"

	"github.com/gambino19/perlin-art/components"
	"github.com/gambino19/perlin-art/config"
	"github.com/gambino19/perlin-art/noise"
)

// Steering selects how a noise sample becomes motion.
type Steering int

const (
	// SteerHeading maps the sample to an angle and advances a fixed step.
	SteerHeading Steering = iota
	// SteerDrift accumulates two samples into the velocity, the way the
	// classic flow-line sketch does.
	SteerDrift
)

// ParseSteering converts a config string into a Steering.
func ParseSteering(s string) (Steering, error) {
	switch s {
	case "heading":
		return SteerHeading, nil
	case "drift":
		return SteerDrift, nil
	default:
		return 0, &config.ConfigError{Field: "particles.steering", Reason: fmt.Sprintf("unknown steering %q", s)}
	}
}

// EdgePolicy selects what happens when a particle leaves the canvas.
type EdgePolicy int

const (
	EdgeWrap EdgePolicy = iota
	EdgeClamp
	EdgeReflect
)

// ParseEdgePolicy converts a config string into an EdgePolicy.
func ParseEdgePolicy(s string) (EdgePolicy, error) {
	switch s {
	case "wrap":
		return EdgeWrap, nil
	case "clamp":
		return EdgeClamp, nil
	case "reflect":
		return EdgeReflect, nil
	default:
		return 0, &config.ConfigError{Field: "particles.edge", Reason: fmt.Sprintf("unknown edge policy %q", s)}
	}
}

// advance moves one particle according to the steering mode and returns the
// distance moved. Sampling is checked: a non-finite position surfaces as a
// NumericError instead of silently corrupting the trail.
func (s *Simulator) advance(pos *components.Position, vel *components.Velocity, home *components.Home, t float64) (float64, error) {
	scale := s.cfg.Noise.Scale
	z := t + home.ZOff

	switch s.steering {
	case SteerDrift:
		px, err := noise.Sample(s.field, pos.X*scale, pos.Y*scale, z)
		if err != nil {
			return 0, err
		}
		py, err := noise.Sample(s.field, pos.Y*scale, pos.X*scale, z)
		if err != nil {
			return 0, err
		}
		vel.X += px
		vel.Y += py
		pos.X += vel.X
		pos.Y += vel.Y
		return math.Hypot(vel.X, vel.Y), nil

	default: // SteerHeading
		v, err := noise.Sample(s.field, pos.X*scale, pos.Y*scale, z)
		if err != nil {
			return 0, err
		}
		angle := v * s.cfg.Particles.AngleScale
		step := s.cfg.Particles.Step
		pos.X += step * math.Cos(angle)
		pos.Y += step * math.Sin(angle)
		return step, nil
	}
}

// applyEdge enforces the configured edge policy against the canvas bounds.
// Returns true when the particle crossed an edge this frame.
func (s *Simulator) applyEdge(pos *components.Position, vel *components.Velocity) bool {
	w := s.cfg.Derived.Width64
	h := s.cfg.Derived.Height64

	switch s.edge {
	case EdgeClamp:
		crossed := false
		if pos.X < 0 {
			pos.X, crossed = 0, true
		} else if pos.X > w {
			pos.X, crossed = w, true
		}
		if pos.Y < 0 {
			pos.Y, crossed = 0, true
		} else if pos.Y > h {
			pos.Y, crossed = h, true
		}
		return crossed

	case EdgeReflect:
		crossed := false
		if pos.X < 0 {
			pos.X, vel.X, crossed = -pos.X, -vel.X, true
		} else if pos.X > w {
			pos.X, vel.X, crossed = 2*w-pos.X, -vel.X, true
		}
		if pos.Y < 0 {
			pos.Y, vel.Y, crossed = -pos.Y, -vel.Y, true
		} else if pos.Y > h {
			pos.Y, vel.Y, crossed = 2*h-pos.Y, -vel.Y, true
		}
		return crossed

	default: // EdgeWrap
		crossed := false
		if pos.X < 0 {
			pos.X, crossed = pos.X+w, true
		} else if pos.X > w {
			pos.X, crossed = pos.X-w, true
		}
		if pos.Y < 0 {
			pos.Y, crossed = pos.Y+h, true
		} else if pos.Y > h {
			pos.Y, crossed = pos.Y-h, true
		}
		return crossed
	}
}
