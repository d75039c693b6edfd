package sim

import (
	"math"
	"testing"

	"github.com/gambino19/perlin-art/components"
	"github.com/gambino19/perlin-art/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func TestParticleCountWithinCellBounds(t *testing.T) {
	cfg := testConfig(t)
	s, err := New(cfg, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cells := len(s.Cells())
	if want := cfg.Derived.Rows * cfg.Derived.Columns; cells != want {
		t.Fatalf("got %d cells, want %d", cells, want)
	}

	lo := cells * cfg.Grid.LinesMin
	hi := cells * cfg.Grid.LinesMax
	if n := s.Particles(); n < lo || n > hi {
		t.Errorf("particle count %d outside [%d, %d]", n, lo, hi)
	}
}

func TestTrailsReproducibleAcrossRuns(t *testing.T) {
	const seed = 424242
	const steps = 25

	run := func() []float64 {
		cfg := testConfig(t)
		s, err := New(cfg, seed)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		for i := 0; i < steps; i++ {
			if _, err := s.Step(); err != nil {
				t.Fatalf("Step %d: %v", i, err)
			}
		}
		points := s.TrailPoints()
		flat := make([]float64, 0, len(points)*2)
		for _, p := range points {
			flat = append(flat, p.X, p.Y)
		}
		return flat
	}

	a := run()
	b := run()
	if len(a) != len(b) {
		t.Fatalf("trail sizes differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("trail value %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	step10 := func(seed int64) []float64 {
		cfg := testConfig(t)
		s, err := New(cfg, seed)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		for i := 0; i < 10; i++ {
			if _, err := s.Step(); err != nil {
				t.Fatalf("Step: %v", err)
			}
		}
		var flat []float64
		for _, p := range s.TrailPoints() {
			flat = append(flat, p.X, p.Y)
		}
		return flat
	}

	a := step10(1)
	b := step10(2)

	same := true
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same && len(a) == len(b) {
		t.Error("different seeds produced identical trails")
	}
}

func TestHeadingStepLength(t *testing.T) {
	cfg := testConfig(t)
	cfg.Particles.Steering = "heading"
	s, err := New(cfg, 7)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	fs, err := s.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if math.Abs(fs.MeanStep-cfg.Particles.Step) > 1e-9 {
		t.Errorf("heading mode mean step = %v, want %v", fs.MeanStep, cfg.Particles.Step)
	}
	if fs.Particles != s.Particles() {
		t.Errorf("stats particles = %d, want %d", fs.Particles, s.Particles())
	}
}

func TestDriftInitialSpeed(t *testing.T) {
	// Drift-mode launch velocities are uniform in ±drift_speed. At the
	// default of 10, the mean first-step distance sits well above the
	// at-most-√2 contribution of a single noise sample; at 0 only the
	// noise accumulation moves the particles.
	firstStep := func(speed float64) float64 {
		cfg := testConfig(t)
		cfg.Particles.Steering = "drift"
		cfg.Particles.DriftSpeed = speed
		s, err := New(cfg, 9)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		fs, err := s.Step()
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		return fs.MeanStep
	}

	if m := firstStep(10); m <= 2 {
		t.Errorf("drift_speed 10 mean first step = %v, want > 2", m)
	}
	if m := firstStep(0); m > 2 {
		t.Errorf("drift_speed 0 mean first step = %v, want <= 2", m)
	}
}

func TestStepProducesSegments(t *testing.T) {
	cfg := testConfig(t)
	s, err := New(cfg, 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := s.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	// All particles start at cell centers, inside their shapes, so the
	// first frame draws a segment per particle.
	if got := len(s.Segments()); got != s.Particles() {
		t.Errorf("got %d segments, want %d", got, s.Particles())
	}
}

func TestApplyEdgePolicies(t *testing.T) {
	cfg := testConfig(t) // 1000x1000 canvas

	tests := []struct {
		name      string
		edge      EdgePolicy
		pos       components.Position
		vel       components.Velocity
		wantPos   components.Position
		wantVelX  float64
		wantCross bool
	}{
		{"inside untouched", EdgeWrap, components.Position{X: 500, Y: 500}, components.Velocity{X: 1}, components.Position{X: 500, Y: 500}, 1, false},
		{"wrap left", EdgeWrap, components.Position{X: -10, Y: 500}, components.Velocity{X: -1}, components.Position{X: 990, Y: 500}, -1, true},
		{"wrap bottom", EdgeWrap, components.Position{X: 500, Y: 1005}, components.Velocity{}, components.Position{X: 500, Y: 5}, 0, true},
		{"clamp right", EdgeClamp, components.Position{X: 1020, Y: 500}, components.Velocity{X: 2}, components.Position{X: 1000, Y: 500}, 2, true},
		{"clamp top", EdgeClamp, components.Position{X: 500, Y: -3}, components.Velocity{}, components.Position{X: 500, Y: 0}, 0, true},
		{"reflect left", EdgeReflect, components.Position{X: -10, Y: 500}, components.Velocity{X: -2}, components.Position{X: 10, Y: 500}, 2, true},
		{"reflect right", EdgeReflect, components.Position{X: 1010, Y: 500}, components.Velocity{X: 3}, components.Position{X: 990, Y: 500}, -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Simulator{cfg: cfg, edge: tt.edge}
			pos := tt.pos
			vel := tt.vel

			crossed := s.applyEdge(&pos, &vel)
			if crossed != tt.wantCross {
				t.Errorf("crossed = %v, want %v", crossed, tt.wantCross)
			}
			if pos != tt.wantPos {
				t.Errorf("pos = %+v, want %+v", pos, tt.wantPos)
			}
			if vel.X != tt.wantVelX {
				t.Errorf("vel.X = %v, want %v", vel.X, tt.wantVelX)
			}
		})
	}
}

func TestParseEnums(t *testing.T) {
	if _, err := ParseSteering("sideways"); err == nil {
		t.Error("expected error for unknown steering")
	}
	if _, err := ParseEdgePolicy("bounce"); err == nil {
		t.Error("expected error for unknown edge policy")
	}
	if p, err := ParseEdgePolicy("reflect"); err != nil || p != EdgeReflect {
		t.Errorf("ParseEdgePolicy(reflect) = %v, %v", p, err)
	}
	if st, err := ParseSteering("drift"); err != nil || st != SteerDrift {
		t.Errorf("ParseSteering(drift) = %v, %v", st, err)
	}
}
