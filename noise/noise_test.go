package noise

import (
	"errors"
	"math"
	"testing"

	"github.com/gambino19/perlin-art/config"
)

func TestPerlinDeterminism(t *testing.T) {
	coords := [][3]float64{
		{0, 0, 0},
		{0.5, 0.5, 0.5},
		{12.34, -56.78, 9.01},
		{-0.001, 1000.5, 3.3},
	}

	for _, seed := range []int64{0, 1, 42, -7, 1 << 40} {
		a := NewPerlin(seed)
		b := NewPerlin(seed)
		for _, c := range coords {
			va := a.Sample(c[0], c[1], c[2])
			vb := b.Sample(c[0], c[1], c[2])
			if va != vb {
				t.Errorf("seed %d at %v: %v != %v", seed, c, va, vb)
			}
			// Repeated calls on the same field must also be bit-identical
			if again := a.Sample(c[0], c[1], c[2]); again != va {
				t.Errorf("seed %d at %v: repeated call changed value", seed, c)
			}
		}
	}
}

func TestPerlinSeedsDiffer(t *testing.T) {
	a := NewPerlin(1)
	b := NewPerlin(2)

	same := 0
	for i := 0; i < 100; i++ {
		x := float64(i) * 0.37
		if a.Sample(x, x*0.5, 0) == b.Sample(x, x*0.5, 0) {
			same++
		}
	}
	if same > 10 {
		t.Errorf("different seeds matched on %d/100 samples", same)
	}
}

func TestPerlinRange(t *testing.T) {
	p := NewPerlin(99)
	for i := 0; i < 10000; i++ {
		x := float64(i%100) * 0.173
		y := float64(i/100) * 0.291
		z := float64(i) * 0.0071
		v := p.Sample(x, y, z)
		if v < -1 || v > 1 {
			t.Fatalf("Sample(%v, %v, %v) = %v out of [-1, 1]", x, y, z, v)
		}
	}
}

func TestPerlinContinuity(t *testing.T) {
	p := NewPerlin(7)
	const eps = 1e-4

	// Sample around integer lattice boundaries where discontinuities would
	// show up if the fade curve were wrong.
	points := []float64{0.0, 1.0, 2.0, 0.9999, 254.0, 255.0}
	for _, x := range points {
		v0 := p.Sample(x-eps, 0.5, 0.5)
		v1 := p.Sample(x+eps, 0.5, 0.5)
		if d := math.Abs(v1 - v0); d > 0.01 {
			t.Errorf("discontinuity at x=%v: |Δ| = %v", x, d)
		}
	}
}

func TestPerlinZeroAtLattice(t *testing.T) {
	// Gradient noise is exactly zero at integer lattice points
	p := NewPerlin(3)
	for _, c := range [][3]float64{{0, 0, 0}, {1, 2, 3}, {10, 20, 30}} {
		if v := p.Sample(c[0], c[1], c[2]); v != 0 {
			t.Errorf("Sample(%v) = %v, want 0 at lattice point", c, v)
		}
	}
}

func TestSampleChecked(t *testing.T) {
	p := NewPerlin(1)

	tests := []struct {
		name    string
		x, y, z float64
		wantErr bool
	}{
		{"finite", 1.5, 2.5, 0, false},
		{"nan x", math.NaN(), 0, 0, true},
		{"nan y", 0, math.NaN(), 0, true},
		{"inf z", 0, 0, math.Inf(1), true},
		{"neg inf x", math.Inf(-1), 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sample(p, tt.x, tt.y, tt.z)
			if tt.wantErr && err == nil {
				t.Error("expected NumericError, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr {
				if _, ok := err.(*NumericError); !ok {
					t.Errorf("expected *NumericError, got %T", err)
				}
			}
		})
	}
}

func TestFBMRangeAndDeterminism(t *testing.T) {
	f := NewFBM(NewPerlin(5), 4, 2.0, 0.5)
	g := NewFBM(NewPerlin(5), 4, 2.0, 0.5)

	for i := 0; i < 1000; i++ {
		x := float64(i) * 0.113
		y := float64(i) * 0.071
		v := f.Sample(x, y, 0.25)
		if v < -1 || v > 1 {
			t.Fatalf("FBM sample %v out of [-1, 1]", v)
		}
		if v != g.Sample(x, y, 0.25) {
			t.Fatal("FBM not deterministic across identical constructions")
		}
	}
}

func TestFBMNegativeGainStaysInRange(t *testing.T) {
	// A gain of -1 over two octaves sums the amplitudes 1 and -1; the
	// normalizer must not cancel to zero and blow the sample up to ±Inf.
	f := NewFBM(NewPerlin(1), 2, 2.0, -1.0)
	v := f.Sample(0.3, 0.7, 0.1)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		t.Fatalf("Sample = %v, want finite", v)
	}
	if v < -1 || v > 1 {
		t.Fatalf("Sample = %v out of [-1, 1]", v)
	}
}

func TestNewRejectsBadFractalParams(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative gain", Options{Kind: "perlin", Octaves: 2, Lacunarity: 2.0, Gain: -1.0}},
		{"zero gain", Options{Kind: "perlin", Octaves: 2, Lacunarity: 2.0, Gain: 0}},
		{"nan gain", Options{Kind: "perlin", Octaves: 2, Lacunarity: 2.0, Gain: math.NaN()}},
		{"zero lacunarity", Options{Kind: "perlin", Octaves: 2, Lacunarity: 0, Gain: 0.5}},
		{"inf lacunarity", Options{Kind: "perlin", Octaves: 2, Lacunarity: math.Inf(1), Gain: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var cfgErr *config.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("expected *config.ConfigError, got %T: %v", err, err)
			}
		})
	}

	// Single octave never enters the fractal sum, so the params are unused
	if _, err := New(Options{Kind: "perlin", Octaves: 1, Gain: -1.0}); err != nil {
		t.Errorf("octaves=1 with unused gain: %v", err)
	}
}

func TestFBMSingleOctavePassthrough(t *testing.T) {
	base := NewPerlin(11)
	f := NewFBM(base, 1, 2.0, 0.5)
	if f != Field(base) {
		t.Error("octaves=1 should return the base field unchanged")
	}
}

func TestNewFieldKinds(t *testing.T) {
	for _, kind := range []string{"perlin", "opensimplex"} {
		f, err := New(Options{Kind: kind, Seed: 42, Octaves: 1})
		if err != nil {
			t.Fatalf("New(%q): %v", kind, err)
		}
		v := f.Sample(1.5, 2.5, 0.5)
		if v < -1 || v > 1 {
			t.Errorf("%s sample %v out of [-1, 1]", kind, v)
		}
	}

	_, err := New(Options{Kind: "simplex2"})
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
	var cfgErr *config.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("expected *config.ConfigError, got %T: %v", err, err)
	}
}

func TestOpenSimplexDeterminism(t *testing.T) {
	a := NewOpenSimplex(123)
	b := NewOpenSimplex(123)
	for i := 0; i < 100; i++ {
		x := float64(i) * 0.37
		if a.Sample(x, -x, x*0.1) != b.Sample(x, -x, x*0.1) {
			t.Fatal("opensimplex not deterministic per seed")
		}
	}
}
