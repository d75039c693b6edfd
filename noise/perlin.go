// Package noise provides deterministic coherent noise fields used to steer
// particle motion. All fields are immutable after construction and safe to
// share across particles.
package noise

import (
	"math"
	"math/rand"
)

// Perlin is classic permutation-table gradient noise. The same seed always
// produces the same permutation table, so output is bit-identical across
// runs for identical inputs.
type Perlin struct {
	perm [512]int
}

// NewPerlin creates a Perlin field from a seed.
func NewPerlin(seed int64) *Perlin {
	p := &Perlin{}
	rng := rand.New(rand.NewSource(seed))

	var perm [256]int
	for i := range perm {
		perm[i] = i
	}

	// Fisher-Yates shuffle driven by the seed
	for i := len(perm) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}

	// Duplicate so corner hashing never indexes past the table
	for i := 0; i < 256; i++ {
		p.perm[i] = perm[i]
		p.perm[i+256] = perm[i]
	}

	return p
}

// Sample returns a noise value in [-1, 1] for 3D coordinates. The z axis is
// conventionally used as time when animating.
func (p *Perlin) Sample(x, y, z float64) float64 {
	// Unit cube containing the point, wrapped to the table size
	X := int(math.Floor(x)) & 255
	Y := int(math.Floor(y)) & 255
	Z := int(math.Floor(z)) & 255

	// Relative position in the cube
	x -= math.Floor(x)
	y -= math.Floor(y)
	z -= math.Floor(z)

	// Quintic fade keeps the field C2-continuous across cell boundaries
	u := fade(x)
	v := fade(y)
	w := fade(z)

	// Hash coordinates of the 8 cube corners
	A := p.perm[X] + Y
	AA := p.perm[A] + Z
	AB := p.perm[A+1] + Z
	B := p.perm[X+1] + Y
	BA := p.perm[B] + Z
	BB := p.perm[B+1] + Z

	// Blend gradient dot products from all corners
	return lerp(w, lerp(v, lerp(u, grad(p.perm[AA], x, y, z),
		grad(p.perm[BA], x-1, y, z)),
		lerp(u, grad(p.perm[AB], x, y-1, z),
			grad(p.perm[BB], x-1, y-1, z))),
		lerp(v, lerp(u, grad(p.perm[AA+1], x, y, z-1),
			grad(p.perm[BA+1], x-1, y, z-1)),
			lerp(u, grad(p.perm[AB+1], x, y-1, z-1),
				grad(p.perm[BB+1], x-1, y-1, z-1))))
}

// Sample2D returns a noise value for 2D coordinates.
func (p *Perlin) Sample2D(x, y float64) float64 {
	return p.Sample(x, y, 0)
}

// fade is the quintic smoothing curve 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// grad selects one of 12 gradient directions from the corner hash and
// returns its dot product with the offset vector.
func grad(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	v := y
	if h >= 4 {
		if h == 12 || h == 14 {
			v = x
		} else {
			v = z
		}
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}
