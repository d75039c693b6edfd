package components

// Position represents a particle's canvas position.
type Position struct {
	X, Y float64
}

// Velocity represents a particle's accumulated drift velocity.
// Only the drift steering mode integrates it.
type Velocity struct {
	X, Y float64
}
