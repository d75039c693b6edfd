package components

// Trail is the ordered sequence of positions a particle has visited.
// A particle appends one position per frame; the renderer draws the segment
// between the last two. Cleared when an edge wrap teleports the particle so
// no line is drawn across the jump.
type Trail struct {
	Points []Position
}

// Last returns the most recent trail position.
func (t *Trail) Last() (Position, bool) {
	if len(t.Points) == 0 {
		return Position{}, false
	}
	return t.Points[len(t.Points)-1], true
}

// Home ties a particle to the grid cell it was spawned in.
type Home struct {
	Cell int32   // index into the simulator's cell slice
	ZOff float64 // per-particle offset on the noise time axis
}
