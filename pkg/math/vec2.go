package math

// Vec2 is a 2D vector. Tracks use it for virtual (lateral, longitudinal)
// coordinates.
type Vec2 struct {
	X, Y float32
}
