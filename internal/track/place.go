package track

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/runtrack/pkg/math"
)

// Placement is a resolved position on the ribbon.
type Placement struct {
	Position math.Vec3
	Forward  math.Vec3
	Right    math.Vec3
	Segment  int // index of the segment's start waypoint
}

// Transform returns a model matrix that puts an object at the placement,
// facing along the segment.
func (pl Placement) Transform() math.Mat4 {
	rot := math.QuatLookRotation(pl.Forward, math.Up).ToMat4()
	return math.Translate(pl.Position.X, pl.Position.Y, pl.Position.Z).Mul(rot)
}

// Place maps a virtual coordinate to the ribbon. longitudinal is measured in
// SegmentLength steps starting at waypoint 1; lateral offsets along the
// segment's right vector. It reports false when the coordinate is off the track.
func (p *Path) Place(lateral, longitudinal float32) (Placement, bool) {
	seg := p.Params.SegmentLength
	if longitudinal < 0 || seg <= 0 {
		return Placement{}, false
	}
	start := int(math32.Floor(longitudinal/seg)) + 1
	if start >= len(p.Waypoints)-1 {
		return Placement{}, false
	}

	from := p.Waypoints[start].Position
	to := p.Waypoints[start+1].Position
	forward := heading(from, to)
	right := rightOf(forward)
	remain := longitudinal - float32(start-1)*seg

	return Placement{
		Position: from.ScaleAdd(forward, remain).ScaleAdd(right, lateral),
		Forward:  forward,
		Right:    right,
		Segment:  start,
	}, true
}

// PlaceVirtual is Place with a (lateral, longitudinal) pair.
func (p *Path) PlaceVirtual(v math.Vec2) (Placement, bool) {
	return p.Place(v.X, v.Y)
}
