// Package track generates procedural running tracks: a randomized waypoint
// walk, the ribbon mesh built on top of it and placement queries against it.
package track

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/runtrack/pkg/math"
)

// MinPointCount is the smallest point count Generate accepts.
const MinPointCount = 3

// Waypoint is one ordered point of the path.
// Left and Right are filled in by BuildMesh.
type Waypoint struct {
	Position math.Vec3 `yaml:"position"`
	Left     math.Vec3 `yaml:"left"`
	Right    math.Vec3 `yaml:"right"`
}

// Params holds the shape parameters of a track.
type Params struct {
	FirstSegmentLength float32 `yaml:"first_segment_length"`
	LastSegmentLength  float32 `yaml:"last_segment_length"`
	SegmentLength      float32 `yaml:"segment_length"`
	SlopeAngle         float32 `yaml:"slope_angle"`     // degrees per step
	MaxSlopeAngle      float32 `yaml:"max_slope_angle"` // degrees
	PathWidth          float32 `yaml:"path_width"`

	// Climbs start only below MaxHeight, descents only above MinHeight.
	MinHeight float32 `yaml:"min_height"`
	MaxHeight float32 `yaml:"max_height"`
}

// DefaultParams returns the stock track shape.
func DefaultParams() Params {
	return Params{
		FirstSegmentLength: 5,
		LastSegmentLength:  5,
		SegmentLength:      1,
		SlopeAngle:         15,
		MaxSlopeAngle:      45,
		PathWidth:          8,
		MinHeight:          0 + 1.47,
		MaxHeight:          5 - 1.47,
	}
}

// maxPitch bounds MaxSlopeAngle. A vertical heading has no right axis, so no
// later pitch or turn could move it.
const maxPitch = 90

// Validate checks the lengths, width and the slope limit. Degenerate angles
// are allowed: they only restrict the walk to straight runs.
func (p Params) Validate() error {
	switch {
	case p.MaxSlopeAngle >= maxPitch:
		return fmt.Errorf("%w: max slope angle %v must stay below %d", ErrInvalidParams, p.MaxSlopeAngle, maxPitch)
	case p.FirstSegmentLength <= 0:
		return fmt.Errorf("%w: first segment length %v", ErrInvalidParams, p.FirstSegmentLength)
	case p.LastSegmentLength <= 0:
		return fmt.Errorf("%w: last segment length %v", ErrInvalidParams, p.LastSegmentLength)
	case p.SegmentLength <= 0:
		return fmt.Errorf("%w: segment length %v", ErrInvalidParams, p.SegmentLength)
	case p.PathWidth < 0:
		return fmt.Errorf("%w: path width %v", ErrInvalidParams, p.PathWidth)
	}
	return nil
}

// anglesValid reports whether turning and sloping are possible at all.
func (p Params) anglesValid() bool {
	return p.SlopeAngle > 0 && p.MaxSlopeAngle >= p.SlopeAngle
}

// TurnSteps is the longest turn run that stays under a 90 degree heading change.
func (p Params) TurnSteps() int {
	if !p.anglesValid() {
		return 0
	}
	return int(math32.Floor(90 / p.SlopeAngle))
}

// SlopeSteps is the length of a full climb or descent: up to MaxSlopeAngle and back.
func (p Params) SlopeSteps() int {
	if !p.anglesValid() {
		return 0
	}
	return int(math32.Floor(p.MaxSlopeAngle/p.SlopeAngle))*2 + 1
}

// Path is a waypoint sequence and the parameters it was built with. Positions
// are fixed once Generate returns; BuildMesh fills Left and Right in place.
type Path struct {
	Params    Params     `yaml:"params"`
	Waypoints []Waypoint `yaml:"waypoints"`
	Runs      []Run      `yaml:"-"`
}

// Len returns the number of waypoints.
func (p *Path) Len() int {
	return len(p.Waypoints)
}

// Positions returns the waypoint positions in traversal order.
func (p *Path) Positions() []math.Vec3 {
	out := make([]math.Vec3, len(p.Waypoints))
	for i, w := range p.Waypoints {
		out[i] = w.Position
	}
	return out
}

// Length returns the total centerline length.
func (p *Path) Length() float32 {
	var total float32
	for i := 1; i < len(p.Waypoints); i++ {
		total += p.Waypoints[i].Position.Distance(p.Waypoints[i-1].Position)
	}
	return total
}

// Mesh holds flat ribbon buffers ready for GPU upload.
// Every segment owns six vertices; nothing is shared between segments.
type Mesh struct {
	Vertices []float32
	Normals  []float32
	Indices  []uint32
	Bounds   Bounds
}

// VertexCount returns the number of vertices (three floats each).
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// Bounds holds the axis-aligned bounding box of the ribbon.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}
