package track

import (
	"fmt"

	"github.com/Faultbox/runtrack/pkg/math"
)

// SegmentKind is the shape of one run of waypoints.
type SegmentKind int

// Segment kinds, drawn with equal probability.
const (
	SegmentStraight SegmentKind = iota
	SegmentTurnLeft
	SegmentTurnRight
	SegmentClimb
	SegmentDescend

	segmentKindCount
)

// String returns a human-readable kind name.
func (k SegmentKind) String() string {
	switch k {
	case SegmentStraight:
		return "straight"
	case SegmentTurnLeft:
		return "turn-left"
	case SegmentTurnRight:
		return "turn-right"
	case SegmentClimb:
		return "climb"
	case SegmentDescend:
		return "descend"
	default:
		return fmt.Sprintf("SegmentKind(%d)", int(k))
	}
}

// Run is a contiguous block of waypoints produced by one segment-kind decision.
type Run struct {
	Kind   SegmentKind
	Start  int // index of the first waypoint written
	Length int
}

// walkState is the part of the walk acceptRun needs.
type walkState struct {
	cursor int     // next index to write
	last   int     // index of the fixed final waypoint
	height float32 // Y of the waypoint before cursor
}

// proposeRun makes the random draws for one run: a kind, and for straight
// and turn runs a length in [0, TurnSteps). Slope runs have a fixed length.
func proposeRun(rng RandomSource, p Params) Run {
	run := Run{Kind: SegmentKind(rng.IntN(int(segmentKindCount)))}
	switch run.Kind {
	case SegmentClimb, SegmentDescend:
		run.Length = p.SlopeSteps()
	default:
		if n := p.TurnSteps(); n > 0 {
			run.Length = rng.IntN(n)
		}
	}
	return run
}

// acceptRun corrects a proposed run against the walk state. The result always
// covers at least one waypoint and never writes past the final waypoint.
func acceptRun(s walkState, r Run, p Params) Run {
	r.Start = s.cursor
	straight := Run{Kind: SegmentStraight, Start: s.cursor, Length: 1}

	switch r.Kind {
	case SegmentClimb, SegmentDescend:
		if !p.anglesValid() || s.cursor+r.Length >= s.last {
			return straight
		}
		if r.Kind == SegmentClimb && s.height >= p.MaxHeight {
			return straight
		}
		if r.Kind == SegmentDescend && s.height <= p.MinHeight {
			return straight
		}
		return r
	case SegmentTurnLeft, SegmentTurnRight:
		if !p.anglesValid() {
			r.Kind = SegmentStraight
		}
	}

	// A zero-length draw falls back to a single straight step.
	if r.Length < 1 {
		return straight
	}
	if remaining := s.last - s.cursor; r.Length > remaining {
		r.Length = remaining
	}
	return r
}

// heading returns the unit direction from a to b.
func heading(a, b math.Vec3) math.Vec3 {
	return b.Sub(a).Normalize()
}

// straightStep extends the heading prev2->prev1 by length.
func straightStep(prev2, prev1 math.Vec3, length float32) math.Vec3 {
	return prev1.ScaleAdd(heading(prev2, prev1), length)
}

// turnStep yaws the heading prev2->prev1 about Up by deg degrees (positive is left).
func turnStep(prev2, prev1 math.Vec3, deg, length float32) math.Vec3 {
	dir := heading(prev2, prev1).Rotate(math.Up, math.Radians(deg))
	return prev1.ScaleAdd(dir, length)
}

// pitchStep pitches the heading prev2->prev1 about its local right axis by deg
// degrees (positive climbs).
func pitchStep(prev2, prev1 math.Vec3, deg, length float32) math.Vec3 {
	dir := heading(prev2, prev1)
	right := dir.Cross(math.Up).Normalize()
	return prev1.ScaleAdd(dir.Rotate(right, math.Radians(deg)), length)
}

// guardBacktrack rejects a candidate that moves backwards along the forward
// axis (-Z) relative to prev and returns fallback instead.
func guardBacktrack(prev, candidate, fallback math.Vec3) math.Vec3 {
	if candidate.Z > prev.Z {
		return fallback
	}
	return candidate
}
