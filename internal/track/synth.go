package track

import (
	"fmt"

	"github.com/Faultbox/runtrack/pkg/math"
)

// Generate builds a track of pointCount+1 waypoints. Waypoint 0 is the origin,
// waypoint 1 lies FirstSegmentLength ahead on the forward axis, the interior is
// a random walk of runs and the last waypoint extends the final heading by
// LastSegmentLength. A nil rng uses an unseeded source.
func Generate(pointCount int, p Params, rng RandomSource) (*Path, error) {
	if pointCount < MinPointCount {
		return nil, fmt.Errorf("%w: got %d, need at least %d", ErrInvalidPointCount, pointCount, MinPointCount)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRandom(0)
	}

	total := pointCount + 1
	last := total - 1
	w := walker{params: p, pts: make([]math.Vec3, total)}
	w.pts[1] = math.Forward.Scale(p.FirstSegmentLength)

	var runs []Run
	for i := 2; i < last; {
		state := walkState{cursor: i, last: last, height: w.pts[i-1].Y}
		run := acceptRun(state, proposeRun(rng, p), p)
		w.apply(run)
		runs = append(runs, run)
		i += run.Length
	}

	w.pts[last] = straightStep(w.pts[last-2], w.pts[last-1], p.LastSegmentLength)

	path := &Path{
		Params:    p,
		Waypoints: make([]Waypoint, total),
		Runs:      runs,
	}
	for i, pos := range w.pts {
		path.Waypoints[i].Position = pos
	}
	return path, nil
}

// walker writes runs into the position buffer.
type walker struct {
	params Params
	pts    []math.Vec3
}

func (w *walker) apply(r Run) {
	switch r.Kind {
	case SegmentTurnLeft:
		w.turn(r, w.params.SlopeAngle)
	case SegmentTurnRight:
		w.turn(r, -w.params.SlopeAngle)
	case SegmentClimb:
		w.slope(r, w.params.SlopeAngle)
	case SegmentDescend:
		w.slope(r, -w.params.SlopeAngle)
	default:
		for i := r.Start; i < r.Start+r.Length; i++ {
			w.straight(i)
		}
	}
}

func (w *walker) straight(i int) {
	w.pts[i] = straightStep(w.pts[i-2], w.pts[i-1], w.params.SegmentLength)
}

// turn yaws every step of the run; each step is checked for backtracking on its own.
func (w *walker) turn(r Run, deg float32) {
	seg := w.params.SegmentLength
	for i := r.Start; i < r.Start+r.Length; i++ {
		prev2, prev1 := w.pts[i-2], w.pts[i-1]
		w.pts[i] = guardBacktrack(prev1, turnStep(prev2, prev1, deg, seg), straightStep(prev2, prev1, seg))
	}
}

// slope writes one straight step, then pitches by deg for the first half of
// the run and by -deg for the second half so the run ends level.
func (w *walker) slope(r Run, deg float32) {
	w.straight(r.Start)
	half := r.Length / 2
	for l := 1; l < r.Length; l++ {
		step := deg
		if l > half {
			step = -deg
		}
		i := r.Start + l
		w.pts[i] = pitchStep(w.pts[i-2], w.pts[i-1], step, w.params.SegmentLength)
	}
}
