package track

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/runtrack/pkg/math"
)

func TestProposeRun(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name  string
		draws []int
		want  Run
		used  int
	}{
		{"straight draws a length", []int{0, 4}, Run{Kind: SegmentStraight, Length: 4}, 2},
		{"left turn", []int{1, 2}, Run{Kind: SegmentTurnLeft, Length: 2}, 2},
		{"right turn", []int{2, 0}, Run{Kind: SegmentTurnRight, Length: 0}, 2},
		{"climb has a fixed length", []int{3}, Run{Kind: SegmentClimb, Length: 7}, 1},
		{"descend has a fixed length", []int{4}, Run{Kind: SegmentDescend, Length: 7}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &scripted{seq: tt.draws}
			got := proposeRun(src, p)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.used, src.pos, "number of draws")
		})
	}
}

func TestProposeRunWithoutTurns(t *testing.T) {
	p := DefaultParams()
	p.SlopeAngle = 0

	src := &scripted{seq: []int{1}}
	got := proposeRun(src, p)
	assert.Equal(t, Run{Kind: SegmentTurnLeft}, got)
	assert.Equal(t, 1, src.pos, "no length is drawn when turning is impossible")
}

func TestAcceptRun(t *testing.T) {
	p := DefaultParams() // heights gate at 1.47 and 3.53

	tests := []struct {
		name  string
		state walkState
		in    Run
		want  Run
	}{
		{
			name:  "fits",
			state: walkState{cursor: 2, last: 20},
			in:    Run{Kind: SegmentTurnLeft, Length: 4},
			want:  Run{Kind: SegmentTurnLeft, Start: 2, Length: 4},
		},
		{
			name:  "clamped to remaining interior",
			state: walkState{cursor: 17, last: 20},
			in:    Run{Kind: SegmentStraight, Length: 5},
			want:  Run{Kind: SegmentStraight, Start: 17, Length: 3},
		},
		{
			name:  "zero length turn becomes one straight step",
			state: walkState{cursor: 5, last: 20},
			in:    Run{Kind: SegmentTurnRight, Length: 0},
			want:  Run{Kind: SegmentStraight, Start: 5, Length: 1},
		},
		{
			name:  "zero length straight stays one step",
			state: walkState{cursor: 5, last: 20},
			in:    Run{Kind: SegmentStraight, Length: 0},
			want:  Run{Kind: SegmentStraight, Start: 5, Length: 1},
		},
		{
			name:  "climb accepted",
			state: walkState{cursor: 2, last: 20, height: 0},
			in:    Run{Kind: SegmentClimb, Length: 7},
			want:  Run{Kind: SegmentClimb, Start: 2, Length: 7},
		},
		{
			name:  "climb at ceiling",
			state: walkState{cursor: 2, last: 20, height: 3.6},
			in:    Run{Kind: SegmentClimb, Length: 7},
			want:  Run{Kind: SegmentStraight, Start: 2, Length: 1},
		},
		{
			name:  "climb without room",
			state: walkState{cursor: 13, last: 20, height: 0},
			in:    Run{Kind: SegmentClimb, Length: 7},
			want:  Run{Kind: SegmentStraight, Start: 13, Length: 1},
		},
		{
			name:  "descend accepted",
			state: walkState{cursor: 4, last: 20, height: 2},
			in:    Run{Kind: SegmentDescend, Length: 7},
			want:  Run{Kind: SegmentDescend, Start: 4, Length: 7},
		},
		{
			name:  "descend at floor",
			state: walkState{cursor: 4, last: 20, height: 1.47},
			in:    Run{Kind: SegmentDescend, Length: 7},
			want:  Run{Kind: SegmentStraight, Start: 4, Length: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, acceptRun(tt.state, tt.in, p))
		})
	}
}

func TestAcceptRunDegenerateAngles(t *testing.T) {
	p := DefaultParams()
	p.MaxSlopeAngle = 5

	got := acceptRun(walkState{cursor: 2, last: 30}, Run{Kind: SegmentTurnLeft, Length: 3}, p)
	assert.Equal(t, Run{Kind: SegmentStraight, Start: 2, Length: 3}, got)

	got = acceptRun(walkState{cursor: 2, last: 30}, Run{Kind: SegmentClimb, Length: 1}, p)
	assert.Equal(t, Run{Kind: SegmentStraight, Start: 2, Length: 1}, got)
}

func TestGuardBacktrack(t *testing.T) {
	prev := math.Vec3{Z: -5}
	fallback := math.Vec3{Z: -6}

	ahead := math.Vec3{X: -0.5, Z: -5.8}
	assert.Equal(t, ahead, guardBacktrack(prev, ahead, fallback))

	sideways := math.Vec3{X: -1, Z: -5}
	assert.Equal(t, sideways, guardBacktrack(prev, sideways, fallback), "equal Z is not backwards")

	behind := math.Vec3{X: -0.9, Z: -4.6}
	assert.Equal(t, fallback, guardBacktrack(prev, behind, fallback))
}

func TestStepLengths(t *testing.T) {
	prev2 := math.Vec3{}
	prev1 := math.Vec3{Z: -5}

	for _, got := range []math.Vec3{
		straightStep(prev2, prev1, 2),
		turnStep(prev2, prev1, 15, 2),
		turnStep(prev2, prev1, -15, 2),
		pitchStep(prev2, prev1, 30, 2),
	} {
		assert.InDelta(t, 2, got.Distance(prev1), tol)
	}

	up := pitchStep(prev2, prev1, 30, 2)
	assert.InDelta(t, 1, up.Y, tol, "30 degree pitch over 2 units rises 1")
}

func TestSegmentKindString(t *testing.T) {
	assert.Equal(t, "turn-left", SegmentTurnLeft.String())
	assert.Equal(t, "descend", SegmentDescend.String())
	assert.Equal(t, "SegmentKind(9)", SegmentKind(9).String())
}
