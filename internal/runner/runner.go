// Package runner moves a runner along a generated track.
package runner

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/runtrack/internal/track"
	"github.com/Faultbox/runtrack/pkg/math"
)

// Config holds runner motion settings.
type Config struct {
	Speed        float32 `yaml:"speed"`         // centerline units per second
	LateralLimit float32 `yaml:"lateral_limit"` // max sideways offset from the centerline
	LateralScale float32 `yaml:"lateral_scale"` // lateral speed to offset per second
	TurnRate     float32 `yaml:"turn_rate"`     // heading slerp factor per second
}

// DefaultConfig returns stock runner settings.
func DefaultConfig() Config {
	return Config{
		Speed:        3,
		LateralLimit: 2,
		LateralScale: 0.3,
		TurnRate:     5,
	}
}

// Runner follows the centerline of a track segment by segment.
type Runner struct {
	cfg  Config
	path *track.Path

	running  bool
	segment  int     // index of the current segment's start waypoint
	along    float32 // distance covered on the current segment
	distance float32 // total centerline distance covered

	lateral      float32
	lateralSpeed float32
	heading      math.Quat
}

// New creates a runner at the start of path. The path needs at least two
// waypoints.
func New(path *track.Path, cfg Config) (*Runner, error) {
	if path == nil || path.Len() < 2 {
		n := 0
		if path != nil {
			n = path.Len()
		}
		return nil, fmt.Errorf("%w: runner needs 2, got %d", track.ErrInsufficientWaypoints, n)
	}
	r := &Runner{cfg: cfg, path: path}
	r.Reset()
	return r, nil
}

// Reset puts the runner back on waypoint 0, stopped and facing forward.
func (r *Runner) Reset() {
	r.running = false
	r.segment = 0
	r.along = 0
	r.distance = 0
	r.lateral = 0
	r.heading = math.QuatIdentity()
}

// Start begins moving. It does nothing once the final waypoint is reached.
func (r *Runner) Start() {
	if r.finished() {
		return
	}
	r.running = true
}

// Running reports whether the runner is moving.
func (r *Runner) Running() bool {
	return r.running
}

// SetLateralSpeed sets the sideways input; positive moves right.
func (r *Runner) SetLateralSpeed(v float32) {
	r.lateralSpeed = v
}

// Update advances the runner by dt seconds.
func (r *Runner) Update(dt float32) {
	if !r.running {
		return
	}

	r.advance(r.cfg.Speed * dt)

	target := math.QuatLookRotation(r.segmentDir(), math.Up)
	r.heading = r.heading.Slerp(target, math32.Min(1, r.cfg.TurnRate*dt))

	if r.lateralSpeed != 0 {
		offset := r.lateral + r.lateralSpeed*dt*r.cfg.LateralScale
		r.lateral = math32.Max(-r.cfg.LateralLimit, math32.Min(r.cfg.LateralLimit, offset))
	}
}

// advance moves step units along the centerline, carrying overshoot into the
// following segments. Reaching the final waypoint stops the runner.
func (r *Runner) advance(step float32) {
	last := r.path.Len() - 1
	for step > 0 && r.running {
		remain := r.segmentLength() - r.along
		if step < remain {
			r.along += step
			r.distance += step
			return
		}
		step -= remain
		r.distance += remain
		if r.segment+1 >= last {
			r.along += remain
			r.running = false
			return
		}
		r.segment++
		r.along = 0
	}
}

func (r *Runner) finished() bool {
	return r.segment >= r.path.Len()-2 && r.along >= r.segmentLength()
}

func (r *Runner) segmentLength() float32 {
	wps := r.path.Waypoints
	return wps[r.segment].Position.Distance(wps[r.segment+1].Position)
}

func (r *Runner) segmentDir() math.Vec3 {
	wps := r.path.Waypoints
	return wps[r.segment+1].Position.Sub(wps[r.segment].Position).Normalize()
}

// Center returns the runner's point on the centerline.
func (r *Runner) Center() math.Vec3 {
	return r.path.Waypoints[r.segment].Position.ScaleAdd(r.segmentDir(), r.along)
}

// Position returns the runner's world position including the lateral offset.
func (r *Runner) Position() math.Vec3 {
	right := r.segmentDir().Cross(math.Up).Normalize()
	return r.Center().ScaleAdd(right, r.lateral)
}

// Forward returns the runner's smoothed facing direction.
func (r *Runner) Forward() math.Vec3 {
	return r.heading.RotateVec3(math.Forward)
}

// Lateral returns the sideways offset from the centerline.
func (r *Runner) Lateral() float32 {
	return r.lateral
}

// Segment returns the index of the current segment's start waypoint.
func (r *Runner) Segment() int {
	return r.segment
}

// Distance returns the centerline distance covered since Reset.
func (r *Runner) Distance() float32 {
	return r.distance
}
