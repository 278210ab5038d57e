package track

import "errors"

// Track errors. None of them is fatal; callers recover by issuing a corrected request.
var (
	ErrInvalidPointCount     = errors.New("invalid point count")
	ErrInsufficientWaypoints = errors.New("insufficient waypoints for mesh")
	ErrOutOfRange            = errors.New("placement outside track")
	ErrInvalidParams         = errors.New("invalid track parameters")
)
