package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/runtrack/internal/track"
)

// WriteWaypointsYAML writes the path parameters and waypoints as YAML.
func WriteWaypointsYAML(w io.Writer, path *track.Path) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(path); err != nil {
		return fmt.Errorf("encoding waypoints: %w", err)
	}
	return enc.Close()
}

// ReadWaypointsYAML reads a path written by WriteWaypointsYAML.
// Run metadata is not stored and comes back empty.
func ReadWaypointsYAML(r io.Reader) (*track.Path, error) {
	var path track.Path
	if err := yaml.NewDecoder(r).Decode(&path); err != nil {
		return nil, fmt.Errorf("decoding waypoints: %w", err)
	}
	if path.Len() < 2 {
		return nil, fmt.Errorf("%w: got %d", track.ErrInsufficientWaypoints, path.Len())
	}
	return &path, nil
}
