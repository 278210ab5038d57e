// Package export writes generated tracks to disk formats.
//
// Meshes go out as Wavefront OBJ for modelling tools or as a compact
// protobuf-wire blob for game clients. Paths round-trip through YAML.
package export

import "errors"

// ErrMalformedMesh is returned when decoded mesh buffers are inconsistent.
var ErrMalformedMesh = errors.New("malformed mesh")
