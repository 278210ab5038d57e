package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/runtrack/internal/config"
	"github.com/Faultbox/runtrack/internal/export"
	"github.com/Faultbox/runtrack/internal/track"
)

func testConfig(points int, seed uint64) *config.Config {
	cfg := config.Default()
	cfg.Track.PointCount = points
	cfg.Track.Seed = seed
	return cfg
}

func TestWriteTrackFormats(t *testing.T) {
	cfg := testConfig(30, 5)
	gen, err := newGenerator(cfg)
	require.NoError(t, err)

	dir := t.TempDir()

	objPath := filepath.Join(dir, "track.obj")
	require.NoError(t, writeTrack(config.OutputConfig{Path: objPath, Format: config.FormatOBJ}, gen))
	obj, err := os.ReadFile(objPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(obj), "# runtrack ribbon"))

	pbPath := filepath.Join(dir, "track.pb")
	require.NoError(t, writeTrack(config.OutputConfig{Path: pbPath, Format: config.FormatPB}, gen))
	data, err := os.ReadFile(pbPath)
	require.NoError(t, err)
	mesh, err := export.DecodeMesh(data)
	require.NoError(t, err)
	assert.Equal(t, gen.Mesh().Indices, mesh.Indices)

	yamlPath := filepath.Join(dir, "track.yaml")
	require.NoError(t, writeTrack(config.OutputConfig{Path: yamlPath, Format: config.FormatYAML}, gen))
	f, err := os.Open(yamlPath)
	require.NoError(t, err)
	defer f.Close()
	path, err := export.ReadWaypointsYAML(f)
	require.NoError(t, err)
	assert.Equal(t, 30, path.Len())
}

func TestWriteTrackUnknownFormat(t *testing.T) {
	gen, err := newGenerator(testConfig(10, 1))
	require.NoError(t, err)

	err = writeTrack(config.OutputConfig{Path: filepath.Join(t.TempDir(), "x"), Format: "stl"}, gen)
	assert.Error(t, err)
}

func TestNewGeneratorRejectsBadCount(t *testing.T) {
	_, err := newGenerator(testConfig(2, 1))
	assert.Error(t, err)
}

func TestSimulateReachesEnd(t *testing.T) {
	gen, err := newGenerator(testConfig(20, 9))
	require.NoError(t, err)

	path := gen.Path()
	seconds := path.Length()/config.Default().Runner.Speed + 1

	r, err := simulate(path, config.Default().Runner, seconds, 0)
	require.NoError(t, err)
	assert.False(t, r.Running())
	assert.Equal(t, path.Len()-2, r.Segment())
	assert.InDelta(t, path.Length(), r.Distance(), 1e-2)
}

func TestSimulateZeroDuration(t *testing.T) {
	gen, err := newGenerator(testConfig(20, 9))
	require.NoError(t, err)

	r, err := simulate(gen.Path(), config.Default().Runner, 0, 0)
	require.NoError(t, err)
	assert.True(t, r.Running())
	assert.Zero(t, r.Distance())
}

func TestSimulateRejectsMissingTrack(t *testing.T) {
	_, err := simulate(nil, config.Default().Runner, 1, 0)
	assert.ErrorIs(t, err, track.ErrInsufficientWaypoints)
}
