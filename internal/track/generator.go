package track

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/runtrack/internal/logger"
	"github.com/Faultbox/runtrack/pkg/math"
)

// Item is an object placed on the track.
type Item struct {
	Name string
	Placement
}

// Generator owns the current track and rebuilds it whenever the point count
// or the parameters change. It is not safe for concurrent use.
type Generator struct {
	params     Params
	rng        RandomSource
	pointCount int

	path  *Path
	mesh  *Mesh
	items []Item
}

// NewGenerator creates a generator with no track. A nil rng uses an unseeded source.
func NewGenerator(params Params, rng RandomSource) *Generator {
	if rng == nil {
		rng = NewRandom(0)
	}
	return &Generator{params: params, rng: rng}
}

// Params returns the current shape parameters.
func (g *Generator) Params() Params {
	return g.params
}

// PointCount returns the last requested point count.
func (g *Generator) PointCount() int {
	return g.pointCount
}

// SetPointCount regenerates the waypoints and rebuilds the mesh. On
// ErrInvalidPointCount the current track is cleared.
func (g *Generator) SetPointCount(n int) error {
	g.pointCount = n
	return g.rebuild()
}

// SetParams replaces the shape parameters and regenerates with the current
// point count, if one was set.
func (g *Generator) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	g.params = p
	if g.pointCount == 0 {
		return nil
	}
	return g.rebuild()
}

func (g *Generator) rebuild() error {
	g.items = nil

	path, err := Generate(g.pointCount, g.params, g.rng)
	if err != nil {
		g.path, g.mesh = nil, nil
		logger.Warn("track cleared", zap.Int("pointCount", g.pointCount), zap.Error(err))
		return err
	}

	mesh, err := BuildMesh(path.Waypoints, g.params.PathWidth)
	if err != nil {
		g.path, g.mesh = nil, nil
		logger.Warn("mesh build skipped", zap.Int("waypoints", path.Len()), zap.Error(err))
		return err
	}

	g.path, g.mesh = path, mesh
	logger.Debug("track generated",
		zap.Int("waypoints", path.Len()),
		zap.Int("runs", len(path.Runs)),
		zap.Float32("length", path.Length()),
		zap.Int("vertices", mesh.VertexCount()),
	)
	return nil
}

// Path returns the current track, or nil.
func (g *Generator) Path() *Path {
	return g.path
}

// Mesh returns the current ribbon mesh, or nil.
func (g *Generator) Mesh() *Mesh {
	return g.mesh
}

// Place resolves a virtual coordinate on the current track.
func (g *Generator) Place(lateral, longitudinal float32) (Placement, error) {
	if g.path == nil {
		return Placement{}, fmt.Errorf("%w: no track generated", ErrOutOfRange)
	}
	pl, ok := g.path.PlaceVirtual(math.Vec2{X: lateral, Y: longitudinal})
	if !ok {
		return Placement{}, fmt.Errorf("%w: lateral %v, longitudinal %v", ErrOutOfRange, lateral, longitudinal)
	}
	return pl, nil
}

// PutItem places a named item on the track. It reports false when the
// coordinate is off the track; nothing is added in that case.
func (g *Generator) PutItem(name string, lateral, longitudinal float32) bool {
	pl, err := g.Place(lateral, longitudinal)
	if err != nil {
		logger.Debug("item not placed", zap.String("item", name), zap.Error(err))
		return false
	}
	g.items = append(g.items, Item{Name: name, Placement: pl})
	return true
}

// Items returns the items placed since the last regeneration.
func (g *Generator) Items() []Item {
	return g.items
}

// ClearItems removes all placed items.
func (g *Generator) ClearItems() {
	g.items = nil
}
