package track

import (
	"fmt"

	"github.com/Faultbox/runtrack/pkg/math"
)

// Floats and vertices emitted per segment: two triangles, no shared vertices.
const (
	verticesPerSegment = 6
	floatsPerSegment   = verticesPerSegment * 3
)

// BuildMesh computes the ribbon edges of every waypoint (stored in Left and
// Right) and triangulates them into a quad strip. Positions are not modified.
func BuildMesh(waypoints []Waypoint, pathWidth float32) (*Mesh, error) {
	n := len(waypoints)
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d, need at least 2", ErrInsufficientWaypoints, n)
	}

	computeEdges(waypoints, pathWidth)

	segments := n - 1
	mesh := &Mesh{
		Vertices: make([]float32, 0, segments*floatsPerSegment),
		Normals:  make([]float32, 0, segments*floatsPerSegment),
		Indices:  make([]uint32, 0, segments*verticesPerSegment),
		Bounds: Bounds{
			Min: [3]float32{1e10, 1e10, 1e10},
			Max: [3]float32{-1e10, -1e10, -1e10},
		},
	}

	faces := make([]math.Vec3, segments)
	for i := range faces {
		faces[i] = faceNormal(waypoints[i], waypoints[i+1])
	}

	for i := 0; i < segments; i++ {
		cur, next := waypoints[i], waypoints[i+1]

		// Joint normals are the average of the two faces meeting there,
		// so both sides of a joint carry the same normal.
		lead, trail := faces[i], faces[i]
		if i > 0 {
			lead = faces[i-1].Add(faces[i]).Normalize()
		}
		if i < segments-1 {
			trail = faces[i].Add(faces[i+1]).Normalize()
		}

		// (left, right, next-left) and (next-left, right, next-right)
		corners := [verticesPerSegment]math.Vec3{cur.Left, cur.Right, next.Left, next.Left, cur.Right, next.Right}
		normals := [verticesPerSegment]math.Vec3{lead, lead, trail, trail, lead, trail}

		base := uint32(i * verticesPerSegment)
		for k := range corners {
			mesh.Vertices = append(mesh.Vertices, corners[k].X, corners[k].Y, corners[k].Z)
			mesh.Normals = append(mesh.Normals, normals[k].X, normals[k].Y, normals[k].Z)
			mesh.Indices = append(mesh.Indices, base+uint32(k))
			updateBounds(&mesh.Bounds, corners[k])
		}
	}

	return mesh, nil
}

// computeEdges fills Left and Right. The tangent is one-sided at the ends and
// centered (previous to next) in between.
func computeEdges(waypoints []Waypoint, pathWidth float32) {
	n := len(waypoints)
	half := pathWidth / 2
	for i := range waypoints {
		var dir math.Vec3
		switch i {
		case 0:
			dir = waypoints[1].Position.Sub(waypoints[0].Position)
		case n - 1:
			dir = waypoints[i].Position.Sub(waypoints[i-1].Position)
		default:
			dir = waypoints[i+1].Position.Sub(waypoints[i-1].Position)
		}
		right := rightOf(dir)
		pos := waypoints[i].Position
		waypoints[i].Left = pos.ScaleAdd(right, -half)
		waypoints[i].Right = pos.ScaleAdd(right, half)
	}
}

// rightOf returns the horizontal right vector of a forward direction.
func rightOf(forward math.Vec3) math.Vec3 {
	return forward.Normalize().Cross(math.Up).Normalize()
}

// faceNormal returns the upward normal of the quad between two waypoints.
func faceNormal(cur, next Waypoint) math.Vec3 {
	across := cur.Right.Sub(cur.Left)
	along := next.Left.Sub(cur.Left)
	return across.Cross(along).Normalize()
}

func updateBounds(b *Bounds, p math.Vec3) {
	v := p.Array()
	for k := 0; k < 3; k++ {
		if v[k] < b.Min[k] {
			b.Min[k] = v[k]
		}
		if v[k] > b.Max[k] {
			b.Max[k] = v[k]
		}
	}
}
