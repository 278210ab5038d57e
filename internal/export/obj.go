package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/runtrack/internal/track"
)

// WriteOBJ writes mesh as a Wavefront OBJ with per-vertex normals.
func WriteOBJ(w io.Writer, mesh *track.Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# runtrack ribbon: %d vertices, %d triangles\n",
		mesh.VertexCount(), len(mesh.Indices)/3)
	fmt.Fprintln(bw, "o track")

	for i := 0; i+2 < len(mesh.Vertices); i += 3 {
		fmt.Fprintf(bw, "v %g %g %g\n", mesh.Vertices[i], mesh.Vertices[i+1], mesh.Vertices[i+2])
	}
	for i := 0; i+2 < len(mesh.Normals); i += 3 {
		fmt.Fprintf(bw, "vn %g %g %g\n", mesh.Normals[i], mesh.Normals[i+1], mesh.Normals[i+2])
	}

	// OBJ indices are 1-based
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a, b, c := mesh.Indices[i]+1, mesh.Indices[i+1]+1, mesh.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
	}

	return bw.Flush()
}
