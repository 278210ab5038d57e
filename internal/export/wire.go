package export

import (
	"fmt"
	stdmath "math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Faultbox/runtrack/internal/track"
)

// Mesh wire fields.
const (
	fieldVertices protowire.Number = 1 // packed fixed32
	fieldNormals  protowire.Number = 2 // packed fixed32
	fieldIndices  protowire.Number = 3 // packed varint
)

// EncodeMesh serializes mesh buffers in protobuf wire format.
// Bounds are not stored; DecodeMesh recomputes them.
func EncodeMesh(mesh *track.Mesh) []byte {
	var b []byte
	b = appendPackedFloats(b, fieldVertices, mesh.Vertices)
	b = appendPackedFloats(b, fieldNormals, mesh.Normals)

	if len(mesh.Indices) > 0 {
		var packed []byte
		for _, idx := range mesh.Indices {
			packed = protowire.AppendVarint(packed, uint64(idx))
		}
		b = protowire.AppendTag(b, fieldIndices, protowire.BytesType)
		b = protowire.AppendBytes(b, packed)
	}
	return b
}

func appendPackedFloats(b []byte, num protowire.Number, vals []float32) []byte {
	if len(vals) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendVarint(b, uint64(len(vals)*4))
	for _, v := range vals {
		b = protowire.AppendFixed32(b, stdmath.Float32bits(v))
	}
	return b
}

// DecodeMesh parses a blob produced by EncodeMesh.
// Unknown fields are skipped; unpacked repeated fields are accepted.
func DecodeMesh(data []byte) (*track.Mesh, error) {
	mesh := &track.Mesh{}

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMesh, protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case (num == fieldVertices || num == fieldNormals) && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("%w: field %d: %v", ErrMalformedMesh, num, protowire.ParseError(n))
			}
			floats, err := consumePackedFloats(v)
			if err != nil {
				return nil, fmt.Errorf("field %d: %w", num, err)
			}
			if num == fieldVertices {
				mesh.Vertices = append(mesh.Vertices, floats...)
			} else {
				mesh.Normals = append(mesh.Normals, floats...)
			}
			data = data[n:]

		case (num == fieldVertices || num == fieldNormals) && typ == protowire.Fixed32Type:
			bits, n := protowire.ConsumeFixed32(data)
			if n < 0 {
				return nil, fmt.Errorf("%w: field %d: %v", ErrMalformedMesh, num, protowire.ParseError(n))
			}
			if num == fieldVertices {
				mesh.Vertices = append(mesh.Vertices, stdmath.Float32frombits(bits))
			} else {
				mesh.Normals = append(mesh.Normals, stdmath.Float32frombits(bits))
			}
			data = data[n:]

		case num == fieldIndices && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("%w: indices: %v", ErrMalformedMesh, protowire.ParseError(n))
			}
			for len(v) > 0 {
				idx, m := protowire.ConsumeVarint(v)
				if m < 0 {
					return nil, fmt.Errorf("%w: indices: %v", ErrMalformedMesh, protowire.ParseError(m))
				}
				mesh.Indices = append(mesh.Indices, uint32(idx))
				v = v[m:]
			}
			data = data[n:]

		case num == fieldIndices && typ == protowire.VarintType:
			idx, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("%w: indices: %v", ErrMalformedMesh, protowire.ParseError(n))
			}
			mesh.Indices = append(mesh.Indices, uint32(idx))
			data = data[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("%w: field %d: %v", ErrMalformedMesh, num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}

	if err := checkMesh(mesh); err != nil {
		return nil, err
	}
	mesh.Bounds = boundsOf(mesh.Vertices)
	return mesh, nil
}

func consumePackedFloats(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: packed fixed32 length %d", ErrMalformedMesh, len(b))
	}
	out := make([]float32, 0, len(b)/4)
	for len(b) > 0 {
		bits, n := protowire.ConsumeFixed32(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMesh, protowire.ParseError(n))
		}
		out = append(out, stdmath.Float32frombits(bits))
		b = b[n:]
	}
	return out, nil
}

func checkMesh(m *track.Mesh) error {
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("%w: %d vertex floats", ErrMalformedMesh, len(m.Vertices))
	}
	if len(m.Normals) != len(m.Vertices) {
		return fmt.Errorf("%w: %d normals for %d vertices", ErrMalformedMesh, len(m.Normals)/3, len(m.Vertices)/3)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrMalformedMesh, len(m.Indices))
	}
	count := uint32(m.VertexCount())
	for _, idx := range m.Indices {
		if idx >= count {
			return fmt.Errorf("%w: index %d out of %d vertices", ErrMalformedMesh, idx, count)
		}
	}
	return nil
}

func boundsOf(vertices []float32) track.Bounds {
	var b track.Bounds
	for i := 0; i+2 < len(vertices); i += 3 {
		for k := 0; k < 3; k++ {
			v := vertices[i+k]
			if i == 0 || v < b.Min[k] {
				b.Min[k] = v
			}
			if i == 0 || v > b.Max[k] {
				b.Max[k] = v
			}
		}
	}
	return b
}
